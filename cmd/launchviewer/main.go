// Command launchviewer is the desktop dashboard for the SpaceX launch records:
// a launch site selector and a payload range drive a success pie chart and a
// payload vs. outcome scatter chart.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
	"github.com/iafilius/LaunchRecordsDashboard/src/uihelpers"
)

const dashboardTitle = "SpaceX Launch Records Dashboard"

// payloadStep is the slider granularity in kg.
const payloadStep = 1000

func main() {
	var fileFlag, logLevel, shotsDir string
	var shotsWidth int
	flag.StringVar(&fileFlag, "file", "", "Path to the launch records (.csv or .xlsx); empty uses the bundled "+launchdata.DefaultDatasetFile)
	flag.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flag.StringVar(&shotsDir, "screenshots", "", "Render pie/scatter PNGs for every site into this directory and exit")
	flag.IntVar(&shotsWidth, "screenshots-width", 0, "Chart width used by -screenshots (0 = default)")
	flag.Parse()
	if !launchdata.SetLogLevel(logLevel) {
		fmt.Fprintf(os.Stderr, "unknown -log-level %q\n", logLevel)
		os.Exit(2)
	}

	if shotsDir != "" {
		screenshotWidthOverride = shotsWidth
		if err := RunScreenshotsMode(fileFlag, shotsDir); err != nil {
			launchdata.Errorf("screenshots: %v", err)
			os.Exit(1)
		}
		launchdata.Infof("screenshots written to %s", shotsDir)
		return
	}

	// The dataset is required before any window exists.
	ds, err := launchdata.LoadFile(fileFlag)
	if err != nil {
		launchdata.Errorf("load dataset: %v", err)
		os.Exit(1)
	}

	a := app.NewWithID("com.launchrecords.dashboard")
	w := a.NewWindow(dashboardTitle)
	w.Resize(fyne.NewSize(1100, 900))

	state := &uiState{app: a, window: w, filePath: fileFlag}
	state.showHints = a.Preferences().BoolWithFallback("showHints", false)
	state.setDataset(ds)

	w.SetContent(buildUI(state))
	buildMenus(state)
	redrawCharts(state)

	// Redraw charts on window resize so they scale with width
	if w.Canvas() != nil {
		prevW := int(w.Canvas().Size().Width)
		done := make(chan struct{})
		w.SetOnClosed(func() {
			savePrefs(state)
			close(done)
		})
		go func() {
			t := time.NewTicker(300 * time.Millisecond)
			defer t.Stop()
			for {
				select {
				case <-done:
					return
				case <-t.C:
					c := w.Canvas()
					if c == nil {
						continue
					}
					curW := int(c.Size().Width)
					if curW != prevW {
						prevW = curW
						fyne.Do(func() { redrawCharts(state) })
					}
				}
			}
		}()
	}

	w.ShowAndRun()
}

// buildUI creates the widgets, stores them on state and returns the window content.
// Callbacks are wired only after every widget and canvas exists.
func buildUI(state *uiState) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(dashboardTitle, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	state.fileLabel = widget.NewLabel(fileText(state))

	state.siteSelect = widget.NewSelect(state.optionLabels(), nil)
	state.siteSelect.PlaceHolder = "Select a launch site"
	state.siteSelect.Selected = state.siteLabel()

	lo, hi := state.sliderBounds()
	state.lowSlider = widget.NewSlider(lo, hi)
	state.lowSlider.Step = payloadStep
	state.lowSlider.Value = state.payload.Low
	state.highSlider = widget.NewSlider(lo, hi)
	state.highSlider.Step = payloadStep
	state.highSlider.Value = state.payload.High
	state.rangeLabel = widget.NewLabel(state.rangeText())
	marksLabel := widget.NewLabel(marksText(lo, hi))
	marksLabel.TextStyle = fyne.TextStyle{Italic: true}
	state.summaryLabel = widget.NewLabel(state.summaryText())

	hintsChk := widget.NewCheck("Hints", nil)
	hintsChk.Checked = state.showHints
	resetBtn := widget.NewButton("Reset range", nil)

	state.pieImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.pieImgCanvas.FillMode = canvas.ImageFillContain
	state.scatterImgCanvas = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	state.scatterImgCanvas.FillMode = canvas.ImageFillContain
	pw, ph := pieSize(state)
	state.pieImgCanvas.SetMinSize(fyne.NewSize(float32(pw), float32(ph)))
	cw, chh := chartSize(state)
	state.scatterImgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))

	// wiring
	state.siteSelect.OnChanged = func(v string) {
		if !state.selectSiteLabel(v) {
			return
		}
		launchdata.Debugf("site changed to %q", state.site)
		redrawCharts(state)
	}
	state.lowSlider.OnChanged = func(v float64) {
		v = uihelpers.SnapToStep(v, payloadStep, state.lowSlider.Min, state.lowSlider.Max)
		if state.setPayloadLow(v) {
			syncSliders(state)
			state.rangeLabel.SetText(state.rangeText())
		}
	}
	state.highSlider.OnChanged = func(v float64) {
		v = uihelpers.SnapToStep(v, payloadStep, state.highSlider.Min, state.highSlider.Max)
		if state.setPayloadHigh(v) {
			syncSliders(state)
			state.rangeLabel.SetText(state.rangeText())
		}
	}
	// recompute once per drag, not per pixel
	state.lowSlider.OnChangeEnded = func(float64) { redrawCharts(state) }
	state.highSlider.OnChangeEnded = func(float64) { redrawCharts(state) }
	hintsChk.OnChanged = func(b bool) {
		state.showHints = b
		savePrefs(state)
		redrawCharts(state)
	}
	resetBtn.OnTapped = func() {
		state.resetPayload()
		syncSliders(state)
		redrawCharts(state)
	}

	top := container.NewVBox(
		title,
		container.NewHBox(widget.NewLabel("File:"), state.fileLabel),
		container.NewBorder(nil, nil, widget.NewLabel("Launch site:"), hintsChk, state.siteSelect),
		widget.NewLabel("Payload range (kg):"),
		container.NewBorder(nil, nil, widget.NewLabel("Low "), nil, state.lowSlider),
		container.NewBorder(nil, nil, widget.NewLabel("High"), nil, state.highSlider),
		container.NewHBox(state.rangeLabel, layout.NewSpacer(), resetBtn),
		marksLabel,
		widget.NewSeparator(),
		state.summaryLabel,
	)
	chartsScroll := container.NewVScroll(container.NewVBox(state.pieImgCanvas, state.scatterImgCanvas))
	chartsScroll.SetMinSize(fyne.NewSize(900, 600))
	return container.NewBorder(top, nil, nil, nil, chartsScroll)
}

// redrawCharts recomputes both charts from the current selection and refreshes the labels.
func redrawCharts(state *uiState) {
	if state == nil || state.ds == nil {
		return
	}
	defer launchdata.TimeTrack(time.Now(), "redrawCharts")
	if state.pieImgCanvas != nil {
		pw, ph := pieSize(state)
		state.pieImgCanvas.Image = state.renderPie(pw, ph)
		state.pieImgCanvas.SetMinSize(fyne.NewSize(float32(pw), float32(ph)))
		state.pieImgCanvas.Refresh()
	}
	if state.scatterImgCanvas != nil {
		cw, chh := chartSize(state)
		state.scatterImgCanvas.Image = state.renderScatter(cw, chh)
		state.scatterImgCanvas.SetMinSize(fyne.NewSize(float32(cw), float32(chh)))
		state.scatterImgCanvas.Refresh()
	}
	if state.rangeLabel != nil {
		state.rangeLabel.SetText(state.rangeText())
	}
	if state.summaryLabel != nil {
		state.summaryLabel.SetText(state.summaryText())
	}
}

// syncSliders pushes the payload window back into both sliders without firing callbacks.
func syncSliders(state *uiState) {
	for _, p := range []struct {
		s *widget.Slider
		v float64
	}{{state.lowSlider, state.payload.Low}, {state.highSlider, state.payload.High}} {
		if p.s != nil && p.s.Value != p.v {
			p.s.Value = p.v
			p.s.Refresh()
		}
	}
}

// syncControls refreshes every control after a dataset swap.
func syncControls(state *uiState) {
	if state.siteSelect != nil {
		state.siteSelect.Options = state.optionLabels()
		state.siteSelect.Selected = state.siteLabel()
		state.siteSelect.Refresh()
	}
	lo, hi := state.sliderBounds()
	for _, s := range []*widget.Slider{state.lowSlider, state.highSlider} {
		if s != nil {
			s.Min, s.Max = lo, hi
		}
	}
	syncSliders(state)
	if state.fileLabel != nil {
		state.fileLabel.SetText(fileText(state))
	}
}

func marksText(lo, hi float64) string {
	marks := uihelpers.PayloadSliderMarks(lo, hi, 5)
	parts := make([]string, 0, len(marks))
	for _, m := range marks {
		parts = append(parts, m.Label)
	}
	return strings.Join(parts, "   |   ")
}

func fileText(state *uiState) string {
	if strings.TrimSpace(state.filePath) == "" {
		return "(bundled) " + launchdata.DefaultDatasetFile
	}
	return truncatePath(state.filePath, 60)
}

// loadAll reads state.filePath and swaps the dataset in. On error the previous
// dataset stays active.
func loadAll(state *uiState) error {
	ds, err := launchdata.LoadFile(state.filePath)
	if err != nil {
		return err
	}
	state.setDataset(ds)
	syncControls(state)
	redrawCharts(state)
	launchdata.Infof("loaded %d launches from %s", ds.Len(), ds.Source())
	return nil
}

// openPath switches to path, reverting to the previous file when it cannot be loaded.
func openPath(state *uiState, path string) {
	prev := state.filePath
	state.filePath = path
	if err := loadAll(state); err != nil {
		state.filePath = prev
		dialog.ShowError(err, state.window)
		return
	}
	savePrefs(state)
}

// menus and dialogs
func buildMenus(state *uiState) {
	if state == nil || state.window == nil || state.app == nil {
		return
	}
	reload := func() {
		if err := loadAll(state); err != nil {
			dialog.ShowError(err, state.window)
		}
	}
	exportPie := fyne.NewMenuItem("Export Pie Chart…", func() { exportChartPNG(state, state.pieImgCanvas, "launch_success_pie.png") })
	exportScatter := fyne.NewMenuItem("Export Scatter Chart…", func() { exportChartPNG(state, state.scatterImgCanvas, "payload_outcome_scatter.png") })
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open…", func() { openFileDialog(state) }),
		fyne.NewMenuItem("Reload", reload),
		fyne.NewMenuItemSeparator(),
		exportPie,
		exportScatter,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { state.window.Close() }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fileMenu))

	canv := state.window.Canvas()
	if canv != nil {
		for _, mod := range []fyne.KeyModifier{fyne.KeyModifierSuper, fyne.KeyModifierControl} {
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: mod}, func(fyne.Shortcut) { openFileDialog(state) })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: mod}, func(fyne.Shortcut) { reload() })
			canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: mod}, func(fyne.Shortcut) { state.window.Close() })
		}
	}
}

func openFileDialog(state *uiState) {
	d := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		rc.Close()
		openPath(state, path)
	}, state.window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{".csv", ".xlsx", ".xlsm"}))
	// start next to the last opened file
	if last := state.app.Preferences().StringWithFallback("lastFile", ""); last != "" {
		if dir, err := storage.ListerForURI(storage.NewFileURI(filepath.Dir(last))); err == nil {
			d.SetLocation(dir)
		}
	}
	d.Show()
}

// export PNG
func exportChartPNG(state *uiState, img *canvas.Image, defaultName string) {
	if state == nil || state.window == nil {
		return
	}
	if img == nil || img.Image == nil {
		dialog.ShowInformation("Export", "No chart to export.", state.window)
		return
	}
	fs := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil || wc == nil {
			return
		}
		defer wc.Close()
		if err := png.Encode(wc, img.Image); err != nil {
			dialog.ShowError(fmt.Errorf("export %s: %w", defaultName, err), state.window)
		}
	}, state.window)
	fs.SetFileName(defaultName)
	fs.Show()
}

// prefs
func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if state.filePath != "" {
		prefs.SetString("lastFile", state.filePath)
	}
	prefs.SetBool("showHints", state.showHints)
}

func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	left := n - len(base) - 4
	dir := filepath.Dir(p)
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "..." + string(filepath.Separator) + base
}
