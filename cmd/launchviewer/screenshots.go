package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/iafilius/LaunchRecordsDashboard/src/analysis"
	"github.com/iafilius/LaunchRecordsDashboard/src/launchdata"
)

// RunScreenshotsMode renders the pie and scatter panels for ALL and for every site
// over the default payload range and writes them as PNGs under outDir.
// It runs headlessly without creating a UI window.
func RunScreenshotsMode(filePath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	ds, err := launchdata.LoadFile(filePath)
	if err != nil {
		return err
	}
	st := &uiState{filePath: filePath}
	st.setDataset(ds)

	sites := append([]string{analysis.AllSites}, analysis.DistinctSites(ds)...)
	for _, site := range sites {
		st.site = site
		slug := siteSlug(site)
		pw, ph := pieSize(st)
		cw, chh := chartSize(st)
		toRender := []struct {
			name string
			img  image.Image
		}{
			{"pie_" + slug + ".png", st.renderPie(pw, ph)},
			{"scatter_" + slug + ".png", st.renderScatter(cw, chh)},
		}
		for _, item := range toRender {
			var buf bytes.Buffer
			if err := png.Encode(&buf, item.img); err != nil {
				return fmt.Errorf("png encode %s: %w", item.name, err)
			}
			outPath := filepath.Join(outDir, item.name)
			if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}
			launchdata.Debugf("wrote %s", outPath)
		}
	}
	return nil
}

// siteSlug turns a site name into a file-name fragment: "CCAFS LC-40" -> "ccafs_lc_40".
func siteSlug(site string) string {
	var b strings.Builder
	lastSep := true
	for _, r := range strings.ToLower(site) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastSep = false
		case !lastSep:
			b.WriteByte('_')
			lastSep = true
		}
	}
	out := strings.TrimSuffix(b.String(), "_")
	if out == "" {
		return "site"
	}
	return out
}
