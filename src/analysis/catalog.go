package analysis

import "github.com/iafilius/LaunchRecordsDashboard/src/launchdata"

// SiteOption is one entry of the site selector.
type SiteOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// DistinctSites lists launch sites in order of first occurrence, without duplicates.
func DistinctSites(ds *launchdata.Dataset) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, r := range ds.All() {
		if _, ok := seen[r.LaunchSite]; ok {
			continue
		}
		seen[r.LaunchSite] = struct{}{}
		out = append(out, r.LaunchSite)
	}
	return out
}

// SiteOptions returns the selector entries: "All Sites" first, then every distinct site.
func SiteOptions(ds *launchdata.Dataset) []SiteOption {
	sites := DistinctSites(ds)
	out := make([]SiteOption, 0, len(sites)+1)
	out = append(out, SiteOption{Label: AllSitesLabel, Value: AllSites})
	for _, s := range sites {
		out = append(out, SiteOption{Label: s, Value: s})
	}
	return out
}

// OptionValue maps a selector label back to its value; unknown labels are returned
// unchanged so a raw site name also works.
func OptionValue(opts []SiteOption, label string) string {
	for _, o := range opts {
		if o.Label == label {
			return o.Value
		}
	}
	return label
}

// OptionLabel maps a selector value to its label, falling back to the value itself.
func OptionLabel(opts []SiteOption, value string) string {
	for _, o := range opts {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// HasSite reports whether site is AllSites or occurs in the dataset (exact match).
func HasSite(ds *launchdata.Dataset, site string) bool {
	if site == AllSites {
		return true
	}
	for _, r := range ds.All() {
		if r.LaunchSite == site {
			return true
		}
	}
	return false
}
