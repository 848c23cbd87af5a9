package blogs

import "strings"

const SeriesNone = "none"

// NormalizeSeriesID maps the form's "no series" choices to "".
func NormalizeSeriesID(seriesID string) string {
	s := strings.TrimSpace(seriesID)
	if s == SeriesNone {
		return ""
	}
	return s
}

// CleanTags trims every tag and drops the empty ones.
func CleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
