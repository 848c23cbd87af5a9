package blogs

import (
	"reflect"
	"testing"
)

func TestNormalizeSeriesID(t *testing.T) {
	tests := map[string]string{
		"":       "",
		"none":   "",
		" none ": "",
		"s1":     "s1",
		" s1 ":   "s1",
	}
	for in, want := range tests {
		if got := NormalizeSeriesID(in); got != want {
			t.Errorf("NormalizeSeriesID(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCleanTags(t *testing.T) {
	got := CleanTags([]string{" go ", "", "web", "  "})
	want := []string{"go", "web"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanTags() = %v, want %v", got, want)
	}
}
