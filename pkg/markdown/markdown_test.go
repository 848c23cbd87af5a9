package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{
			name:     "heading and emphasis",
			input:    "# Hello\n\nThis is **bold**.",
			contains: []string{"<h1", "Hello</h1>", "<strong>bold</strong>"},
		},
		{
			name:     "gfm table",
			input:    "| a | b |\n|---|---|\n| 1 | 2 |",
			contains: []string{"<table>", "<td>1</td>"},
		},
		{
			name:     "strikethrough",
			input:    "~~gone~~",
			contains: []string{"<del>gone</del>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Render(tt.input)
			if err != nil {
				t.Fatalf("Render() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("Render() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	got, err := Render("   \n")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
}

func TestExcerpt(t *testing.T) {
	input := "# Title\n\nFirst   paragraph\nspans lines.\n\nSecond."
	if got, want := Excerpt(input, 0), "First paragraph spans lines."; got != want {
		t.Errorf("Excerpt() = %q, want %q", got, want)
	}
	if got, want := Excerpt(input, 5), "First..."; got != want {
		t.Errorf("Excerpt() = %q, want %q", got, want)
	}
}
