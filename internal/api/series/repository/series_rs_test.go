package seriesRepository

import (
	"errors"
	"testing"

	"DevBlogFrontend/internal/api/series"
)

func TestDecodeMutation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantID  string
		wantErr error
	}{
		{"envelope", `{"success":true,"data":{"_id":"s1","title":"A"}}`, "s1", nil},
		{"bare", `{"_id":"s2","title":"B"}`, "s2", nil},
		{"bare legacy id", `{"id":"s3","title":"C"}`, "s3", nil},
		{"empty", `{"success":true}`, "", series.ErrEmptySeriesPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeMutation([]byte(tt.raw))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if id := got.toEntity().ID; id != tt.wantID {
				t.Errorf("ID = %q, want %q", id, tt.wantID)
			}
		})
	}
}
