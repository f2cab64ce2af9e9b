package ingest

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr error
	}{
		{"2024/04/01", Date{2024, 4, 1}, nil},
		{"2024-04-01", Date{2024, 4, 1}, nil},
		{"20240401", Date{2024, 4, 1}, nil},
		{"2024/13/01", Date{}, ErrDateOutOfRange},
		{"2024-01-32", Date{}, ErrDateOutOfRange},
		{"20241301", Date{}, ErrDateOutOfRange},
		{"令和6年4月1日", Date{}, ErrUnsupportedDateFormat},
		{"", Date{}, ErrUnsupportedDateFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := Date{2023, 12, 31}
	b := Date{2024, 1, 1}

	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Error("unexpected ordering")
	}
	if a.Compact() != "20231231" || b.String() != "2024-01-01" {
		t.Errorf("unexpected formatting: %s %s", a.Compact(), b.String())
	}
}

func TestDate_UnmarshalJSON(t *testing.T) {
	var fromString, fromObject Date
	if err := json.Unmarshal([]byte(`"2020/02/29"`), &fromString); err != nil {
		t.Fatalf("string form: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"year":2020,"month":2,"day":29}`), &fromObject); err != nil {
		t.Fatalf("object form: %v", err)
	}
	if fromString != fromObject {
		t.Errorf("forms disagree: %v vs %v", fromString, fromObject)
	}

	var bad Date
	if err := json.Unmarshal([]byte(`"2020/02/40"`), &bad); !errors.Is(err, ErrDateOutOfRange) {
		t.Errorf("expected ErrDateOutOfRange, got %v", err)
	}
}
