package sanitizer

import (
	"reflect"
	"testing"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Franklin Ave  ", want: "Franklin Ave"},
		{name: "multiple spaces between words", input: "Franklin    Ave", want: "Franklin Ave"},
		{name: "tabs and newlines", input: "Crown\t\nHeights", want: "Crown Heights"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "preserve special characters", input: " Rue de l'Église ", want: "Rue de l'Église"},
		{name: "hebrew characters", input: " רחוב  הרצל ", want: "רחוב הרצל"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestPlaceKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple city", input: "Brooklyn", want: "brooklyn"},
		{name: "spaces", input: "  New   York ", want: "new_york"},
		{name: "hyphen and space", input: "Tel-Aviv Yafo", want: "tel_aviv_yafo"},
		{name: "punctuation edges", input: "--St. Louis--", want: "st_louis"},
		{name: "digits kept", input: "District 9", want: "district_9"},
		{name: "accents folded", input: "Montréal", want: "montreal"},
		{name: "accents and spaces", input: "São  Paulo", want: "sao_paulo"},
		{name: "non-latin letters kept", input: "תל אביב", want: "תל_אביב"},
		{name: "only symbols", input: "-- ..", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceKey(tt.input)
			if got != tt.want {
				t.Errorf("PlaceKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := PlaceKey(got); again != got {
				t.Errorf("PlaceKey not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestSanitizeSlice(t *testing.T) {
	got := SanitizeSlice([]string{"New York", " new-york ", "", "Boston", "  "}, PlaceKey)
	want := []string{"new_york", "boston"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeSlice() = %v, want %v", got, want)
	}

	if got := SanitizeSlice(nil, PlaceKey); len(got) != 0 {
		t.Errorf("SanitizeSlice(nil) = %v, want empty", got)
	}
}
