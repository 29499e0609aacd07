package casereview

import (
	"encoding/json"
	"testing"
)

func TestCoerceIntNeverFails(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  int
		want int
	}{
		{"nil", nil, 0, 0},
		{"nil with default", nil, 7, 7},
		{"empty string", "", 3, 3},
		{"blank string", "   ", 3, 3},
		{"digits", "42", 0, 42},
		{"digits padded", " 42 ", 0, 42},
		{"negative digits", "-5", 0, -5},
		{"garbage", "cuarenta", 9, 9},
		{"float string", "3.7", 9, 9},
		{"int", 12, 0, 12},
		{"int64", int64(12), 0, 12},
		{"float64 truncates", 3.9, 0, 3},
		{"json number int", json.Number("28"), 0, 28},
		{"json number float truncates", json.Number("28.6"), 0, 28},
		{"json number garbage", json.Number("x"), 4, 4},
		{"bool", true, 5, 5},
		{"slice", []int{1}, 5, 5},
		{"map", map[string]int{"a": 1}, 5, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceInt(tc.in, tc.def); got != tc.want {
				t.Errorf("CoerceInt(%v, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
			}
		})
	}
}

func TestCoerceText(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  string
		want string
	}{
		{"nil", nil, "N/A", "N/A"},
		{"string", "Ana", "", "Ana"},
		{"string trimmed", "  Ana  ", "", "Ana"},
		{"empty string kept", "", "N/A", ""},
		{"number", json.Number("7"), "", "7"},
		{"int", 7, "", "7"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CoerceText(tc.in, tc.def); got != tc.want {
				t.Errorf("CoerceText(%v, %q) = %q, want %q", tc.in, tc.def, got, tc.want)
			}
		})
	}
}
