package utils

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToString(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	tests := []struct {
		name string
		val  any
		want string
	}{
		{"string", "abc", "abc"},
		{"bytes", []byte("12.50"), "12.50"},
		{"int64", int64(42), "42"},
		{"float", 1.5, "1.5"},
		{"whole float", float64(3), "3"},
		{"bool", true, "true"},
		{"time", ts, "2024-03-09 14:05:07"},
		{"time pointer", &ts, "2024-03-09 14:05:07"},
		{"json number", json.Number("7.10"), "7.10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToString(tt.val))
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		name   string
		val    any
		want   int
		wantOK bool
	}{
		{"int", 5, 5, true},
		{"uint8", uint8(9), 9, true},
		{"whole float", float64(1200), 1200, true},
		{"fractional float", 1.5, 0, false},
		{"json number", json.Number("2345"), 2345, true},
		{"json float number", json.Number("10.0"), 10, true},
		{"string", " 17 ", 17, true},
		{"bad string", "x", 0, false},
		{"bytes", []byte("3"), 3, true},
		{"nil", nil, 0, false},
		{"bool", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseInt(tt.val)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, ToInt(tt.val))
		})
	}
}
