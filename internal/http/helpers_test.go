package http

import (
	"net/http/httptest"
	"testing"

	"financas/internal/report"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{5, "R$ 0,05"},
		{2550, "R$ 25,50"},
		{-2550, "-R$ 25,50"},
		{123456, "R$ 1.234,56"},
		{500000, "R$ 5.000,00"},
		{100000000, "R$ 1.000.000,00"},
		{-100000000, "-R$ 1.000.000,00"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatBRL(tt.cents); got != tt.want {
				t.Errorf("formatBRL(%d) = %q, want %q", tt.cents, got, tt.want)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	r := httptest.NewRequest("GET", "/ui/summary?month=01%2F2024&category=food", nil)
	f := parseFilter(r)
	if f.Month != "01/2024" || f.Category != "food" {
		t.Errorf("parseFilter() = %+v", f)
	}

	r = httptest.NewRequest("GET", "/ui/summary", nil)
	f = parseFilter(r)
	if !f.IsAll() {
		t.Errorf("empty query must mean no restriction, got %+v", f)
	}
}

func TestFilterKey(t *testing.T) {
	if filterKey(report.Filter{}) != "all|all" {
		t.Errorf("filterKey(empty) = %q", filterKey(report.Filter{}))
	}
	if filterKey(report.Filter{Month: "01/2024"}) != "01/2024|all" {
		t.Errorf("filterKey(month) = %q", filterKey(report.Filter{Month: "01/2024"}))
	}
	if filterKey(report.Filter{Month: "all", Category: "all"}) != filterKey(report.Filter{}) {
		t.Error("explicit all must share the key with the empty filter")
	}
}

func TestBarWidth(t *testing.T) {
	tests := []struct {
		name       string
		cents, max int64
		want       int
	}{
		{"zero max", 10, 0, 0},
		{"zero value", 0, 100, 0},
		{"full", 100, 100, 100},
		{"half", 50, 100, 50},
		{"tiny stays visible", 1, 1000, 2},
		{"rounds", 333, 1000, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := barWidth(tt.cents, tt.max); got != tt.want {
				t.Errorf("barWidth(%d, %d) = %d, want %d", tt.cents, tt.max, got, tt.want)
			}
		})
	}
}

func TestAllowedUploadExt(t *testing.T) {
	for _, name := range []string{"extrato.csv", "extrato.CSV", "notas.txt"} {
		if !allowedUploadExt(name) {
			t.Errorf("allowedUploadExt(%q) = false", name)
		}
	}
	for _, name := range []string{"planilha.xlsx", "extrato.pdf", "extrato"} {
		if allowedUploadExt(name) {
			t.Errorf("allowedUploadExt(%q) = true", name)
		}
	}
}

func TestSanitizeInput(t *testing.T) {
	if got := sanitizeInput("  extrato\x00.csv "); got != "extrato.csv" {
		t.Errorf("sanitizeInput() = %q", got)
	}
}
