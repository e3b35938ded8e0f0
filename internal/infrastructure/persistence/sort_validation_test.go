package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	for input, want := range map[string]string{
		"":                 "DESC",
		"asc":              "ASC",
		"  ASC ":           "ASC",
		"desc":             "DESC",
		"sideways":         "DESC",
		"ASC; DELETE FROM": "DESC",
	} {
		assert.Equal(t, want, ValidateSortOrder(input), "input %q", input)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty falls back", "", "sequence"},
		{"whitelisted", "preparation_datetime", "preparation_datetime"},
		{"trimmed", "  final_dispatch_date ", "final_dispatch_date"},
		{"case sensitive", "STATUS", "sequence"},
		{"unknown column", "company_id", "sequence"},
		{"expression", "sequence, (SELECT 1)", "sequence"},
		{"quoted", "status'--", "sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.input, ProductionOrderSortFields, "sequence"))
		})
	}
}
