package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompanyCodePrefix(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Gamma Solutions", "GAMMA"},
		{"acme", "ACME"},
		{"  Delta   Facilities  ", "DELTA"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range cases {
		company := &Company{Title: tc.title}
		assert.Equal(t, tc.want, company.CodePrefix(), "title %q", tc.title)
	}
}
