package errcatalog_test

import (
	"testing"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
		ok       bool
	}{
		{"en", "en", true},
		{"EN", "en", true},
		{"en_us", "en-US", true},
		{"EN-us", "en-US", true},
		{"en_US.UTF-8", "en-US", true},
		{" fr ", "fr", true},
		{"zh-Hant-TW", "zh-Hant-TW", true},
		{"", "", false},
		{"   ", "", false},
		{"@@", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, ok := errcatalog.CanonicalLocale(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}
