package errcatalog_test

import (
	"errors"
	"testing"

	"github.com/dmitrymomot/errcatalog/pkg/errcatalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		args     []any
		expected string
	}{
		{"substitutes placeholder", "internal error code: %1", []any{42}, "internal error code: 42"},
		{"substitutes every occurrence", "%1 failed: %1", []any{"dial"}, "dial failed: dial"},
		{"ignores extra arguments", "static text", []any{42}, "static text"},
		{"ignores arguments after the first", "code %1", []any{1, 2, 3}, "code 1"},
		{"keeps other tokens literally", "%2 %s %% %{x} %1", []any{"v"}, "%2 %s %% %{x} v"},
		{"keeps multi-digit placeholders", "%10 and %1", []any{"v"}, "%10 and v"},
		{"placeholder at end", "ends with %1", []any{7}, "ends with 7"},
		{"only placeholder", "%1", []any{"Bad Request"}, "Bad Request"},
		{"empty template", "", nil, ""},
		{"nil argument", "value: %1", []any{nil}, "value: <nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := errcatalog.Format(tt.template, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatMissingArgument(t *testing.T) {
	t.Parallel()

	got, err := errcatalog.Format("%1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errcatalog.ErrMissingArgument))
	assert.Equal(t, "%1", got)

	var formatErr *errcatalog.FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, errcatalog.ReasonMissingArgument, formatErr.Reason)
	assert.Equal(t, "%1", formatErr.Template)
}

func TestFormatTemplateWithoutPlaceholderNeedsNoArgument(t *testing.T) {
	t.Parallel()

	got, err := errcatalog.Format("%10 percent")
	require.NoError(t, err)
	assert.Equal(t, "%10 percent", got)
}

func TestHasPlaceholder(t *testing.T) {
	t.Parallel()

	assert.True(t, errcatalog.HasPlaceholder("code %1"))
	assert.True(t, errcatalog.HasPlaceholder("%12 then %1"))
	assert.False(t, errcatalog.HasPlaceholder("code %12"))
	assert.False(t, errcatalog.HasPlaceholder("no placeholder"))
	assert.False(t, errcatalog.HasPlaceholder("%"))
}
