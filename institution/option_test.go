package institution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeOptions(t *testing.T) {
	for _, tc := range []struct {
		description string
		options     []Option
		expected    map[string]bool
		expectErr   bool
	}{
		{
			description: "no options",
			expected:    map[string]bool{},
		},
		{
			description: "optional metadata only",
			options:     []Option{IncludeOptionalMetadata},
			expected:    map[string]bool{"include_optional_metadata": true},
		},
		{
			description: "status only",
			options:     []Option{IncludeStatus},
			expected:    map[string]bool{"include_status": true},
		},
		{
			description: "all options",
			options:     []Option{IncludeStatus, IncludeOptionalMetadata},
			expected:    map[string]bool{"include_optional_metadata": true, "include_status": true},
		},
		{
			description: "duplicates collapse",
			options:     []Option{IncludeStatus, IncludeStatus},
			expected:    map[string]bool{"include_status": true},
		},
		{
			description: "unknown option",
			options:     []Option{IncludeStatus, Option(42)},
			expectErr:   true,
		},
	} {
		t.Run(tc.description, func(t *testing.T) {
			encoded, err := EncodeOptions(tc.options)
			if tc.expectErr {
				assert.Error(t, err)
				assert.Nil(t, encoded)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, encoded)
		})
	}
}

func TestParseOption(t *testing.T) {
	for _, option := range Options() {
		parsed, err := ParseOption(option.String())
		require.NoError(t, err)
		assert.Equal(t, option, parsed)
	}

	_, err := ParseOption("include_everything")
	assert.EqualError(t, err, "Unknown institution option: 'include_everything'")
}

func TestOptionString(t *testing.T) {
	assert.Equal(t, "include_optional_metadata", IncludeOptionalMetadata.String())
	assert.Equal(t, "include_status", IncludeStatus.String())
	assert.Equal(t, "Option(0)", Option(0).String())
}
