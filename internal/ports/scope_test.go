package ports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	s, err := ParseScope("global")
	require.NoError(t, err)
	assert.True(t, s.IsGlobal())
	assert.Equal(t, "global", s.String())

	s, err = ParseScope("representative:42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), s.RepresentativeID)
	assert.Equal(t, "representative:42", s.String())

	for _, bad := range []string{"", "GLOBAL", "representative:", "representative:0", "representative:-3", "representative:x", "region:eu"} {
		_, err := ParseScope(bad)
		assert.ErrorIs(t, err, ErrUnsupportedScope, bad)
	}
}
