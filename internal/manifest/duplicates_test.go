package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDuplicatesFlagsEveryOccurrence(t *testing.T) {
	in := tableWithIDs("P010", "P011", "P010", "P012")

	d, err := DetectDuplicates(in, "NED")
	require.NoError(t, err)

	assert.True(t, d.Any)
	assert.Equal(t, []bool{true, false, true, false}, d.Flags)
	assert.Equal(t, 2, d.FlaggedCount())
}

func TestDetectDuplicatesCleanColumn(t *testing.T) {
	in := tableWithIDs("P001", "P002", "P003")

	d, err := DetectDuplicates(in, "NED")
	require.NoError(t, err)

	assert.False(t, d.Any)
	assert.Equal(t, []bool{false, false, false}, d.Flags)
	assert.Zero(t, d.FlaggedCount())
}

func TestDetectDuplicatesCaseSensitive(t *testing.T) {
	// Membership everywhere in the pipeline is exact post-clean equality.
	in := tableWithIDs("p001", "P001")

	d, err := DetectDuplicates(in, "NED")
	require.NoError(t, err)
	assert.False(t, d.Any)
}

func TestDetectDuplicatesMissingColumn(t *testing.T) {
	in := tableWithIDs("P001")

	_, err := DetectDuplicates(in, "Smart Card")
	assert.ErrorIs(t, err, ErrMissingColumn)
}
