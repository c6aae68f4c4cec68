package preference

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

func TestSeasonFilter_RoundTrip(t *testing.T) {
	f, err := ParseSeasonFilter("")
	require.NoError(t, err)
	assert.True(t, f.All)
	assert.Equal(t, SeasonFilterAll, f.String())

	id := uuid.New()
	f, err = ParseSeasonFilter(id.String())
	require.NoError(t, err)
	require.NotNil(t, f.SeasonID)
	assert.Equal(t, id, *f.SeasonID)
	assert.Equal(t, id.String(), f.String())

	_, err = ParseSeasonFilter("last-year")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Haftalık arpa"))
	assert.ErrorIs(t, ValidateName("  "), shared.ErrInvalidInput)
	assert.ErrorIs(t, ValidateName(strings.Repeat("a", 101)), shared.ErrInvalidInput)
}
