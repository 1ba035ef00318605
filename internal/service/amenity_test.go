package service

import (
	"context"
	"testing"

	"hanapbahay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCodes(t *testing.T) {
	t.Run("trims and drops blanks", func(t *testing.T) {
		got := NormalizeCodes([]string{" AIRCON ", "", "   ", "CAR_PARK"})
		assert.Equal(t, []string{"AIRCON", "CAR_PARK"}, got)
	})

	t.Run("dedupes case-insensitively keeping first occurrence", func(t *testing.T) {
		got := NormalizeCodes([]string{"aircon", "AIRCON", "Aircon", "CAR_PARK"})
		assert.Equal(t, []string{"aircon", "CAR_PARK"}, got)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, NormalizeCodes(nil))
		assert.Empty(t, NormalizeCodes([]string{"", "  "}))
	})
}

func TestAmenityResolver_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("empty input resolves to nothing", func(t *testing.T) {
		resolved, appErr := env.resolver.Resolve(ctx, nil)
		require.Nil(t, appErr)
		assert.Empty(t, resolved)
	})

	t.Run("resolves codes regardless of case", func(t *testing.T) {
		resolved, appErr := env.resolver.Resolve(ctx, []string{"aircon", "CAR_PARK"})
		require.Nil(t, appErr)
		require.Len(t, resolved, 2)
		assert.Equal(t, "AIRCON", resolved[0].Code)
		assert.Equal(t, "CAR_PARK", resolved[1].Code)
	})

	t.Run("preserves request order", func(t *testing.T) {
		resolved, appErr := env.resolver.Resolve(ctx, []string{"PET_FRIENDLY", "AIRCON"})
		require.Nil(t, appErr)
		require.Len(t, resolved, 2)
		assert.Equal(t, "PET_FRIENDLY", resolved[0].Code)
		assert.Equal(t, "AIRCON", resolved[1].Code)
	})

	t.Run("all-or-nothing with one message per invalid code", func(t *testing.T) {
		resolved, appErr := env.resolver.Resolve(ctx, []string{"AIRCON", "POOL", "gym"})
		require.NotNil(t, appErr)
		assert.Nil(t, resolved)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Equal(t, []string{
			"Amenity code 'POOL' is invalid.",
			"Amenity code 'gym' is invalid.",
		}, appErr.Messages)
	})
}

func TestAmenityResolver_Options(t *testing.T) {
	env := newTestEnv(t)

	options, appErr := env.resolver.Options(context.Background())
	require.Nil(t, appErr)
	require.Len(t, options, 12)

	// Ordered by label.
	for i := 1; i < len(options); i++ {
		assert.LessOrEqual(t, options[i-1].Label, options[i].Label)
	}
}
