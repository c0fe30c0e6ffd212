package trade

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluatePolicy(t *testing.T) {
	params := map[string]interface{}{
		"playerItems": 2,
		"pickItems":   1,
		"totalItems":  3,
		"week":        9,
		"season":      2026,
	}

	t.Run("empty policy allows everything", func(t *testing.T) {
		ok, err := EvaluatePolicy("", params)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("boolean literals", func(t *testing.T) {
		ok, err := EvaluatePolicy("true", params)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = EvaluatePolicy("FALSE", params)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expression over proposal parameters", func(t *testing.T) {
		ok, err := EvaluatePolicy("totalItems <= 6 && week < 12", params)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = EvaluatePolicy("pickItems == 0", params)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-boolean result is an error", func(t *testing.T) {
		_, err := EvaluatePolicy("totalItems + 1", params)
		assert.Error(t, err)
	})

	t.Run("malformed expression is an error", func(t *testing.T) {
		_, err := EvaluatePolicy("totalItems <<>> 2", params)
		assert.Error(t, err)
	})
}
