package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	t.Run("SixDigits", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			code, err := GenerateCode()
			require.NoError(t, err)
			require.Len(t, code, CodeLength)
			for _, c := range code {
				assert.True(t, c >= '0' && c <= '9', "non-digit character in code %q", code)
			}
		}
	})

	t.Run("Varies", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			code, err := GenerateCode()
			require.NoError(t, err)
			seen[code] = true
		}
		// 50 draws from a million values colliding down to one is not chance
		assert.Greater(t, len(seen), 1)
	})
}
