package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvInt(t *testing.T) {
	t.Run("unset uses fallback", func(t *testing.T) {
		assert.Equal(t, 4, envInt("WIXCONV_TEST_UNSET", 4))
	})

	t.Run("valid value", func(t *testing.T) {
		t.Setenv("WIXCONV_TEST_INT", "2")
		assert.Equal(t, 2, envInt("WIXCONV_TEST_INT", 4))
	})

	t.Run("zero allowed", func(t *testing.T) {
		t.Setenv("WIXCONV_TEST_INT", "0")
		assert.Equal(t, 0, envInt("WIXCONV_TEST_INT", 4))
	})

	t.Run("invalid value uses fallback", func(t *testing.T) {
		t.Setenv("WIXCONV_TEST_INT", "nope")
		assert.Equal(t, 4, envInt("WIXCONV_TEST_INT", 4))
	})

	t.Run("negative uses fallback", func(t *testing.T) {
		t.Setenv("WIXCONV_TEST_INT", "-1")
		assert.Equal(t, 4, envInt("WIXCONV_TEST_INT", 4))
	})
}

func TestEnvInt64(t *testing.T) {
	t.Run("valid value", func(t *testing.T) {
		t.Setenv("WIXCONV_TEST_SIZE", "1024")
		assert.Equal(t, int64(1024), envInt64("WIXCONV_TEST_SIZE", 10))
	})

	t.Run("zero uses fallback", func(t *testing.T) {
		t.Setenv("WIXCONV_TEST_SIZE", "0")
		assert.Equal(t, int64(10), envInt64("WIXCONV_TEST_SIZE", 10))
	})
}
