package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironmentVariables(t *testing.T) {
	t.Run("BasicEnvironmentLoading", func(t *testing.T) {
		t.Setenv("WFTEST_FEED", "production")
		t.Setenv("WFTEST_EXCLUDE_VULNERABILITY", "a,b")
		t.Setenv("OTHER_FEED", "ignored")

		src, err := LoadEnv("WFTEST_")
		require.NoError(t, err)
		assert.Equal(t, "env", src.Name())
		assert.Equal(t, "WFTEST_", src.Prefix())

		feed, ok := src.Lookup("feed")
		assert.True(t, ok)
		assert.Equal(t, "production", feed)

		excluded, ok := src.Lookup("exclude-vulnerability")
		assert.True(t, ok)
		assert.Equal(t, "a,b", excluded)
	})

	t.Run("EmptyPrefixRejected", func(t *testing.T) {
		_, err := LoadEnv("")
		assert.Error(t, err)
	})

	t.Run("VariableName", func(t *testing.T) {
		def := ItemDefinition{Name: "check-for-update"}
		assert.Equal(t, "WORDFENCE_CLI_CHECK_FOR_UPDATE", EnvVarName("WORDFENCE_CLI_", def))
	})
}
