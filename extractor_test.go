package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIExtractor(t *testing.T) {
	ex := CLIExtractor{}

	t.Run("ValidSources", func(t *testing.T) {
		assert.True(t, ex.IsValidSource(NewCLISource()))
		assert.False(t, ex.IsValidSource(NewFileSource("", nil)))
	})

	t.Run("LastScalarOccurrenceWins", func(t *testing.T) {
		src := NewCLISource().Add("feed", "production").Add("feed", "scanner")
		v, err := ex.Value(ItemDefinition{Name: "feed", Kind: KindOption}, src)
		require.NoError(t, err)
		got, ok := v.Get()
		require.True(t, ok)
		assert.Equal(t, "scanner", got)
	})

	t.Run("RepeatableOccurrencesAccumulate", func(t *testing.T) {
		src := NewCLISource().Add("exclude-vulnerability", "a,b").Add("exclude-vulnerability", "c")
		v, err := ex.Value(ItemDefinition{Name: "exclude-vulnerability", Kind: KindOptionRepeatable, Separator: ","}, src)
		require.NoError(t, err)
		got, _ := v.Get()
		assert.Equal(t, []string{"a", "b", "c"}, got)
	})

	t.Run("Negation", func(t *testing.T) {
		def := ItemDefinition{Name: "read-stdin", Kind: KindOptionalFlag}
		v, err := ex.Value(def, NewCLISource().Negate("read-stdin"))
		require.NoError(t, err)
		got, _ := v.Get()
		assert.Equal(t, False, got)

		_, err = ex.Value(def, NewCLISource().Negate("read-stdin").Add("read-stdin", "true"))
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("ConfigOnlyIgnored", func(t *testing.T) {
		src := NewCLISource().Add("license", "abc")
		v, err := ex.Value(ItemDefinition{Name: "license", Kind: KindOption, Context: ContextConfig}, src)
		require.NoError(t, err)
		assert.False(t, v.IsPresent())
	})

	t.Run("AbsentWhenNotGiven", func(t *testing.T) {
		v, err := ex.Value(ItemDefinition{Name: "debug", Kind: KindFlag}, NewCLISource())
		require.NoError(t, err)
		assert.False(t, v.IsPresent())
	})
}

func TestSectionExtractor(t *testing.T) {
	file := NewFileSource("wordfence-cli.ini", map[string]map[string]any{
		DefaultSection: {"feed": "scanner", "cache_directory": "/tmp/cache", "wordpress-path": "/var/www"},
		"VULN_SCAN":    {"feed": "production"},
	})
	vuln := &Subcommand{Name: "vuln-scan"}

	t.Run("SubcommandExtractorRequiresSection", func(t *testing.T) {
		assert.True(t, NewSubcommandExtractor(vuln).IsValidSource(file))
		assert.False(t, NewSubcommandExtractor(&Subcommand{Name: "malware-scan"}).IsValidSource(file))
		assert.True(t, NewDefaultExtractor().IsValidSource(NewFileSource("", nil)))
		assert.False(t, NewDefaultExtractor().IsValidSource(NewCLISource()))
	})

	t.Run("ReadsOwnSection", func(t *testing.T) {
		def := ItemDefinition{Name: "feed", Kind: KindOption}
		v, err := NewSubcommandExtractor(vuln).Value(def, file)
		require.NoError(t, err)
		got, _ := v.Get()
		assert.Equal(t, "production", got)

		v, err = NewDefaultExtractor().Value(def, file)
		require.NoError(t, err)
		got, _ = v.Get()
		assert.Equal(t, "scanner", got)
	})

	t.Run("PropertyNameKeysNormalised", func(t *testing.T) {
		v, err := NewDefaultExtractor().Value(ItemDefinition{Name: "cache-directory", Kind: KindOption}, file)
		require.NoError(t, err)
		got, _ := v.Get()
		assert.Equal(t, "/tmp/cache", got)
	})

	t.Run("CLIOnlyIgnored", func(t *testing.T) {
		def := ItemDefinition{Name: "wordpress-path", Kind: KindOptionRepeatable, Context: ContextCLI, Separator: ","}
		v, err := NewDefaultExtractor().Value(def, file)
		require.NoError(t, err)
		assert.False(t, v.IsPresent())
	})

	t.Run("InvalidValueNamesSection", func(t *testing.T) {
		def := ItemDefinition{Name: "feed", Kind: KindOption, ValidOptions: []string{"scanner"}}
		_, err := NewSubcommandExtractor(vuln).Value(def, file)
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "[VULN_SCAN]")
	})
}

func TestEnvExtractor(t *testing.T) {
	src := NewEnvSource("WORDFENCE_CLI_", map[string]string{"feed": "production", "version": "true"})

	t.Run("ReadsValue", func(t *testing.T) {
		assert.True(t, EnvExtractor{}.IsValidSource(src))
		v, err := EnvExtractor{}.Value(ItemDefinition{Name: "feed", Kind: KindOption}, src)
		require.NoError(t, err)
		got, _ := v.Get()
		assert.Equal(t, "production", got)
	})

	t.Run("CLIOnlyIgnored", func(t *testing.T) {
		v, err := EnvExtractor{}.Value(ItemDefinition{Name: "version", Kind: KindFlag, Context: ContextCLI}, src)
		require.NoError(t, err)
		assert.False(t, v.IsPresent())
	})

	t.Run("ErrorNamesVariable", func(t *testing.T) {
		_, err := EnvExtractor{}.Value(ItemDefinition{Name: "feed", Kind: KindOption, ValidOptions: []string{"scanner"}}, src)
		require.ErrorIs(t, err, ErrInvalidValue)
		assert.Contains(t, err.Error(), "WORDFENCE_CLI_FEED")
	})
}
