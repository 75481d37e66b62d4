package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRegistry mirrors the shape of the scanner declarations.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	global := NewDefinitions(
		ItemDefinition{Name: "configuration", ShortName: "c", Kind: KindOption, Context: ContextCLI},
		ItemDefinition{Name: "debug", ShortName: "d", Kind: KindFlag},
		ItemDefinition{Name: "cache", Kind: KindOptionalFlag, Default: true},
		ItemDefinition{Name: "license", ShortName: "l", Kind: KindOption},
		ItemDefinition{Name: "read-stdin", Kind: KindFlag, Default: true},
	)
	vuln := &Subcommand{
		Name:    "vuln-scan",
		Section: "VULN_SCAN",
		Definitions: NewDefinitions(
			ItemDefinition{Name: "read-stdin", Kind: KindOptionalFlag},
			ItemDefinition{Name: "path-separator", ShortName: "s", Kind: KindOption, Default: "AA==", DefaultEncoding: EncodingBase64},
			ItemDefinition{Name: "wordpress-path", ShortName: "w", Kind: KindOptionRepeatable, Context: ContextCLI, Default: []string{}, Separator: ","},
			ItemDefinition{Name: "exclude-vulnerability", ShortName: "e", Kind: KindOptionRepeatable, Default: []string{}, Separator: ","},
			ItemDefinition{Name: "informational", ShortName: "I", Kind: KindFlag, Default: false},
			ItemDefinition{Name: "feed", ShortName: "f", Kind: KindOption, Default: "scanner", ValidOptions: []string{"production", "scanner"}},
			ItemDefinition{Name: "workers", Kind: KindOption, ValueType: TypeInt, Default: 1},
		),
	}
	reg, err := NewRegistry(global, vuln)
	require.NoError(t, err)
	return reg
}

func vulnResolver(t *testing.T, reg *Registry) (*Resolver, Definitions) {
	t.Helper()
	defs, sc, err := reg.ForSubcommand("vuln-scan")
	require.NoError(t, err)
	return NewResolver(NewSubcommandExtractor(sc), NewDefaultExtractor(), CLIExtractor{}), defs
}

// recordingTarget records every assignment in order.
type recordingTarget struct {
	*Values
	calls []string
}

func (r *recordingTarget) Set(property string, value any) error {
	r.calls = append(r.calls, property)
	return r.Values.Set(property, value)
}

func TestResolve(t *testing.T) {
	reg := testRegistry(t)

	t.Run("EveryPropertyDefined", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		values := NewValues()
		provenance, err := resolver.Resolve(defs, values, NewFileSource("", nil), NewCLISource())
		require.NoError(t, err)

		for _, def := range defs.Sorted() {
			_, ok := values.Get(def.PropertyName())
			assert.True(t, ok, "property %s must be defined", def.PropertyName())
			assert.Equal(t, SourceDefault, provenance[def.PropertyName()])
		}
	})

	t.Run("DefaultFileFeed", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"feed": "scanner"},
		})
		values := NewValues()
		provenance, err := resolver.Resolve(defs, values, file, NewCLISource())
		require.NoError(t, err)

		feed, err := values.String("feed")
		require.NoError(t, err)
		assert.Equal(t, "scanner", feed)
		assert.Equal(t, "file:cfg.ini", provenance["feed"])
	})

	t.Run("CLIOverridesFileFalse", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"informational": "false"},
		})
		cli := NewCLISource().Add("informational", "true")
		values := NewValues()
		_, err := resolver.Resolve(defs, values, file, cli)
		require.NoError(t, err)

		informational, err := values.Bool("informational")
		require.NoError(t, err)
		assert.True(t, informational)
	})

	t.Run("FalsyValueOverridesEarlierTruthy", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"cache": "on", "license": "abc", "workers": "8"},
		})
		cli := NewCLISource().Negate("cache").Add("license", "").Add("workers", "0")
		values := NewValues()
		_, err := resolver.Resolve(defs, values, file, cli)
		require.NoError(t, err)

		cache, _ := values.TriState("cache")
		assert.Equal(t, False, cache)
		license, _ := values.String("license")
		assert.Equal(t, "", license)
		workers, _ := values.Int64("workers")
		assert.Equal(t, int64(0), workers)
	})

	t.Run("ExplicitFalseSurvivesLaterAbsence", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"cache": "false"},
		})
		values := NewValues()
		provenance, err := resolver.Resolve(defs, values, file, NewCLISource())
		require.NoError(t, err)

		cache, _ := values.TriState("cache")
		assert.Equal(t, False, cache, "default true must not be applied")
		assert.Equal(t, "file:cfg.ini", provenance["cache"])
	})

	t.Run("EmptyRepeatableDefault", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		values := NewValues()
		_, err := resolver.Resolve(defs, values, NewFileSource("", nil), NewCLISource())
		require.NoError(t, err)

		excluded, ok := values.Get("exclude-vulnerability")
		require.True(t, ok)
		assert.NotNil(t, excluded)
		assert.Equal(t, []string{}, excluded)
	})

	t.Run("OverlaidOptionalFlagUnset", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		values := NewValues()
		_, err := resolver.Resolve(defs, values, NewFileSource("", nil), NewCLISource())
		require.NoError(t, err)

		readStdin, err := values.TriState("read-stdin")
		require.NoError(t, err)
		assert.Equal(t, Unset, readStdin)
		assert.NotEqual(t, True, readStdin)
		assert.NotEqual(t, False, readStdin)
	})

	t.Run("RepeatableCLISplit", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		values := NewValues()
		_, err := resolver.Resolve(defs, values, NewFileSource("", nil), NewCLISource().Add("exclude-vulnerability", "x,y"))
		require.NoError(t, err)

		excluded, _ := values.Strings("exclude-vulnerability")
		assert.Equal(t, []string{"x", "y"}, excluded)
	})

	t.Run("LaterSourceReplacesSequence", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"exclude-vulnerability": "a,b"},
		})
		values := NewValues()
		_, err := resolver.Resolve(defs, values, file, NewCLISource().Add("exclude-vulnerability", ""))
		require.NoError(t, err)

		excluded, _ := values.Strings("exclude-vulnerability")
		assert.Equal(t, []string{}, excluded)
	})

	t.Run("SubcommandSectionWinsOverDefault", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"feed": "scanner"},
			"VULN_SCAN":    {"feed": "production"},
		})
		values := NewValues()
		_, err := resolver.Resolve(defs, values, file, NewCLISource())
		require.NoError(t, err)

		feed, _ := values.String("feed")
		assert.Equal(t, "production", feed)
	})

	t.Run("Base64DefaultDecoded", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		values := NewValues()
		_, err := resolver.Resolve(defs, values, NewFileSource("", nil), NewCLISource())
		require.NoError(t, err)

		sep, _ := values.String("path-separator")
		assert.Equal(t, "\x00", sep)
	})

	t.Run("CLIOnlyOptionInFileIgnored", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		file := NewFileSource("cfg.ini", map[string]map[string]any{
			DefaultSection: {"wordpress-path": "/var/www"},
		})
		values := NewValues()
		provenance, err := resolver.Resolve(defs, values, file, NewCLISource())
		require.NoError(t, err)

		paths, _ := values.Strings("wordpress-path")
		assert.Empty(t, paths)
		assert.Equal(t, SourceDefault, provenance["wordpress_path"])
	})

	t.Run("InvalidValueIsFatal", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		_, err := resolver.Resolve(defs, NewValues(), NewFileSource("", nil), NewCLISource().Add("feed", "beta"))
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("NoSources", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		_, err := resolver.Resolve(defs, NewValues())
		assert.ErrorIs(t, err, ErrNoSources)
	})

	t.Run("NoExtractorForSource", func(t *testing.T) {
		_, defs := vulnResolver(t, reg)
		resolver := NewResolver(CLIExtractor{})
		_, err := resolver.Resolve(defs, NewValues(), NewFileSource("", nil))
		assert.ErrorIs(t, err, ErrNoExtractor)
	})

	t.Run("DefaultsAssignedOnce", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		target := &recordingTarget{Values: NewValues()}
		_, err := resolver.Resolve(defs, target, NewFileSource("", nil), NewCLISource().Add("feed", "production"))
		require.NoError(t, err)

		assert.Len(t, target.calls, len(defs), "each property assigned exactly once")
		assert.Equal(t, "feed", target.calls[0], "source values precede defaults")
	})

	t.Run("TargetErrorPropagates", func(t *testing.T) {
		resolver, defs := vulnResolver(t, reg)
		_, err := resolver.Resolve(defs, failingTarget{}, NewFileSource("", nil), NewCLISource())
		assert.ErrorIs(t, err, ErrUnknownProperty)
	})

	t.Run("ExtractorListIsCopied", func(t *testing.T) {
		extractors := []Extractor{CLIExtractor{}}
		resolver := NewResolver(extractors...)
		extractors[0] = NewDefaultExtractor()

		_, err := resolver.Resolve(NewDefinitions(), NewValues(), NewCLISource())
		assert.NoError(t, err)
	})
}

type failingTarget struct{}

func (failingTarget) Set(property string, _ any) error {
	return errors.Join(ErrUnknownProperty, errors.New(property))
}
