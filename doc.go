// File: wordfence/config/doc.go

// Package config resolves command-line programs' options from layered sources:
// a sectioned configuration file, optionally the environment, and the command
// line, falling back to declared defaults.
//
// Options are declared once as ItemDefinition values. A Registry combines the
// global declarations with per-subcommand overlays; a subcommand declaration
// replaces a global one of the same name entirely.
//
// Quick Start:
//
//	reg := config.MustNewRegistry(config.NewDefinitions(
//	    config.ItemDefinition{Name: "feed", Kind: config.KindOption, Default: "scanner",
//	        ValidOptions: []string{"production", "scanner"}},
//	))
//
//	values := config.NewValues()
//	result, err := config.NewBuilder(reg).
//	    WithFileDiscovery(config.DefaultDiscoveryOptions("myapp")).
//	    Build(values)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	feed, _ := values.String("feed")
//	fmt.Print(result.Debug(values))
//
// Precedence (highest to lowest):
//  1. Command-line arguments (--feed=production)
//  2. Environment variables, when enabled (MYAPP_FEED=production)
//  3. The subcommand's section of the configuration file ([VULN_SCAN])
//  4. The DEFAULT section of the configuration file
//  5. Declared defaults
//
// Resolution is performed once per invocation; nothing is cached or watched.
// A value from a higher source replaces a lower one even when it is false,
// empty or zero. Defaults apply only to options that no source supplied.
package config
