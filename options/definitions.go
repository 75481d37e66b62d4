package options

import (
	"github.com/wordfence/config"
)

const (
	// AppName is the base name of the configuration file
	AppName = "wordfence-cli"

	// EnvPrefix prefixes environment variables when the environment source is enabled
	EnvPrefix = "WORDFENCE_CLI_"

	// ConfigEnvVar names a configuration file explicitly
	ConfigEnvVar = "WORDFENCE_CLI_CONFIG"
)

// Feed variants accepted by --feed
const (
	FeedProduction = "production"
	FeedScanner    = "scanner"
)

// nullSeparator is the base64 encoding of a single NUL byte.
const nullSeparator = "AA=="

var reportFormats = []string{"csv", "tsv", "null-delimited", "line-delimited", "human"}

var vulnReportColumns = []string{
	"software_type", "slug", "version", "id", "title", "link", "description",
	"copyright", "cvss_score", "cvss_vector", "cvss_rating", "cwe_id", "cwe_name",
}

var malwareReportColumns = []string{
	"filename", "signature_id", "signature_name", "signature_description", "matched_text",
}

// Global returns the options every invocation accepts.
func Global() config.Definitions {
	return config.NewDefinitions(
		config.ItemDefinition{
			Name:        config.ConfigurationOption,
			ShortName:   "c",
			Description: "Path to a configuration file.",
			Kind:        config.KindOption,
			Context:     config.ContextCLI,
		},
		config.ItemDefinition{
			Name:        "license",
			ShortName:   "l",
			Description: "Wordfence CLI license.",
			Kind:        config.KindOption,
		},
		config.ItemDefinition{
			Name:        "cache-directory",
			Description: "A path to use for cache files.",
			Kind:        config.KindOption,
			Default:     "~/.cache/wordfence",
		},
		config.ItemDefinition{
			Name:        "cache",
			Description: "Whether or not to enable the cache.",
			Kind:        config.KindOptionalFlag,
			Default:     true,
		},
		config.ItemDefinition{
			Name:        "verbose",
			ShortName:   "v",
			Description: "Enable verbose logging. If not specified, verbose output is enabled when output is a terminal.",
			Kind:        config.KindOptionalFlag,
		},
		config.ItemDefinition{
			Name:        "debug",
			ShortName:   "d",
			Description: "Enable debug logging.",
			Kind:        config.KindFlag,
		},
		config.ItemDefinition{
			Name:        "quiet",
			ShortName:   "q",
			Description: "Suppress all output other than scan results.",
			Kind:        config.KindFlag,
		},
		config.ItemDefinition{
			Name:        "color",
			Description: "Enable ANSI escape sequences in output. If not specified, color is enabled for terminals.",
			Kind:        config.KindOptionalFlag,
		},
		config.ItemDefinition{
			Name:        "banner",
			Description: "Display the Wordfence banner in command output when running in a TTY/terminal.",
			Kind:        config.KindOptionalFlag,
			Default:     true,
		},
		config.ItemDefinition{
			Name:        "check-for-update",
			Description: "Whether or not to run the update check.",
			Kind:        config.KindOptionalFlag,
			Default:     true,
		},
		config.ItemDefinition{
			Name:        "version",
			Description: "Display the version of Wordfence CLI.",
			Kind:        config.KindFlag,
			Context:     config.ContextCLI,
		},
	)
}

// stdinOptions are shared by the subcommands that read paths from standard input.
func stdinOptions() []config.ItemDefinition {
	return []config.ItemDefinition{
		{
			Name:        "read-stdin",
			Description: "Read paths from stdin. If not specified, paths will automatically be read from stdin when input is not from a TTY. Specify --no-read-stdin to disable.",
			Kind:        config.KindOptionalFlag,
		},
		{
			Name:            "path-separator",
			ShortName:       "s",
			Description:     "Separator used to delimit paths when reading from stdin. Defaults to the null byte.",
			Kind:            config.KindOption,
			Default:         nullSeparator,
			DefaultEncoding: config.EncodingBase64,
		},
	}
}

// reportOptions declares the output options of a subcommand producing a report.
func reportOptions(columns, defaultColumns []string, defaultFormat string) []config.ItemDefinition {
	return []config.ItemDefinition{
		{
			Name:        "output",
			Description: "Write results to stdout. This is the default behavior when --output-path is not specified.",
			Kind:        config.KindOptionalFlag,
		},
		{
			Name:        "output-path",
			Description: "Path to which to write results.",
			Kind:        config.KindOption,
		},
		{
			Name:         "output-columns",
			Description:  "An ordered, comma-delimited list of columns to include in the output.",
			Kind:         config.KindOptionRepeatable,
			Default:      defaultColumns,
			Separator:    ",",
			ValidOptions: columns,
		},
		{
			Name:         "output-format",
			Description:  "Output format used for result data.",
			Kind:         config.KindOption,
			Default:      defaultFormat,
			ValidOptions: reportFormats,
		},
		{
			Name:        "output-headers",
			Description: "Whether or not to include column headers in output.",
			Kind:        config.KindOptionalFlag,
		},
	}
}

// VulnScan declares the vuln-scan subcommand.
func VulnScan() *config.Subcommand {
	items := stdinOptions()
	items = append(items,
		config.ItemDefinition{
			Name:        "wordpress-path",
			ShortName:   "w",
			Description: "Path to the root of a WordPress installation to scan for core vulnerabilities.",
			Kind:        config.KindOptionRepeatable,
			Context:     config.ContextCLI,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "plugin-directory",
			ShortName:   "p",
			Description: "Path to a directory containing WordPress plugins to scan for vulnerabilities.",
			Kind:        config.KindOptionRepeatable,
			Context:     config.ContextCLI,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "theme-directory",
			ShortName:   "t",
			Description: "Path to a directory containing WordPress themes to scan for vulnerabilities.",
			Kind:        config.KindOptionRepeatable,
			Context:     config.ContextCLI,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "relative-content-path",
			Description: "Alternate path of the wp-content directory relative to the WordPress root.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "relative-plugins-path",
			Description: "Alternate path of the wp-content/plugins directory relative to the WordPress root.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "relative-mu-plugins-path",
			Description: "Alternate path of the wp-content/mu-plugins directory relative to the WordPress root.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "require-path",
			Description: "When enabled, invoking vuln-scan without specifying at least one path will trigger an error.",
			Kind:        config.KindFlag,
		},
	)
	items = append(items, reportOptions(vulnReportColumns, []string{"slug", "version", "id", "link"}, "human")...)
	items = append(items,
		config.ItemDefinition{
			Name:        "exclude-vulnerability",
			ShortName:   "e",
			Description: "Vulnerability IDs to exclude from scan results.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "include-vulnerability",
			ShortName:   "i",
			Description: "Vulnerability IDs to include in scan results.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "informational",
			ShortName:   "I",
			Description: "Whether or not to include informational vulnerability records in results.",
			Kind:        config.KindFlag,
			Default:     false,
		},
		config.ItemDefinition{
			Name:         "feed",
			ShortName:    "f",
			Description:  "The feed to use for vulnerability information. The production feed provides additional details while the scanner feed includes vulnerabilities that are not yet in the production feed.",
			Kind:         config.KindOption,
			Default:      FeedScanner,
			ValidOptions: []string{FeedProduction, FeedScanner},
		},
	)

	return &config.Subcommand{
		Name:        "vuln-scan",
		Description: "Scan WordPress installations for vulnerable software",
		Section:     "VULN_SCAN",
		Definitions: config.NewDefinitions(items...),
	}
}

// MalwareScan declares the malware-scan subcommand.
func MalwareScan() *config.Subcommand {
	items := stdinOptions()
	items = append(items,
		config.ItemDefinition{
			Name:        "include-files",
			Description: "Only scan filenames that are exact matches. Can be used multiple times.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "include-files-pattern",
			Description: "Python regex allow pattern. Only matching filenames will be scanned.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "exclude-files",
			Description: "Do not scan filenames that are exact matches. Can be used multiple times.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "exclude-files-pattern",
			Description: "Python regex deny pattern. Matching filenames will not be scanned.",
			Kind:        config.KindOptionRepeatable,
			Default:     []string{},
			Separator:   ",",
		},
		config.ItemDefinition{
			Name:        "images",
			Description: "Include image files in the scan.",
			Kind:        config.KindFlag,
		},
		config.ItemDefinition{
			Name:        "chunk-size",
			ShortName:   "z",
			Description: "Size of file chunks that will be scanned, in kilobytes.",
			Kind:        config.KindOption,
			ValueType:   config.TypeInt,
			Default:     1024,
		},
		config.ItemDefinition{
			Name:        "scanned-content-limit",
			Description: "The maximum amount of data to scan in each file, in megabytes.",
			Kind:        config.KindOption,
			ValueType:   config.TypeInt,
			Default:     50,
		},
		config.ItemDefinition{
			Name:        "workers",
			Description: "Number of worker processes used to perform scanning.",
			Kind:        config.KindOption,
			ValueType:   config.TypeInt,
			Default:     1,
		},
		config.ItemDefinition{
			Name:         "match-engine",
			Description:  "Regex engine to use for malware scanning.",
			Kind:         config.KindOption,
			Default:      "pcre",
			ValidOptions: []string{"pcre", "vectorscan"},
		},
	)
	items = append(items, reportOptions(malwareReportColumns, []string{"filename"}, "csv")...)

	return &config.Subcommand{
		Name:        "malware-scan",
		Description: "Scan files for malware",
		Section:     "MALWARE_SCAN",
		Definitions: config.NewDefinitions(items...),
	}
}

// NewRegistry assembles the global options and every subcommand.
func NewRegistry() (*config.Registry, error) {
	return config.NewRegistry(Global(), VulnScan(), MalwareScan())
}

// DiscoveryOptions locates wordfence-cli.ini and its siblings under the
// wordfence XDG directory.
func DiscoveryOptions() config.FileDiscoveryOptions {
	opts := config.DefaultDiscoveryOptions(AppName)
	opts.AppDir = "wordfence"
	opts.EnvVar = ConfigEnvVar
	return opts
}
