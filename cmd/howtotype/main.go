package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"github.com/japaniel/howtotype/pkg/cangjie"
	"github.com/japaniel/howtotype/pkg/config"
	"github.com/japaniel/howtotype/pkg/howtotype"
)

// Exit statuses, following sysexits.h where one applies.
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 64 // EX_USAGE
	exitSoftware = 70 // EX_SOFTWARE
	exitOSFile   = 72 // EX_OSFILE
	exitIOErr    = 74 // EX_IOERR
	exitConfig   = 78 // EX_CONFIG
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath  string
	database    string
	version     string
	format      string
	separator   string
	quiet       bool
	normalize   bool
	verbose     bool
	showVersion bool
}

func newFlagSet(o *options, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("howtotype", flag.ContinueOnError)
	fs.SetOutput(stderr)

	const (
		versionUsage   = "The version of Cangjie used (3 or 5)"
		formatUsage    = "The output format (code, radical or json; c, r, j)"
		separatorUsage = "The separator between codes"
		quietUsage     = "Do not report an error when the command doesn't know how to type"
		verboseUsage   = "Log lookups to stderr"
	)
	fs.StringVar(&o.version, "C", "3", versionUsage)
	fs.StringVar(&o.version, "cj-version", "3", versionUsage)
	fs.StringVar(&o.format, "f", "radical", formatUsage)
	fs.StringVar(&o.format, "format", "radical", formatUsage)
	fs.StringVar(&o.separator, "s", "\n", separatorUsage)
	fs.StringVar(&o.separator, "separator", "\n", separatorUsage)
	fs.BoolVar(&o.quiet, "q", false, quietUsage)
	fs.BoolVar(&o.quiet, "quiet", false, quietUsage)
	fs.BoolVar(&o.verbose, "v", false, verboseUsage)
	fs.BoolVar(&o.verbose, "verbose", false, verboseUsage)
	fs.StringVar(&o.configPath, "config", "", "Path to a TOML, YAML or JSON config file (default "+config.DefaultPath()+")")
	fs.StringVar(&o.database, "db", "", "Path to libcangjie's database (default "+howtotype.DefaultPath+")")
	fs.BoolVar(&o.normalize, "nfc", false, "Normalize the character to Unicode NFC before lookup")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: howtotype [flags] CHARACTER\n\nFind out how to type a character with Cangjie.\n\n")
		fs.PrintDefaults()
	}
	return fs
}

// parseArgs parses flags appearing before and after positional arguments.
// Everything after "--" is positional.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func run(args []string, stdout, stderr io.Writer) int {
	var o options
	fs := newFlagSet(&o, stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if o.showVersion {
		fmt.Fprintf(stdout, "howtotype %s\n", howtotype.Version())
		return exitOK
	}
	if len(positional) != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one CHARACTER, got %d arguments\n", len(positional))
		fs.Usage()
		return exitUsage
	}
	character := positional[0]

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitConfig
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	version, err := cfg.CangjieVersion()
	if set["C"] || set["cj-version"] {
		version, err = cangjie.ParseVersion(o.version)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid version: %v\n", err)
		return exitUsage
	}

	format, err := cfg.OutputFormat()
	if set["f"] || set["format"] {
		format, err = config.ParseFormat(o.format)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	separator := cfg.Separator
	if set["s"] || set["separator"] {
		separator = o.separator
	}
	database := cfg.Database
	if set["db"] {
		database = o.database
	}

	engineOpts := []howtotype.Option{
		howtotype.WithPath(database),
		howtotype.WithNormalization(cfg.Normalize || o.normalize),
	}
	if cfg.Verbose || o.verbose {
		engineOpts = append(engineOpts, howtotype.WithLogger(log.New(stderr, "howtotype: ", 0)))
	}

	engine, err := howtotype.Open(engineOpts...)
	if err != nil {
		return openFailure(stderr, err)
	}
	defer engine.Close()

	codes, err := engine.HowToType(character, version)
	if err != nil {
		fmt.Fprintf(stderr, "Error: lookup failed: %v\n", err)
		return exitSoftware
	}

	if len(codes) == 0 {
		if o.quiet {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: Don't know how to type '%s'\n", character)
		return exitFailure
	}

	if err := render(stdout, character, version, codes, format, separator); err != nil {
		fmt.Fprintf(stderr, "Error: write output: %v\n", err)
		return exitIOErr
	}
	return exitOK
}

// openFailure reports an Open error and picks the exit status for its kind.
func openFailure(stderr io.Writer, err error) int {
	var connErr *howtotype.ConnectionError
	if !errors.As(err, &connErr) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSoftware
	}

	var code int
	switch connErr.Kind {
	case howtotype.KindIO:
		code = exitIOErr
	case howtotype.KindNotFound, howtotype.KindCorrupt, howtotype.KindWrongFormat:
		code = exitOSFile
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitSoftware
	}
	fmt.Fprintf(stderr, "Error: Cannot open libcangjie's database: %v\n", err)
	return code
}

type jsonCode struct {
	Code     string `json:"code"`
	Radicals string `json:"radicals"`
}

type jsonResult struct {
	Character string     `json:"character"`
	Version   int        `json:"version"`
	Codes     []jsonCode `json:"codes"`
}

func render(w io.Writer, character string, v cangjie.Version, codes []cangjie.Code, format config.Format, separator string) error {
	if format == config.FormatJSON {
		n, _ := v.Discriminator()
		out := jsonResult{Character: character, Version: n, Codes: make([]jsonCode, len(codes))}
		for i, c := range codes {
			out.Codes[i] = jsonCode{Code: c.Identifiers().String(), Radicals: c.Glyphs().String()}
		}
		return json.NewEncoder(w).Encode(out)
	}

	parts := make([]string, len(codes))
	for i, c := range codes {
		if format == config.FormatCode {
			parts[i] = c.Identifiers().String()
		} else {
			parts[i] = c.Glyphs().String()
		}
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, separator))
	return err
}
