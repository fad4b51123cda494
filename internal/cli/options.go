// internal/cli/options.go
package cli

import (
	"errors"
	"fmt"

	"fortio.org/struct2env"
	"github.com/spf13/pflag"
)

// Operations selected by the first positional argument.
const (
	OpFind     = "find"
	OpContains = "contains"
	OpCount    = "count"
	OpDirect   = "direct"
	OpInverted = "inverted"
	OpTandem   = "tandem"
)

// EnvConfig holds the options that can be defaulted from the environment
// (SEQINDEX_ALPHABET, SEQINDEX_OUTPUT, SEQINDEX_QUIET); explicit flags win.
type EnvConfig struct {
	Alphabet string
	Output   string
	Quiet    bool
}

// Options holds all CLI flags and arguments.
type Options struct {
	Op string

	// Input
	Pattern  string
	SeqFiles []string
	Alphabet string // dna | rna | protein | custom
	Symbols  string // custom alphabet symbol set

	// Repeat parameters
	MinArm     int
	MaxSpacing int
	MaxLoop    int
	MaxUnit    int
	MinRepeats int

	// Output
	Output string // text | json
	Header bool   // true unless --no-header

	Quiet           bool
	NoMatchExitCode int
	Version         bool
}

// Parse is the top-level call for CLI parsing.
func Parse(argv []string) (Options, error) { return ParseArgs(NewFlagSet("seqindex"), argv) }

// ParseArgs registers and parses all flags, returns an Options struct.
// The operation is the first positional argument.
func ParseArgs(fs *pflag.FlagSet, argv []string) (Options, error) {
	// Environment supplies defaults only; flags parsed below override.
	env := EnvConfig{Alphabet: "dna", Output: "text"}
	if errs := struct2env.SetFromEnv("SEQINDEX_", &env); len(errs) > 0 {
		return Options{}, fmt.Errorf("environment: %w", errs[0])
	}
	opt := Options{
		Alphabet:        env.Alphabet,
		Output:          env.Output,
		Quiet:           env.Quiet,
		NoMatchExitCode: 1,
		MinArm:          10,
		MaxSpacing:      100,
		MaxLoop:         100,
		MaxUnit:         6,
		MinRepeats:      3,
	}

	var help, noHeader bool

	// Input
	fs.StringVarP(&opt.Pattern, "pattern", "p", "", "query pattern (find | contains | count) [*]")
	fs.StringArrayVarP(&opt.SeqFiles, "sequences", "s", nil, "FASTA file(s) (repeatable or '-') [*]")
	fs.StringVarP(&opt.Alphabet, "alphabet", "a", opt.Alphabet, "alphabet: dna | rna | protein | custom")
	fs.StringVar(&opt.Symbols, "symbols", opt.Symbols, "symbol set for --alphabet custom")

	// Repeat parameters
	fs.IntVar(&opt.MinArm, "min-arm", opt.MinArm, "minimum repeat arm length (direct | inverted)")
	fs.IntVar(&opt.MaxSpacing, "max-spacing", opt.MaxSpacing, "maximum spacing between direct-repeat arms")
	fs.IntVar(&opt.MaxLoop, "max-loop", opt.MaxLoop, "maximum loop between inverted-repeat arms")
	fs.IntVar(&opt.MaxUnit, "max-unit", opt.MaxUnit, "maximum tandem unit length")
	fs.IntVar(&opt.MinRepeats, "min-repeats", opt.MinRepeats, "minimum tandem copy count")

	// Output
	fs.StringVarP(&opt.Output, "output", "o", opt.Output, "output format: text | json")
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", opt.NoMatchExitCode, "exit code when nothing is found")

	fs.BoolVarP(&opt.Quiet, "quiet", "q", opt.Quiet, "suppress non-essential log output")
	fs.BoolVarP(&opt.Version, "version", "v", false, "print version and exit")
	fs.BoolVarP(&help, "help", "h", false, "show this help message")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		return opt, pflag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	// Validation
	switch fs.NArg() {
	case 0:
		return opt, errors.New("missing operation: find | contains | count | direct | inverted | tandem")
	case 1:
		opt.Op = fs.Arg(0)
	default:
		return opt, fmt.Errorf("unexpected argument %q", fs.Arg(1))
	}
	switch opt.Op {
	case OpFind, OpContains, OpCount:
		if opt.Pattern == "" {
			return opt, fmt.Errorf("%s requires --pattern", opt.Op)
		}
	case OpDirect, OpInverted, OpTandem:
		if opt.Pattern != "" {
			return opt, fmt.Errorf("--pattern is not used by %s", opt.Op)
		}
	default:
		return opt, fmt.Errorf("unknown operation %q", opt.Op)
	}
	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	switch opt.Alphabet {
	case "dna", "rna", "protein":
		if opt.Symbols != "" {
			return opt, errors.New("--symbols requires --alphabet custom")
		}
	case "custom":
		if opt.Symbols == "" {
			return opt, errors.New("--alphabet custom requires --symbols")
		}
	default:
		return opt, fmt.Errorf("invalid --alphabet %q", opt.Alphabet)
	}
	if opt.Output != "text" && opt.Output != "json" {
		return opt, fmt.Errorf("invalid --output %q", opt.Output)
	}
	return opt, nil
}
