// internal/cli/usage.go
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"seqindex/internal/version"
)

// PrintUsage writes the full help text. Defaults are looked up from fs so the
// text never drifts from the registered flags.
func PrintUsage(fs *pflag.FlagSet, out io.Writer) {
	def := func(name string) string {
		if f := fs.Lookup(name); f != nil {
			return f.DefValue
		}
		return ""
	}

	fmt.Fprintln(out, "seqindex – generalized suffix-tree index over biological sequences")
	fmt.Fprintf(out, "Version: %s\n\n", version.Version)

	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  seqindex <operation> -s ref.fa [flags]")
	fmt.Fprintln(out, "\nOperations:")
	fmt.Fprintln(out, "  find        All occurrences of --pattern, sorted by (sequence, position)")
	fmt.Fprintln(out, "  contains    Whether --pattern occurs at all")
	fmt.Fprintln(out, "  count       Number of occurrences of --pattern")
	fmt.Fprintln(out, "  direct      Direct repeats (arm ... spacer ... arm)")
	fmt.Fprintln(out, "  inverted    Inverted repeats (arm ... loop ... revcomp arm)")
	fmt.Fprintln(out, "  tandem      Tandem / microsatellite runs")

	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -p, --pattern string        Query pattern (find | contains | count) [*]")
	fmt.Fprintln(out, "  -s, --sequences file        FASTA file(s) (repeatable) or '-' for STDIN [*]")
	fmt.Fprintf(out, "  -a, --alphabet string       Alphabet: dna | rna | protein | custom [%s]\n", def("alphabet"))
	fmt.Fprintln(out, "      --symbols string        Symbol set for --alphabet custom")

	fmt.Fprintln(out, "\nRepeat parameters:")
	fmt.Fprintf(out, "      --min-arm int           Minimum arm length (direct | inverted) [%s]\n", def("min-arm"))
	fmt.Fprintf(out, "      --max-spacing int       Maximum spacing between direct arms [%s]\n", def("max-spacing"))
	fmt.Fprintf(out, "      --max-loop int          Maximum loop between inverted arms [%s]\n", def("max-loop"))
	fmt.Fprintf(out, "      --max-unit int          Maximum tandem unit length [%s]\n", def("max-unit"))
	fmt.Fprintf(out, "      --min-repeats int       Minimum tandem copy count [%s]\n", def("min-repeats"))

	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output string         Output: text | json [%s]\n", def("output"))
	fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
	fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when nothing is found [%s]\n", def("no-match-exit-code"))

	fmt.Fprintln(out, "\nMiscellaneous:")
	fmt.Fprintln(out, "  -q, --quiet                 Suppress non-essential log output")
	fmt.Fprintln(out, "  -v, --version               Print version and exit")
	fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
}
