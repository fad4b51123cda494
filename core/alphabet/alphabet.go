// core/alphabet/alphabet.go
package alphabet

import (
	"errors"
	"fmt"
	"sort"
)

// Kind selects the symbol set an index is built over.
type Kind int

const (
	DNA Kind = iota
	RNA
	Protein
	Custom
)

func (k Kind) String() string {
	switch k {
	case DNA:
		return "dna"
	case RNA:
		return "rna"
	case Protein:
		return "protein"
	default:
		return "custom"
	}
}

// ErrInvalidSymbol is wrapped by Validate with the offending symbol and offset.
var ErrInvalidSymbol = errors.New("invalid symbol")

// Alphabet is an immutable symbol set with case folding and, for nucleic
// alphabets, complement tables. The zero value is not usable; construct via
// New or NewCustom.
type Alphabet struct {
	kind    Kind
	symbols string // canonical (upper-case) members, sorted
	member  [256]bool
	fold    [256]byte
	comp    [256]byte // 0 = no complement
}

const proteinSymbols = "ACDEFGHIKLMNPQRSTVWY"

// New returns the alphabet for a builtin kind. Custom kinds need NewCustom.
func New(k Kind) (Alphabet, error) {
	switch k {
	case DNA:
		return build(DNA, "ACGT", map[byte]byte{'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A'}), nil
	case RNA:
		return build(RNA, "ACGU", map[byte]byte{'A': 'U', 'C': 'G', 'G': 'C', 'U': 'A'}), nil
	case Protein:
		return build(Protein, proteinSymbols, nil), nil
	default:
		return Alphabet{}, fmt.Errorf("kind %v requires NewCustom", k)
	}
}

// NewCustom builds an alphabet from an explicit symbol list. Lower-case
// letters are folded to upper case; duplicates after folding are rejected.
func NewCustom(symbols string) (Alphabet, error) {
	if symbols == "" {
		return Alphabet{}, errors.New("custom alphabet needs at least one symbol")
	}
	seen := [256]bool{}
	canon := make([]byte, 0, len(symbols))
	for i := 0; i < len(symbols); i++ {
		c := upper(symbols[i])
		if seen[c] {
			return Alphabet{}, fmt.Errorf("duplicate symbol %q in custom alphabet", c)
		}
		seen[c] = true
		canon = append(canon, c)
	}
	return build(Custom, string(canon), nil), nil
}

func build(k Kind, symbols string, comp map[byte]byte) Alphabet {
	b := []byte(symbols)
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	a := Alphabet{kind: k, symbols: string(b)}
	for i := 0; i < 256; i++ {
		a.fold[i] = byte(i)
	}
	for _, c := range b {
		a.member[c] = true
		if c >= 'A' && c <= 'Z' {
			a.fold[c+'a'-'A'] = c
		}
	}
	for from, to := range comp {
		a.comp[from] = to
	}
	return a
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func (a Alphabet) Kind() Kind      { return a.kind }
func (a Alphabet) Symbols() string { return a.symbols }

// Has reports membership of the canonical (already folded) symbol c.
func (a Alphabet) Has(c byte) bool { return a.member[c] }

// Fold maps c to its canonical case; non-members pass through unchanged.
func (a Alphabet) Fold(c byte) byte { return a.fold[c] }

// FoldSeq returns a new, case-folded copy of seq.
func (a Alphabet) FoldSeq(seq []byte) []byte {
	out := make([]byte, len(seq))
	for i, c := range seq {
		out[i] = a.fold[c]
	}
	return out
}

// Validate checks every symbol of seq (case-insensitively) against the
// alphabet and reports the first offender with its 0-based offset.
func (a Alphabet) Validate(seq []byte) error {
	for i, c := range seq {
		if !a.member[a.fold[c]] {
			return fmt.Errorf("%w %q at position %d", ErrInvalidSymbol, c, i)
		}
	}
	return nil
}

// Complementable reports whether the alphabet carries a complement table
// (DNA and RNA do; protein and custom alphabets do not).
func (a Alphabet) Complementable() bool { return a.comp['A'] != 0 }

// Complement returns the complement of canonical symbol c.
func (a Alphabet) Complement(c byte) (byte, bool) {
	r := a.comp[c]
	return r, r != 0
}

// RevComp returns the reverse complement of seq (folded first).
func (a Alphabet) RevComp(seq []byte) ([]byte, error) {
	if !a.Complementable() {
		return nil, fmt.Errorf("alphabet %s has no complement", a.kind)
	}
	n := len(seq)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		c := a.comp[a.fold[seq[n-1-i]]]
		if c == 0 {
			return nil, fmt.Errorf("%w %q in sequence", ErrInvalidSymbol, seq[n-1-i])
		}
		out[i] = c
	}
	return out, nil
}
