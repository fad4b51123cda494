package suffixtree

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"seqindex-core/alphabet"
)

func mustBuild(t *testing.T, seqs ...string) *Index {
	t.Helper()
	ab, err := alphabet.New(alphabet.DNA)
	if err != nil {
		t.Fatalf("alphabet: %v", err)
	}
	bs := make([][]byte, len(seqs))
	for i, s := range seqs {
		bs[i] = []byte(s)
	}
	ix, err := Build(context.Background(), ab, bs...)
	if err != nil {
		t.Fatalf("Build(%v): %v", seqs, err)
	}
	return ix
}

func positions(t *testing.T, ix *Index, pat string) []Occurrence {
	t.Helper()
	occ, err := ix.FindAllOccurrences([]byte(pat))
	if err != nil {
		t.Fatalf("FindAllOccurrences(%q): %v", pat, err)
	}
	return occ
}

func TestOverlapInclusion(t *testing.T) {
	ix := mustBuild(t, "AAAA")
	got := positions(t, ix, "AA")
	want := []Occurrence{{0, 0}, {0, 1}, {0, 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("AA in AAAA = %v, want %v", got, want)
	}
}

func TestAbsentPattern(t *testing.T) {
	ix := mustBuild(t, "AAAAAAAAAA")
	if got := positions(t, ix, "CCCC"); len(got) != 0 {
		t.Errorf("expected no occurrences, got %v", got)
	}
	ok, err := ix.Contains([]byte("CCCC"))
	if err != nil || ok {
		t.Errorf("Contains = %v, %v", ok, err)
	}
	n, err := ix.CountOccurrences([]byte("CCCC"))
	if err != nil || n != 0 {
		t.Errorf("Count = %d, %v", n, err)
	}
}

func TestPatternLongerThanSequence(t *testing.T) {
	ix := mustBuild(t, "ACGT")
	if got := positions(t, ix, "ACGTACGT"); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestWholeSequenceSingleOccurrence(t *testing.T) {
	const s = "GATTACA"
	ix := mustBuild(t, s)
	got := positions(t, ix, s)
	if !reflect.DeepEqual(got, []Occurrence{{0, 0}}) {
		t.Fatalf("find(S) = %v", got)
	}
}

// Count/contains consistency over every substring of the input.
func TestQueryConsistency(t *testing.T) {
	const s = "ACGTACGACGTT"
	ix := mustBuild(t, s)
	for i := 0; i < len(s); i++ {
		for j := i + 1; j <= len(s); j++ {
			pat := s[i:j]
			occ := positions(t, ix, pat)
			n, err := ix.CountOccurrences([]byte(pat))
			if err != nil {
				t.Fatalf("count %q: %v", pat, err)
			}
			if n != len(occ) {
				t.Fatalf("count(%q)=%d but find returned %d", pat, n, len(occ))
			}
			ok, err := ix.Contains([]byte(pat))
			if err != nil {
				t.Fatalf("contains %q: %v", pat, err)
			}
			if ok != (n > 0) {
				t.Fatalf("contains(%q)=%v with count %d", pat, ok, n)
			}
			// soundness: every reported slice equals the pattern
			for _, o := range occ {
				if got := s[o.Pos : o.Pos+len(pat)]; got != pat {
					t.Fatalf("occurrence %v of %q reads back %q", o, pat, got)
				}
			}
		}
	}
}

func TestCaseInsensitivity(t *testing.T) {
	ix := mustBuild(t, "ACGTACGT")
	upper := positions(t, ix, "ACGT")
	lower := positions(t, ix, "acgt")
	if !reflect.DeepEqual(upper, lower) {
		t.Fatalf("case folding broken: %v vs %v", upper, lower)
	}
	if len(upper) != 2 {
		t.Fatalf("expected 2 occurrences, got %v", upper)
	}
}

func TestLowerCaseBuild(t *testing.T) {
	ix := mustBuild(t, "acgtacgt")
	if got := positions(t, ix, "ACGT"); len(got) != 2 {
		t.Fatalf("expected 2 occurrences on lower-case-built index, got %v", got)
	}
}

func TestGeneralizedAttribution(t *testing.T) {
	ix := mustBuild(t, "ACGTA", "GTAC")
	got := positions(t, ix, "GTA")
	want := []Occurrence{{0, 2}, {1, 0}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("GTA = %v, want %v", got, want)
	}
	// A suffix shared as text across sequences must never bridge a sentinel.
	if got := positions(t, ix, "AGTAC"); len(got) != 0 {
		t.Fatalf("pattern crossing the sequence boundary matched: %v", got)
	}
}

func TestIdempotence(t *testing.T) {
	ix := mustBuild(t, "ACACACAC")
	first := positions(t, ix, "ACA")
	second := positions(t, ix, "ACA")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated query differs: %v vs %v", first, second)
	}
}

func TestEmptyPatternErrors(t *testing.T) {
	ix := mustBuild(t, "ACGT")
	if _, err := ix.FindAllOccurrences(nil); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("find: %v", err)
	}
	if _, err := ix.Contains(nil); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("contains: %v", err)
	}
	if _, err := ix.CountOccurrences(nil); !errors.Is(err, ErrInvalidPattern) {
		t.Errorf("count: %v", err)
	}
}

func TestNonAlphabetPatternIsAbsent(t *testing.T) {
	ix := mustBuild(t, "ACGT")
	if got := positions(t, ix, "AC#T"); len(got) != 0 {
		t.Fatalf("non-alphabet pattern matched: %v", got)
	}
}

func TestBuildErrors(t *testing.T) {
	ab, _ := alphabet.New(alphabet.DNA)
	ctx := context.Background()

	if _, err := Build(ctx, ab); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("no sequences: %v", err)
	}
	if _, err := Build(ctx, ab, []byte("ACGT"), nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty sequence: %v", err)
	}
	if _, err := Build(ctx, ab, []byte("ACGT"), []byte("ACXT")); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("invalid symbol: %v", err)
	}
}

func TestBuildErrorNamesSequenceAndOffset(t *testing.T) {
	ab, _ := alphabet.New(alphabet.DNA)
	_, err := Build(context.Background(), ab, []byte("ACGT"), []byte("ACXT"))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"sequence 1", "position 2"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should mention %q", msg, want)
		}
	}
}

func TestBuildCanceled(t *testing.T) {
	ab, _ := alphabet.New(alphabet.DNA)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Build(ctx, ab, []byte("ACGTACGT")); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLeavesUnderShortCircuits(t *testing.T) {
	ix := mustBuild(t, "ACACACAC")
	n, ok := ix.Descend([]byte("AC"))
	if !ok {
		t.Fatal("descend failed")
	}
	visits := 0
	done := ix.LeavesUnder(n, func(seq, pos int) bool {
		visits++
		return false
	})
	if done || visits != 1 {
		t.Fatalf("expected early stop after 1 leaf, visits=%d done=%v", visits, done)
	}
}

func TestConcurrentReaders(t *testing.T) {
	ix := mustBuild(t, "ACGTACGTACGTACGT")
	doneCh := make(chan []Occurrence, 8)
	for i := 0; i < 8; i++ {
		go func() {
			occ, _ := ix.FindAllOccurrences([]byte("ACGT"))
			doneCh <- occ
		}()
	}
	first := <-doneCh
	for i := 1; i < 8; i++ {
		if got := <-doneCh; !reflect.DeepEqual(got, first) {
			t.Fatalf("concurrent result differs: %v vs %v", got, first)
		}
	}
}
