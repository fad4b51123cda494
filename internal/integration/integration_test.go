// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"seqindex/internal/app"
	"seqindex/pkg/api"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func run(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(args, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestFindEndToEnd(t *testing.T) {
	fa := write(t, "ref.fa", ">chr1\nACGTACGTACGT\n")
	code, out, errOut := run(t, "find", "-p", "ACGT", "-s", fa)
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 { // header + 3 occurrences
		t.Fatalf("output:\n%s", out)
	}
	if lines[1] != "chr1\t0\tACGT" || lines[3] != "chr1\t8\tACGT" {
		t.Fatalf("rows:\n%s", out)
	}
}

func TestFindJSON(t *testing.T) {
	fa := write(t, "ref.fa", ">chr1\nACGTACGT\n>chr2\nTTACGTTT\n")
	code, out, errOut := run(t, "find", "-p", "ACGT", "-s", fa, "--output", "json")
	if code != 0 {
		t.Fatalf("exit %d, err=%s", code, errOut)
	}
	var recs []api.OccurrenceV1
	if err := json.Unmarshal([]byte(out), &recs); err != nil {
		t.Fatalf("bad JSON: %v\n%s", err, out)
	}
	if len(recs) != 3 || recs[2].SequenceID != "chr2" || recs[2].Position != 2 {
		t.Fatalf("records: %+v", recs)
	}
}

func TestNoMatchExitCode(t *testing.T) {
	fa := write(t, "ref.fa", ">s\nAAAAAAAA\n")
	code, _, _ := run(t, "find", "-p", "CCCC", "-s", fa)
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	code, _, _ = run(t, "find", "-p", "CCCC", "-s", fa, "--no-match-exit-code", "0")
	if code != 0 {
		t.Fatalf("exit = %d, want 0", code)
	}
}

func TestContainsAndCount(t *testing.T) {
	fa := write(t, "ref.fa", ">s\nACGTACGT\n")
	code, out, _ := run(t, "contains", "-p", "CGTA", "-s", fa)
	if code != 0 || strings.TrimSpace(out) != "true" {
		t.Fatalf("contains: exit %d out %q", code, out)
	}
	code, out, _ = run(t, "contains", "-p", "CCCC", "-s", fa)
	if code != 1 || strings.TrimSpace(out) != "false" {
		t.Fatalf("contains absent: exit %d out %q", code, out)
	}
	code, out, _ = run(t, "count", "-p", "ACGT", "-s", fa)
	if code != 0 || strings.TrimSpace(out) != "2" {
		t.Fatalf("count: exit %d out %q", code, out)
	}
}

func TestRepeatOperations(t *testing.T) {
	fa := write(t, "ref.fa", ">s\nACGTTTACGT\n")
	code, out, errOut := run(t, "direct", "-s", fa, "--min-arm", "3", "--max-spacing", "5")
	if code != 0 {
		t.Fatalf("direct: exit %d err %s", code, errOut)
	}
	if !strings.Contains(out, "s\t0\t6\t4\t2\tACGT") {
		t.Fatalf("direct output:\n%s", out)
	}

	fa = write(t, "pal.fa", ">s\nGAATTC\n")
	code, out, errOut = run(t, "inverted", "-s", fa, "--min-arm", "3", "--max-loop", "0")
	if code != 0 {
		t.Fatalf("inverted: exit %d err %s", code, errOut)
	}
	if !strings.Contains(out, "s\t0\t3\t3\t0\tGAA") {
		t.Fatalf("inverted output:\n%s", out)
	}

	fa = write(t, "ms.fa", ">s\nACACACAC\n")
	code, out, errOut = run(t, "tandem", "-s", fa, "--max-unit", "2", "--min-repeats", "3")
	if code != 0 {
		t.Fatalf("tandem: exit %d err %s", code, errOut)
	}
	if !strings.Contains(out, "s\t0\tAC\t2\t4") {
		t.Fatalf("tandem output:\n%s", out)
	}
}

func TestMultipleFiles(t *testing.T) {
	a := write(t, "a.fa", ">one\nACGTAA\n")
	b := write(t, "b.fa", ">two\nTTACGT\n")
	code, out, errOut := run(t, "find", "-p", "ACGT", "-s", a, "-s", b)
	if code != 0 {
		t.Fatalf("exit %d err %s", code, errOut)
	}
	if !strings.Contains(out, "one\t0\tACGT") || !strings.Contains(out, "two\t2\tACGT") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestUsageErrors(t *testing.T) {
	fa := write(t, "ref.fa", ">s\nACGT\n")
	for _, args := range [][]string{
		{"find", "-s", fa},                                       // no pattern
		{"frobnicate", "-s", fa},                                 // bad op
		{"find", "-p", "A", "-s", fa, "--output", "xml"},         // bad format
		{"inverted", "-s", fa, "--alphabet", "protein"},          // no complement
		{"direct", "-s", fa, "--min-arm", "0"},                   // bad parameter
		{"find", "-p", "", "-s", fa},                             // empty pattern
		{"find", "-p", "A", "-s", fa, "--alphabet", "custom"},    // missing symbols
	} {
		if code, _, _ := run(t, args...); code != 2 {
			t.Errorf("%v: exit %d, want 2", args, code)
		}
	}
}

func TestInvalidSymbolNamesRecord(t *testing.T) {
	fa := write(t, "ref.fa", ">good\nACGT\n>bad\nACXT\n")
	code, _, errOut := run(t, "find", "-p", "ACGT", "-s", fa)
	if code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
	if !strings.Contains(errOut, "bad") {
		t.Fatalf("stderr should name the record: %s", errOut)
	}
}

func TestMissingFileIsRuntimeError(t *testing.T) {
	code, _, errOut := run(t, "find", "-p", "ACGT", "-s", "does-not-exist.fa")
	if code != 3 || errOut == "" {
		t.Fatalf("exit %d err %q", code, errOut)
	}
}

func TestHelpAndVersion(t *testing.T) {
	code, out, _ := run(t, "--help")
	if code != 0 || !strings.Contains(out, "Operations:") {
		t.Fatalf("help: exit %d\n%s", code, out)
	}
	code, out, _ = run(t, "--version")
	if code != 0 || !strings.Contains(out, "seqindex version") {
		t.Fatalf("version: exit %d out %q", code, out)
	}
}

func TestCanceledContext(t *testing.T) {
	fa := write(t, "ref.fa", ">s\nACGTACGTACGT\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := app.RunContext(ctx, []string{"find", "-p", "ACGT", "-s", fa}, &out, &errBuf)
	if code != 130 {
		t.Fatalf("exit = %d, want 130", code)
	}
}
