// ./internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "./...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		// wire schema stays leaf-level: nothing above it
		"seqindex/pkg/api": {
			"seqindex/internal/",
			"seqindex/cmd/",
		},
		// writers know records, never flags or app wiring
		"seqindex/internal/output": {
			"seqindex/internal/app", "seqindex/internal/appshell",
			"seqindex/internal/cli",
			"seqindex/cmd/",
		},
		// flag parsing stays independent of everything but version
		"seqindex/internal/cli": {
			"seqindex/internal/app", "seqindex/internal/appshell",
			"seqindex/internal/output",
			"seqindex/cmd/",
		},
		"seqindex/internal/version": {
			"seqindex/internal/", "seqindex/cmd/",
		},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, "seqindex/") {
			continue
		}
		imp := p.ImportPath
		for prefix, forbidden := range bans {
			if !strings.HasPrefix(imp, prefix) {
				continue
			}
			for _, dep := range p.Imports {
				for _, ban := range forbidden {
					if strings.HasPrefix(dep, ban) {
						violations = append(violations, imp+" → "+dep)
					}
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
