// internal/output/json.go
package output

import (
	"encoding/json"
	"io"
)

// WriteJSON writes v as a single pretty-indented JSON document. Every JSON
// payload is a v1 wire record from pkg/api, so the schema stays stable.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
