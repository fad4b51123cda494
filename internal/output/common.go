package output

// Canonical header rows for text/TSV outputs. Keep these as the single
// source of truth; all writers and snapshot tests use them.
const (
	OccurrenceTSVHeader = "sequence_id\tposition\tpattern"
	DirectTSVHeader     = "sequence_id\tleft_pos\tright_pos\tarm_len\tspacing\tarm"
	InvertedTSVHeader   = "sequence_id\tleft_pos\tright_pos\tarm_len\tloop\tarm"
	TandemTSVHeader     = "sequence_id\tposition\tunit\tunit_len\tcount"
)
