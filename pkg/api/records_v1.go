// pkg/api/records_v1.go
package api

// OccurrenceV1 is the stable JSON schema for pattern matches.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type OccurrenceV1 struct {
	SequenceID string `json:"sequence_id"`
	Position   int    `json:"position"`
	Pattern    string `json:"pattern,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
}

// DirectRepeatV1 is the stable schema for direct (interspersed) repeats.
// Positions are 0-based; the arm occupies [pos, pos+arm_len).
type DirectRepeatV1 struct {
	SequenceID string `json:"sequence_id"`
	LeftPos    int    `json:"left_pos"`
	RightPos   int    `json:"right_pos"`
	ArmLen     int    `json:"arm_len"`
	Spacing    int    `json:"spacing"`
	Arm        string `json:"arm,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
}

// InvertedRepeatV1 is the stable schema for inverted (palindromic) repeats.
// The left arm equals the reverse complement of the right arm.
type InvertedRepeatV1 struct {
	SequenceID string `json:"sequence_id"`
	LeftPos    int    `json:"left_pos"`
	RightPos   int    `json:"right_pos"`
	ArmLen     int    `json:"arm_len"`
	Loop       int    `json:"loop"`
	Arm        string `json:"arm,omitempty"`
	SourceFile string `json:"source_file,omitempty"`
}

// ContainsV1 is the stable schema for membership answers.
type ContainsV1 struct {
	Pattern  string `json:"pattern"`
	Contains bool   `json:"contains"`
}

// CountV1 is the stable schema for occurrence counts.
type CountV1 struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// TandemRepeatV1 is the stable schema for tandem / microsatellite runs.
type TandemRepeatV1 struct {
	SequenceID string `json:"sequence_id"`
	Position   int    `json:"position"`
	Unit       string `json:"unit"`
	UnitLen    int    `json:"unit_len"`
	Count      int    `json:"count"`
	SourceFile string `json:"source_file,omitempty"`
}
