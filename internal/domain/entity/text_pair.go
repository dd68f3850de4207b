package entity

// Frame column names expected by fitted pipelines
const (
	ColumnPremiseText    = "premise_text"
	ColumnHypothesisText = "hypothesis_text"
)

// TextRecord is a caller-supplied record that may carry a "text" entry
type TextRecord map[string]any

// Text returns the record's text entry, or "" when it is absent or not a string
func (r TextRecord) Text() string {
	if r == nil {
		return ""
	}
	s, ok := r["text"].(string)
	if !ok {
		return ""
	}
	return s
}

// TextPair is a premise/hypothesis pair built once per prediction
type TextPair struct {
	PremiseText    string
	HypothesisText string
}

// NewTextPair builds a pair from two records, defaulting missing text to ""
func NewTextPair(premise, hypothesis TextRecord) TextPair {
	return TextPair{
		PremiseText:    premise.Text(),
		HypothesisText: hypothesis.Text(),
	}
}

// Frame is a column-oriented batch of text pairs
type Frame struct {
	PremiseText    []string `json:"premise_text"`
	HypothesisText []string `json:"hypothesis_text"`
}

// NewFrame builds a single-row frame from a pair
func NewFrame(pair TextPair) *Frame {
	return &Frame{
		PremiseText:    []string{pair.PremiseText},
		HypothesisText: []string{pair.HypothesisText},
	}
}

// Len returns the number of rows in the frame
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.PremiseText)
}

// FeatureBatch is the numeric representation of a frame produced by feature extraction
type FeatureBatch struct {
	Rows [][]float64 `json:"rows"`
}

// Len returns the number of rows, treating a nil batch as empty
func (b *FeatureBatch) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Rows)
}

// IsEmpty reports whether the batch is absent or has zero rows
func (b *FeatureBatch) IsEmpty() bool {
	return b.Len() == 0
}
