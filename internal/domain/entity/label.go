package entity

import (
	"sort"

	"github.com/samber/lo"
)

// Label represents an NLI category name
type Label string

const (
	LabelEntailment    Label = "entailment"
	LabelContradiction Label = "contradiction"
	LabelNeutral       Label = "neutral"
	LabelUnknown       Label = "unknown"
)

// LabelMap maps classifier class indices to label names
type LabelMap map[int]string

// DefaultLabelMap returns the three-class entailment/contradiction/neutral taxonomy
func DefaultLabelMap() LabelMap {
	return LabelMap{
		0: string(LabelEntailment),
		1: string(LabelContradiction),
		2: string(LabelNeutral),
	}
}

// Lookup returns the label for class, or "unknown" when class is not mapped
func (m LabelMap) Lookup(class int) (string, bool) {
	label, ok := m[class]
	if !ok {
		return string(LabelUnknown), false
	}
	return label, true
}

// Labels returns the distinct labels of the map in class order
func (m LabelMap) Labels() []string {
	classes := lo.Keys(map[int]string(m))
	sort.Ints(classes)
	return lo.Uniq(lo.Map(classes, func(class int, _ int) string {
		return m[class]
	}))
}

// Clone returns a copy of the map
func (m LabelMap) Clone() LabelMap {
	return LabelMap(lo.Assign(map[int]string(m)))
}
