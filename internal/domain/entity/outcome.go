package entity

// UnknownReason classifies why a prediction resolved to "unknown"
type UnknownReason string

const (
	ReasonNone            UnknownReason = ""
	ReasonEmptyFeatures   UnknownReason = "empty_features"
	ReasonEmptyPrediction UnknownReason = "empty_prediction"
	ReasonUnmappedClass   UnknownReason = "unmapped_class"
	ReasonRuntimeFault    UnknownReason = "runtime_fault"
	ReasonValueFault      UnknownReason = "value_fault"
	ReasonUnexpectedFault UnknownReason = "unexpected_fault"
)

// IsFault reports whether the reason stems from a failure inside the model
func (r UnknownReason) IsFault() bool {
	switch r {
	case ReasonRuntimeFault, ReasonValueFault, ReasonUnexpectedFault:
		return true
	default:
		return false
	}
}

// Outcome is the result of a single prediction.
// Label is always set. Reason is empty unless the prediction degraded to "unknown".
type Outcome struct {
	Label    string
	Class    int
	HasClass bool
	Reason   UnknownReason
	Err      error
}

// Known creates a successful outcome
func Known(label string, class int) Outcome {
	return Outcome{Label: label, Class: class, HasClass: true}
}

// Unknown creates an outcome that degraded to the "unknown" label
func Unknown(reason UnknownReason, err error) Outcome {
	return Outcome{Label: string(LabelUnknown), Reason: reason, Err: err}
}

// UnmappedClass creates an outcome for a class missing from the label map
func UnmappedClass(class int) Outcome {
	return Outcome{
		Label:    string(LabelUnknown),
		Class:    class,
		HasClass: true,
		Reason:   ReasonUnmappedClass,
	}
}

// IsUnknown reports whether the outcome carries the "unknown" sentinel
func (o Outcome) IsUnknown() bool {
	return o.Reason != ReasonNone || o.Label == string(LabelUnknown)
}
