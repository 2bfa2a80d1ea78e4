package sentiment

// Label is the closed set of sentiment categories a result can render as.
type Label int

const (
	// Unknown covers any tag outside the three known ones
	Unknown Label = iota
	Positive
	Negative
	Neutral
)

// Wire tags exchanged with the backend.
const (
	TagPositive = "<POSITIVE>"
	TagNegative = "<NEGATIVE>"
	TagNeutral  = "<NEUTRAL>"
)

// Labels returns the three known labels in display order.
func Labels() []Label {
	return []Label{Positive, Negative, Neutral}
}

// ParseLabel maps a wire tag to its label. Matching is exact.
func ParseLabel(tag string) Label {
	switch tag {
	case TagPositive:
		return Positive
	case TagNegative:
		return Negative
	case TagNeutral:
		return Neutral
	default:
		return Unknown
	}
}

// Tag returns the wire tag, or an empty string for Unknown.
func (l Label) Tag() string {
	switch l {
	case Positive:
		return TagPositive
	case Negative:
		return TagNegative
	case Neutral:
		return TagNeutral
	default:
		return ""
	}
}

// Known reports whether l is one of the three classified labels.
func (l Label) Known() bool {
	return l == Positive || l == Negative || l == Neutral
}

// String returns the display text.
func (l Label) String() string {
	return Present(l).Text
}
