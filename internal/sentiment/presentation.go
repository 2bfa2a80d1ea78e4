package sentiment

// Scheme is the color scheme a label renders with.
type Scheme struct {
	// Name identifies the palette: green, red, gray or default
	Name string

	// Class is the CSS class list used by the web form
	Class string
}

var (
	SchemeGreen   = Scheme{Name: "green", Class: "text-green-600 bg-green-50 border-green-200"}
	SchemeRed     = Scheme{Name: "red", Class: "text-red-600 bg-red-50 border-red-200"}
	SchemeGray    = Scheme{Name: "gray", Class: "text-gray-600 bg-gray-50 border-gray-200"}
	SchemeDefault = Scheme{Name: "default", Class: "text-gray-600 bg-gray-50 border-gray-200"}
)

// Presentation bundles everything a surface needs to draw a label.
type Presentation struct {
	Text   string
	Scheme Scheme

	// Icon is a key into the emoji table; empty means no icon
	Icon string
}

// HasIcon reports whether the label is drawn with an icon.
func (p Presentation) HasIcon() bool {
	return p.Icon != ""
}

var presentations = map[Label]Presentation{
	Positive: {Text: "Positive", Scheme: SchemeGreen, Icon: "positive"},
	Negative: {Text: "Negative", Scheme: SchemeRed, Icon: "negative"},
	Neutral:  {Text: "Neutral", Scheme: SchemeGray, Icon: "neutral"},
}

var unknownPresentation = Presentation{Text: "Unknown", Scheme: SchemeDefault}

// Present returns the presentation for a label. Unknown labels get the
// gray "Unknown" fallback with no icon.
func Present(l Label) Presentation {
	if p, ok := presentations[l]; ok {
		return p
	}
	return unknownPresentation
}

// PresentTag is Present(ParseLabel(tag)).
func PresentTag(tag string) Presentation {
	return Present(ParseLabel(tag))
}
