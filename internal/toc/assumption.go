package toc

// Certainty is the closed confidence rating for an assumption.
// Only the three enumerated values are permitted.
type Certainty string

const (
	CertaintyVery       Certainty = "Very certain"
	CertaintyModerately Certainty = "Moderately certain"
	CertaintyUncertain  Certainty = "Uncertain"
)

// DefaultCertainty is the rating assigned when a new assumption is created
// without an explicit choice.
const DefaultCertainty = CertaintyVery

// Valid reports whether c is one of the enumerated ratings.
func (c Certainty) Valid() bool {
	switch c {
	case CertaintyVery, CertaintyModerately, CertaintyUncertain:
		return true
	}
	return false
}

// Certainties returns the enumerated ratings in display order.
func Certainties() []Certainty {
	return []Certainty{CertaintyVery, CertaintyModerately, CertaintyUncertain}
}

// ParseCertainty maps a string to a Certainty, falling back to
// DefaultCertainty for anything outside the enumeration. Matching is exact;
// the rating values are fixed display strings, not free text.
func ParseCertainty(s string) Certainty {
	c := Certainty(s)
	if !c.Valid() {
		return DefaultCertainty
	}
	return c
}

// Assumption is one row of the "what we believe to be true" table.
type Assumption struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Certainty   Certainty `json:"certainty"`
}
