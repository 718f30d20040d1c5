package toc

// Outcome is a direct outcome with an owned list of sub-outcomes.
// Sub-outcomes exist only inside their parent: deleting the outcome
// removes them with it.
type Outcome struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Expanded bool   `json:"expanded"`

	// SubOutcomes is the ordered child list, owned exclusively by this record
	SubOutcomes []SubOutcome `json:"subOutcomes"`
}

// SubOutcome is a single child entry under a direct outcome.
type SubOutcome struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}
