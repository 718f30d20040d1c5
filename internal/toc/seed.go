package toc

// Seed returns the built-in default document used when no snapshot exists.
func Seed() Document {
	return Document{
		Reason:      "",
		Tags:        []string{},
		Assumptions: []Assumption{},
		Programmes: []TextRecord{
			{ID: "p1", Text: "Community workshops and after-school activities"},
		},
		DirectOutcomes: []Outcome{
			{
				ID:    "d1",
				Title: "Students enhance their digital skills",
				SubOutcomes: []SubOutcome{
					{ID: "d1s1", Text: "Students incorporate resilience and wellbeing practices"},
				},
			},
		},
		IndirectOutcomes: []TextRecord{
			{ID: "i1", Text: "Parents adopt supportive study routines at home"},
			{ID: "i2", Text: "Local businesses offer internships to youth"},
			{ID: "i3", Text: "Peers form study groups"},
		},
		UltimateOutcomes: []TextRecord{
			{ID: "u1", Text: "Youth finish school with qualifications and resilience"},
			{ID: "u2", Text: "Communities benefit from higher youth engagement"},
		},
	}
}
