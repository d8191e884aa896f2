package model

// ScoreReport is the structured result of scoring an uploaded resume. It is
// read-only once produced: the review UI never mutates it.
//
// Category scores and item statuses come from a generative collaborator and
// are NOT guaranteed to be mutually consistent (an item may say "pass" while
// carrying a non-zero issue count). Consumers must not infer one from the
// other.
type ScoreReport struct {
	Overall    int             `json:"overallScore"`
	IssueCount int             `json:"issueCount"`
	Categories []ScoreCategory `json:"categories"`
}

type ScoreCategory struct {
	Name  string      `json:"name"`
	Score int         `json:"score"`
	Items []ScoreItem `json:"items"`
}

type ScoreItem struct {
	Label       string `json:"label"`
	Status      string `json:"status"` // "pass" or "fail"
	Issues      int    `json:"issues"`
	Description string `json:"description"`
}

// FallbackScoreReport is the fixed report substituted when the scoring
// collaborator's output cannot be parsed into the expected shape. It is
// deterministic: repeated calls return equal values.
func FallbackScoreReport() ScoreReport {
	return ScoreReport{
		Overall:    72,
		IssueCount: 6,
		Categories: []ScoreCategory{
			{
				Name:  "Content",
				Score: 70,
				Items: []ScoreItem{
					{Label: "Quantified impact", Status: "fail", Issues: 3, Description: "Several bullet points describe duties without measurable outcomes."},
					{Label: "Action verbs", Status: "pass", Issues: 0, Description: "Most bullet points open with strong action verbs."},
				},
			},
			{
				Name:  "Format",
				Score: 78,
				Items: []ScoreItem{
					{Label: "Single column layout", Status: "pass", Issues: 0, Description: "Layout parses cleanly in automated screening systems."},
					{Label: "Section headings", Status: "fail", Issues: 1, Description: "One section heading uses a non-standard label."},
				},
			},
			{
				Name:  "Keywords",
				Score: 68,
				Items: []ScoreItem{
					{Label: "Role keywords", Status: "fail", Issues: 2, Description: "Key terms from the target role title are missing from the summary."},
				},
			},
		},
	}
}
