package types

// AnalysisIssue is one potential allergy problem found in analyzed text.
// AllergenID references the catalog; Name is the catalog name echoed at
// analysis time so consumers can still label the issue if the id has
// since left their loaded catalog.
type AnalysisIssue struct {
	AllergenID string `json:"allergenId"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Reason     string `json:"reason"`
}

// Issue type values.
const (
	IssueDirectMatch     = "Direct Match"
	IssueCrossReactivity = "Cross-Reactivity Warning"
)

// AnalysisResult is the analyzer response body under "analysis_result".
type AnalysisResult struct {
	DetectedIngredients    []string        `json:"detected_ingredients"`
	PotentialAllergyIssues []AnalysisIssue `json:"potential_allergy_issues"`
}
