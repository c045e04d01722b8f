package types

// SymptomCount pairs a symptom with how often it was logged.
type SymptomCount struct {
	Symptom string `json:"symptom"`
	Count   int    `json:"count"`
}

// SourceBreakdown summarizes reactions traced to one exposure source.
type SourceBreakdown struct {
	Source      string `json:"source"`
	Count       int    `json:"count"`
	SevereCount int    `json:"severe_count"`
}

// InsightsReport aggregates a user's symptom log into simple patterns.
type InsightsReport struct {
	TotalEntries   int               `json:"total_entries"`
	SeverityCounts map[string]int    `json:"severity_counts"`
	TopSymptoms    []SymptomCount    `json:"top_symptoms"`
	Sources        []SourceBreakdown `json:"sources"`
	Patterns       []string          `json:"patterns"`
}
