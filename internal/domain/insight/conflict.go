package insight

const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// Conflict is a detected disagreement between a value already on a profile and
// a newly proposed one. Conflicts are ephemeral: produced by the extraction
// step per update request and consumed by the resolver, never persisted as
// their own rows.
type Conflict struct {
	Field        string      `json:"field"`
	NewValue     interface{} `json:"new_value"`
	CurrentValue interface{} `json:"current_value"`
	Severity     string      `json:"severity"`
}
