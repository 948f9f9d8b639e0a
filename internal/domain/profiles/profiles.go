package profiles

// Domain is one fixed category of student profile data. The set is closed:
// mapping tables, merge targets and score formulas are keyed by these values.
type Domain string

const (
	DomainHealth          Domain = "health"
	DomainAcademic        Domain = "academic"
	DomainSocialEmotional Domain = "social_emotional"
	DomainTalentsInterest Domain = "talents_interests"
	DomainBehavioral      Domain = "behavioral"
	DomainMotivation      Domain = "motivation"
	DomainRiskFactors     Domain = "risk_factors"
	DomainFamily          Domain = "family"
)

// AllDomains lists every accepted domain in a stable order.
func AllDomains() []Domain {
	return []Domain{
		DomainHealth,
		DomainAcademic,
		DomainSocialEmotional,
		DomainTalentsInterest,
		DomainBehavioral,
		DomainMotivation,
		DomainRiskFactors,
		DomainFamily,
	}
}

func (d Domain) Valid() bool {
	switch d {
	case DomainHealth, DomainAcademic, DomainSocialEmotional, DomainTalentsInterest,
		DomainBehavioral, DomainMotivation, DomainRiskFactors, DomainFamily:
		return true
	}
	return false
}

// Materialized reports whether the domain has its own profile table.
// behavioral, motivation, risk_factors and family are accepted by the merge
// pipeline but only logged until their tables land.
func (d Domain) Materialized() bool {
	switch d {
	case DomainHealth, DomainAcademic, DomainSocialEmotional, DomainTalentsInterest:
		return true
	}
	return false
}

// Provenance tags written into AssessedBy / ProcessedBy columns.
const (
	AssessedByAutoSync = "AI Auto-Sync"
	AssessedBySystem   = "SYSTEM"
)
