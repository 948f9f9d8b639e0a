package domain

import (
	"github.com/okulpusula/pusula-backend/internal/domain/insight"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/domain/scoring"
	"github.com/okulpusula/pusula-backend/internal/domain/student"
)

// Flat aliases so callers can keep importing one types package.

type Domain = profiles.Domain

const (
	DomainHealth          = profiles.DomainHealth
	DomainAcademic        = profiles.DomainAcademic
	DomainSocialEmotional = profiles.DomainSocialEmotional
	DomainTalentsInterest = profiles.DomainTalentsInterest
	DomainBehavioral      = profiles.DomainBehavioral
	DomainMotivation      = profiles.DomainMotivation
	DomainRiskFactors     = profiles.DomainRiskFactors
	DomainFamily          = profiles.DomainFamily

	AssessedByAutoSync = profiles.AssessedByAutoSync
	AssessedBySystem   = profiles.AssessedBySystem
)

type HealthProfile = profiles.HealthProfile
type AcademicProfile = profiles.AcademicProfile
type SocialEmotionalProfile = profiles.SocialEmotionalProfile
type TalentsInterestsProfile = profiles.TalentsInterestsProfile

type Student = student.Student
type Counselor = student.Counselor
type BehaviorIncident = student.BehaviorIncident

type ProfileSyncLog = insight.ProfileSyncLog
type Suggestion = insight.Suggestion
type ProposedChange = insight.ProposedChange
type Conflict = insight.Conflict

type UnifiedScore = scoring.UnifiedScore
type UnifiedStudentIdentity = scoring.UnifiedStudentIdentity

const (
	SeverityLow    = insight.SeverityLow
	SeverityMedium = insight.SeverityMedium
	SeverityHigh   = insight.SeverityHigh
)
