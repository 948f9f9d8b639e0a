package services

import (
	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// ConflictResolver applies the "new data wins" policy to contradictions the
// extractor reported. High-severity conflicts are never auto-resolved; they
// are held back for counselor review.
type ConflictResolver interface {
	Resolve(conflicts []types.Conflict) []types.Conflict
	Escalated(conflicts []types.Conflict) []types.Conflict
}

type conflictResolver struct {
	log *logger.Logger
}

func NewConflictResolver(log *logger.Logger) ConflictResolver {
	return &conflictResolver{log: log.With("service", "ConflictResolver")}
}

// Resolve returns the conflicts that were auto-resolved in favor of the new
// value. Every returned entry carries severity "low" regardless of input:
// once a conflict has been resolved it is no longer a live concern.
func (r *conflictResolver) Resolve(conflicts []types.Conflict) []types.Conflict {
	resolved := make([]types.Conflict, 0, len(conflicts))
	for _, c := range conflicts {
		if c.Severity == types.SeverityHigh {
			continue
		}
		c.Severity = types.SeverityLow
		resolved = append(resolved, c)
	}
	return resolved
}

// Escalated returns the high-severity conflicts excluded by Resolve,
// untouched.
func (r *conflictResolver) Escalated(conflicts []types.Conflict) []types.Conflict {
	var out []types.Conflict
	for _, c := range conflicts {
		if c.Severity == types.SeverityHigh {
			out = append(out, c)
		}
	}
	return out
}
