package services

import (
	"testing"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestConflictResolverExcludesHighSeverity(t *testing.T) {
	r := NewConflictResolver(testLogger(t))

	in := []types.Conflict{
		{Field: "bloodType", NewValue: "A+", CurrentValue: "0+", Severity: types.SeverityHigh},
		{Field: "gradeAverage", NewValue: 72.0, CurrentValue: 68.0, Severity: types.SeverityMedium},
		{Field: "learningStyle", NewValue: "visual", CurrentValue: "auditory", Severity: types.SeverityLow},
	}

	resolved := r.Resolve(in)
	if len(resolved) != 2 {
		t.Fatalf("resolved = %d, want 2", len(resolved))
	}
	for _, c := range resolved {
		if c.Field == "bloodType" {
			t.Fatalf("high severity conflict %q was auto-resolved", c.Field)
		}
		if c.Severity != types.SeverityLow {
			t.Errorf("resolved %q severity = %q, want low", c.Field, c.Severity)
		}
	}

	escalated := r.Escalated(in)
	if len(escalated) != 1 || escalated[0].Field != "bloodType" {
		t.Fatalf("escalated = %+v, want only bloodType", escalated)
	}
	if escalated[0].Severity != types.SeverityHigh {
		t.Errorf("escalated severity = %q, want high", escalated[0].Severity)
	}
}

func TestConflictResolverEmptyInput(t *testing.T) {
	r := NewConflictResolver(testLogger(t))
	if got := r.Resolve(nil); len(got) != 0 {
		t.Fatalf("Resolve(nil) = %+v, want empty", got)
	}
	if got := r.Escalated(nil); len(got) != 0 {
		t.Fatalf("Escalated(nil) = %+v, want empty", got)
	}
}
