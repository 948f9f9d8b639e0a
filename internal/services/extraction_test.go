package services

import (
	"context"
	"testing"

	types "github.com/okulpusula/pusula-backend/internal/domain"
)

func TestParseExtraction(t *testing.T) {
	obj := map[string]any{
		"is_valid":          true,
		"reasoning":         "Gözlem sağlık ve ilgi alanı bilgisi içeriyor",
		"confidence":        0.88,
		"suggested_domains": []any{"health", "talents_interests", "unknown_domain"},
		"extracted_insights": map[string]any{
			"kan grubu": "A+",
			"hobi":      "satranç",
		},
		"conflicts": []any{
			map[string]any{
				"field":         "bloodType",
				"new_value":     "A+",
				"current_value": "0+",
				"severity":      "high",
			},
			map[string]any{"severity": "low"}, // no field, dropped
		},
	}

	res := parseExtraction(obj)
	if !res.IsValid || res.Confidence != 0.88 {
		t.Fatalf("parsed = %+v", res)
	}
	if len(res.SuggestedDomains) != 2 {
		t.Errorf("domains = %v, unknown domain should be dropped", res.SuggestedDomains)
	}
	if len(res.ExtractedInsights) != 2 {
		t.Errorf("insights = %v", res.ExtractedInsights)
	}
	if len(res.Conflicts) != 1 || res.Conflicts[0].Severity != types.SeverityHigh {
		t.Errorf("conflicts = %+v", res.Conflicts)
	}
}

func TestParseExtractionClampsConfidence(t *testing.T) {
	res := parseExtraction(map[string]any{"is_valid": true, "confidence": 1.7})
	if res.Confidence != 1 {
		t.Errorf("confidence = %v, want clamped to 1", res.Confidence)
	}
}

func TestParseExtractionShapeDrift(t *testing.T) {
	// nothing usable in the payload; parse must not panic
	res := parseExtraction(map[string]any{
		"is_valid":          "yes",
		"suggested_domains": "health",
		"conflicts":         42,
	})
	if res.IsValid {
		t.Errorf("non-bool is_valid treated as valid")
	}
	if len(res.SuggestedDomains) != 0 || len(res.Conflicts) != 0 {
		t.Errorf("parsed = %+v, want empty", res)
	}
}

func TestExtractEmptyInputRejectedWithoutModelCall(t *testing.T) {
	svc := NewExtractionService(testLogger(t), nil) // nil client: a call would panic
	res, err := svc.Extract(context.Background(), "observation", "   ", nil)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.IsValid {
		t.Fatalf("blank observation reported valid")
	}
}
