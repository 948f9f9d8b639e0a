package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	types "github.com/okulpusula/pusula-backend/internal/domain"
	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
	"github.com/okulpusula/pusula-backend/internal/pkg/logger"
)

// ExtractionResult is the structured verdict on one raw observation.
// Invalid input (gibberish, test strings, non-student content) comes back
// with IsValid=false and a human-readable Reasoning; nothing else is set.
type ExtractionResult struct {
	IsValid           bool
	SuggestedDomains  []profiles.Domain
	ExtractedInsights map[string]any
	Confidence        float64
	Conflicts         []types.Conflict
	Reasoning         string
}

type ExtractionService interface {
	Extract(ctx context.Context, source string, rawData string, current map[string]any) (*ExtractionResult, error)
}

type extractionService struct {
	log *logger.Logger
	ai  AIClient
}

func NewExtractionService(log *logger.Logger, ai AIClient) ExtractionService {
	return &extractionService{
		log: log.With("service", "ExtractionService"),
		ai:  ai,
	}
}

const extractionSystemPrompt = `You are a school guidance counseling data analyst.
You receive one raw observation about a single student, written in Turkish or English.
Decide whether the text is meaningful student-related information. Test strings,
gibberish and content unrelated to a student are invalid.

For valid input, extract concrete facts as a flat key/value map. Keys may be Turkish
or English field names (e.g. "kan grubu", "gradeAverage", "hobi"). Values must be the
facts themselves, never commentary. Levels are 1-10, rates and averages 0-100.

List the profile domains the facts belong to, report your overall confidence between
0 and 1, and report any contradiction between a fact and the student's current data
as a conflict with a severity of low, medium or high.`

var extractionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"is_valid":   map[string]any{"type": "boolean"},
		"reasoning":  map[string]any{"type": "string"},
		"confidence": map[string]any{"type": "number"},
		"suggested_domains": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"extracted_insights": map[string]any{
			"type":                 "object",
			"additionalProperties": true,
		},
		"conflicts": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"field":         map[string]any{"type": "string"},
					"new_value":     map[string]any{"type": "string"},
					"current_value": map[string]any{"type": "string"},
					"severity":      map[string]any{"type": "string"},
				},
				"required":             []string{"field", "new_value", "current_value", "severity"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []string{"is_valid", "reasoning", "confidence", "suggested_domains", "extracted_insights", "conflicts"},
	"additionalProperties": false,
}

func (s *extractionService) Extract(ctx context.Context, source string, rawData string, current map[string]any) (*ExtractionResult, error) {
	if strings.TrimSpace(rawData) == "" {
		return &ExtractionResult{
			IsValid:   false,
			Reasoning: "Gözlem metni boş",
		}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Source: %s\n", source)
	fmt.Fprintf(&sb, "Known domains: %s\n", joinDomains(profiles.AllDomains()))
	if len(current) > 0 {
		cur, _ := json.Marshal(current)
		fmt.Fprintf(&sb, "Current student data: %s\n", cur)
	}
	fmt.Fprintf(&sb, "Observation:\n%s\n", rawData)

	obj, err := s.ai.GenerateJSON(ctx, extractionSystemPrompt, sb.String(), "observation_extraction", extractionSchema)
	if err != nil {
		return nil, fmt.Errorf("extraction request failed: %w", err)
	}

	res := parseExtraction(obj)
	s.log.Info("Observation extracted",
		"source", source,
		"is_valid", res.IsValid,
		"confidence", res.Confidence,
		"domains", len(res.SuggestedDomains),
		"insights", len(res.ExtractedInsights),
		"conflicts", len(res.Conflicts),
	)
	return res, nil
}

// parseExtraction is defensive: model output already passed schema validation,
// but every read still degrades gracefully rather than panicking on shape drift.
func parseExtraction(obj map[string]any) *ExtractionResult {
	res := &ExtractionResult{
		ExtractedInsights: map[string]any{},
	}
	if v, ok := obj["is_valid"].(bool); ok {
		res.IsValid = v
	}
	if v, ok := obj["reasoning"].(string); ok {
		res.Reasoning = v
	}
	if v, ok := obj["confidence"].(float64); ok {
		res.Confidence = clampFloat(v, 0, 1)
	}
	if raw, ok := obj["suggested_domains"].([]any); ok {
		for _, item := range raw {
			name, _ := item.(string)
			d := profiles.Domain(strings.TrimSpace(strings.ToLower(name)))
			if d.Valid() {
				res.SuggestedDomains = append(res.SuggestedDomains, d)
			}
		}
	}
	if raw, ok := obj["extracted_insights"].(map[string]any); ok {
		res.ExtractedInsights = raw
	}
	if raw, ok := obj["conflicts"].([]any); ok {
		for _, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			c := types.Conflict{
				NewValue:     m["new_value"],
				CurrentValue: m["current_value"],
			}
			c.Field, _ = m["field"].(string)
			c.Severity, _ = m["severity"].(string)
			if c.Field != "" {
				res.Conflicts = append(res.Conflicts, c)
			}
		}
	}
	return res
}

func joinDomains(domains []profiles.Domain) string {
	names := make([]string, 0, len(domains))
	for _, d := range domains {
		names = append(names, string(d))
	}
	return strings.Join(names, ", ")
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
