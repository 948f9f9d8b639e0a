package normalization

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
)

//go:embed aliases.yaml
var aliasesRaw []byte

const (
	TransformList    = "list"
	TransformNumber  = "number"
	TransformBoolean = "boolean"
)

// FieldDiagnostic records the mapping outcome for one insight key.
type FieldDiagnostic struct {
	Key            string `json:"key"`
	CanonicalField string `json:"canonical_field,omitempty"`
	Mapped         bool   `json:"mapped"`
}

// MappedInsights is the mapper output: canonical fields the merge step may
// consume, an explicit unmapped bucket so nothing is silently dropped, and one
// diagnostic per input key.
type MappedInsights struct {
	Fields      map[string]interface{}
	Unmapped    map[string]interface{}
	Diagnostics []FieldDiagnostic
}

// Empty reports whether the mapper produced nothing at all, in which case the
// merge pipeline performs no write and no log entry.
func (m MappedInsights) Empty() bool {
	return len(m.Fields) == 0 && len(m.Unmapped) == 0
}

type mappingTarget struct {
	Field     string
	Transform string
}

type aliasFile struct {
	Domains map[string][]struct {
		Field     string   `yaml:"field"`
		Transform string   `yaml:"transform"`
		Aliases   []string `yaml:"aliases"`
	} `yaml:"domains"`
}

var aliasIndex map[profiles.Domain]map[string]mappingTarget

func init() {
	idx, err := buildAliasIndex(aliasesRaw)
	if err != nil {
		panic(fmt.Sprintf("normalization: embedded alias table invalid: %v", err))
	}
	aliasIndex = idx
}

func buildAliasIndex(raw []byte) (map[profiles.Domain]map[string]mappingTarget, error) {
	var f aliasFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	out := make(map[profiles.Domain]map[string]mappingTarget, len(f.Domains))
	for name, entries := range f.Domains {
		d := profiles.Domain(name)
		if !d.Valid() {
			return nil, fmt.Errorf("unknown domain %q", name)
		}
		byAlias := make(map[string]mappingTarget)
		for _, e := range entries {
			if strings.TrimSpace(e.Field) == "" {
				return nil, fmt.Errorf("domain %q: entry without canonical field", name)
			}
			switch e.Transform {
			case "", TransformList, TransformNumber, TransformBoolean:
			default:
				return nil, fmt.Errorf("domain %q field %q: unknown transform %q", name, e.Field, e.Transform)
			}
			// The canonical name itself always resolves.
			byAlias[normalizeKey(e.Field)] = mappingTarget{Field: e.Field, Transform: e.Transform}
			for _, a := range e.Aliases {
				byAlias[normalizeKey(a)] = mappingTarget{Field: e.Field, Transform: e.Transform}
			}
		}
		out[d] = byAlias
	}
	return out, nil
}

// normalizeKey lowers the key and strips spaces, underscores and dashes so
// alias lookup is insensitive to casing and separators.
func normalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '_', '-', '\t':
			return -1
		}
		return r
	}, key)
}

// MapInsightsToFields translates extractor output keys into canonical fields
// for one domain. Unknown keys are data, not errors: they ride through in the
// unmapped bucket unchanged. Within one call, later insights win when two keys
// resolve to the same canonical field.
func MapInsightsToFields(domain profiles.Domain, insights map[string]interface{}) MappedInsights {
	out := MappedInsights{
		Fields:   make(map[string]interface{}),
		Unmapped: make(map[string]interface{}),
	}
	if len(insights) == 0 {
		return out
	}

	table := aliasIndex[domain]
	// Stable iteration so diagnostics and last-write-wins are deterministic.
	for _, key := range sortedKeys(insights) {
		value := insights[key]
		target, ok := table[normalizeKey(key)]
		if !ok {
			out.Unmapped[key] = value
			out.Diagnostics = append(out.Diagnostics, FieldDiagnostic{Key: key, Mapped: false})
			continue
		}
		out.Fields[target.Field] = applyTransform(target.Transform, value)
		out.Diagnostics = append(out.Diagnostics, FieldDiagnostic{
			Key:            key,
			CanonicalField: target.Field,
			Mapped:         true,
		})
	}
	return out
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// applyTransform coerces a raw value into the canonical shape. Coercion never
// fails hard: a value that cannot be converted is passed along as-is and left
// to the merge-side normalizers.
func applyTransform(transform string, value interface{}) interface{} {
	switch transform {
	case TransformList:
		return AsList(value)
	case TransformNumber:
		if f, ok := asFloat(value); ok {
			return f
		}
		return value
	case TransformBoolean:
		if b, ok := asBool(value); ok {
			return b
		}
		return value
	default:
		return value
	}
}

// AsList wraps a scalar into a one-element list. List-typed canonical fields
// are always serialized arrays, even for a single raw string.
func AsList(value interface{}) []interface{} {
	switch v := value.(type) {
	case nil:
		return []interface{}{}
	case []interface{}:
		return v
	case []string:
		out := make([]interface{}, 0, len(v))
		for _, s := range v {
			out = append(out, s)
		}
		return out
	default:
		return []interface{}{value}
	}
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		s := strings.TrimSpace(v)
		// extractor output sometimes carries Turkish decimal commas
		s = strings.ReplaceAll(s, ",", ".")
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func asBool(value interface{}) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "evet", "1", "var":
			return true, true
		case "false", "no", "hayir", "hayır", "0", "yok":
			return false, true
		}
	}
	return false, false
}
