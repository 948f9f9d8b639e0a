package normalization

import (
	"reflect"
	"testing"

	"github.com/okulpusula/pusula-backend/internal/domain/profiles"
)

func TestMapInsightsToFieldsAliasLookup(t *testing.T) {
	cases := []struct {
		name      string
		domain    profiles.Domain
		insights  map[string]interface{}
		wantField string
		wantValue interface{}
	}{
		{
			name:      "turkish_hobby_wraps_to_list",
			domain:    profiles.DomainTalentsInterest,
			insights:  map[string]interface{}{"hobi": "satranç"},
			wantField: "primaryInterests",
			wantValue: []interface{}{"satranç"},
		},
		{
			name:      "separator_insensitive",
			domain:    profiles.DomainHealth,
			insights:  map[string]interface{}{"Blood_Type": "A+"},
			wantField: "bloodType",
			wantValue: "A+",
		},
		{
			name:      "space_and_case_insensitive",
			domain:    profiles.DomainHealth,
			insights:  map[string]interface{}{"KAN GRUBU": "0-"},
			wantField: "bloodType",
			wantValue: "0-",
		},
		{
			name:      "number_transform_parses_string",
			domain:    profiles.DomainAcademic,
			insights:  map[string]interface{}{"not ortalamasi": "85,5"},
			wantField: "gradeAverage",
			wantValue: 85.5,
		},
		{
			name:      "list_value_kept_as_list",
			domain:    profiles.DomainAcademic,
			insights:  map[string]interface{}{"strong subjects": []interface{}{"math", "physics"}},
			wantField: "strongSubjects",
			wantValue: []interface{}{"math", "physics"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MapInsightsToFields(tc.domain, tc.insights)
			if len(got.Unmapped) != 0 {
				t.Fatalf("unexpected unmapped keys: %v", got.Unmapped)
			}
			v, ok := got.Fields[tc.wantField]
			if !ok {
				t.Fatalf("canonical field %q missing, got %v", tc.wantField, got.Fields)
			}
			if !reflect.DeepEqual(v, tc.wantValue) {
				t.Fatalf("field %q = %#v, want %#v", tc.wantField, v, tc.wantValue)
			}
		})
	}
}

func TestMapInsightsToFieldsUnmappedPassthrough(t *testing.T) {
	in := map[string]interface{}{"favori renk": "mavi"}
	got := MapInsightsToFields(profiles.DomainAcademic, in)

	if len(got.Fields) != 0 {
		t.Fatalf("expected no canonical fields, got %v", got.Fields)
	}
	if v, ok := got.Unmapped["favori renk"]; !ok || v != "mavi" {
		t.Fatalf("unmapped passthrough lost the value: %v", got.Unmapped)
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Mapped {
		t.Fatalf("want one unmapped diagnostic, got %+v", got.Diagnostics)
	}
}

func TestMapInsightsToFieldsIdempotent(t *testing.T) {
	in := map[string]interface{}{
		"hobi":         "satranç",
		"spor":         "yüzme",
		"bilinmeyen":   42,
		"weekly hours": "6",
	}
	first := MapInsightsToFields(profiles.DomainTalentsInterest, in)
	second := MapInsightsToFields(profiles.DomainTalentsInterest, in)

	if !reflect.DeepEqual(first.Fields, second.Fields) {
		t.Fatalf("fields differ across calls:\n%v\n%v", first.Fields, second.Fields)
	}
	if !reflect.DeepEqual(first.Unmapped, second.Unmapped) {
		t.Fatalf("unmapped differ across calls:\n%v\n%v", first.Unmapped, second.Unmapped)
	}
	if !reflect.DeepEqual(first.Diagnostics, second.Diagnostics) {
		t.Fatalf("diagnostics differ across calls:\n%v\n%v", first.Diagnostics, second.Diagnostics)
	}
}

func TestMapInsightsToFieldsLastWriteWinsWithinCall(t *testing.T) {
	// Both aliases resolve to primaryInterests; keys iterate sorted, so
	// "hobi" maps first and "ilgi alanları" overwrites it.
	in := map[string]interface{}{
		"hobi":          "satranç",
		"ilgi alanları": []interface{}{"resim"},
	}
	got := MapInsightsToFields(profiles.DomainTalentsInterest, in)
	want := []interface{}{"resim"}
	if !reflect.DeepEqual(got.Fields["primaryInterests"], want) {
		t.Fatalf("primaryInterests = %#v, want %#v", got.Fields["primaryInterests"], want)
	}
}

func TestMapInsightsToFieldsEmptyInput(t *testing.T) {
	got := MapInsightsToFields(profiles.DomainAcademic, nil)
	if !got.Empty() {
		t.Fatalf("empty input should map to empty result, got %+v", got)
	}
}

func TestAsListInvariant(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want []interface{}
	}{
		{name: "scalar", in: "chess", want: []interface{}{"chess"}},
		{name: "nil", in: nil, want: []interface{}{}},
		{name: "string_slice", in: []string{"a", "b"}, want: []interface{}{"a", "b"}},
		{name: "any_slice", in: []interface{}{1.0}, want: []interface{}{1.0}},
		{name: "number", in: 7, want: []interface{}{7}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := AsList(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("AsList(%#v) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}
