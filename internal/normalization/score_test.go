package normalization

import "testing"

func TestNormalizeScore(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want *float64
	}{
		{name: "in_range", in: 72.5, want: f(72.5)},
		{name: "clamp_high", in: 140, want: f(100)},
		{name: "clamp_low", in: -3, want: f(0)},
		{name: "string_number", in: "88", want: f(88)},
		{name: "turkish_decimal", in: "66,5", want: f(66.5)},
		{name: "non_numeric", in: "yüksek", want: nil},
		{name: "nil", in: nil, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeScore(tc.in)
			switch {
			case got == nil && tc.want == nil:
			case got == nil || tc.want == nil:
				t.Fatalf("NormalizeScore(%#v) = %v, want %v", tc.in, got, tc.want)
			case *got != *tc.want:
				t.Fatalf("NormalizeScore(%#v) = %v, want %v", tc.in, *got, *tc.want)
			}
		})
	}
}

func TestNormalizeLevel(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want *int
	}{
		{name: "in_range", in: 7, want: i(7)},
		{name: "clamp_high", in: 15, want: i(10)},
		{name: "clamp_low", in: 0, want: i(1)},
		{name: "rounds", in: 6.6, want: i(7)},
		{name: "non_numeric", in: "orta", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeLevel(tc.in)
			switch {
			case got == nil && tc.want == nil:
			case got == nil || tc.want == nil:
				t.Fatalf("NormalizeLevel(%#v) = %v, want %v", tc.in, got, tc.want)
			case *got != *tc.want:
				t.Fatalf("NormalizeLevel(%#v) = %v, want %v", tc.in, *got, *tc.want)
			}
		})
	}
}

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }
