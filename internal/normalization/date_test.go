package normalization

import (
	"testing"
	"time"
)

func TestNormalizeDateRelativePhrases(t *testing.T) {
	now := time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		in   string
		want time.Time
	}{
		{name: "today_en", in: "today", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "today_tr", in: "Bugün", want: time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday_en", in: "yesterday", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "yesterday_tr_ascii", in: "dun", want: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)},
		{name: "last_week_en", in: "last week", want: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
		{name: "last_week_tr", in: "geçen hafta", want: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
		{name: "iso", in: "2024-11-03", want: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)},
		{name: "dotted_day_first", in: "03.11.2024", want: time.Date(2024, 11, 3, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := normalizeDateAt(tc.in, now)
			if got == nil {
				t.Fatalf("normalizeDateAt(%q) = nil", tc.in)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("normalizeDateAt(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeDateUnparseable(t *testing.T) {
	for _, in := range []interface{}{"sometime soon", "", nil, 42, map[string]interface{}{}} {
		if got := NormalizeDate(in); got != nil {
			t.Fatalf("NormalizeDate(%#v) = %s, want nil", in, got)
		}
	}
}

func TestNormalizeDateTimeValuePassthrough(t *testing.T) {
	in := time.Date(2024, 5, 20, 9, 45, 0, 0, time.UTC)
	got := NormalizeDate(in)
	if got == nil || !got.Equal(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("NormalizeDate(time.Time) = %v", got)
	}
}
