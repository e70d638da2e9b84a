package service

import "testing"

func TestBuildDailySpec(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:30", "0 30 9 * * *", true},
		{"00:00", "0 0 0 * * *", true},
		{"23:59", "0 59 23 * * *", true},
		{"24:00", "", false},
		{"12:60", "", false},
		{"12", "", false},
		{"aa:bb", "", false},
	}
	for _, tc := range cases {
		got, err := buildDailySpec(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("buildDailySpec(%q) = %q, %v; want %q", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("buildDailySpec(%q) accepted invalid input", tc.in)
		}
	}
}
