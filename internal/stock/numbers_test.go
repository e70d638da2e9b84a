package stock

import (
	"encoding/json"
	"testing"
)

func TestFlexNumberTolerantDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{`12.5`, 12.5},
		{`"12.5"`, 12.5},
		{`"1,234.56"`, 1234.56},
		{`"%2.31"`, 2.31},
		{`"2.31%"`, 2.31},
		{`null`, 0},
		{`""`, 0},
		{`"n/a"`, 0},
	}
	for _, tc := range cases {
		var f flexNumber
		if err := json.Unmarshal([]byte(tc.in), &f); err != nil {
			t.Errorf("unmarshal %s: %v", tc.in, err)
			continue
		}
		if float64(f) != tc.want {
			t.Errorf("flexNumber(%s) = %f, want %f", tc.in, float64(f), tc.want)
		}
	}
}
