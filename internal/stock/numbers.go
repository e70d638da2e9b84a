package stock

import (
	"strconv"
	"strings"
)

// flexNumber decodes JSON numbers that the upstream feeds serve
// inconsistently: bare numbers, quoted strings, percent signs,
// thousand separators. Unparseable values decode to zero instead of
// failing the whole payload.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "null" {
		*f = 0
		return nil
	}
	*f = flexNumber(parseNumber(s))
	return nil
}

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "%")
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
