package money

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Round rounds v to cents, half away from zero.
func Round(v float64) float64 {
	return math.Round(v*100) / 100
}

// Amount is a price accepted either as a JSON number or as a numeric string
// such as "100.00". Infinities and NaN are rejected since they cannot be
// encoded back to JSON.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = Amount(v)
	return nil
}
