package types

import (
	"encoding/json"
	"strconv"
)

// Denominations lists the yen units shown on the change-dispenser display,
// notes first, in display order.
var Denominations = []string{"10000", "5000", "1000", "500", "100", "50", "10", "5", "1"}

// DenominationCount maps a denomination label to the count the provider read.
// Values are kept exactly as the provider sent them.
type DenominationCount map[string]any

// Backfill returns a count holding every denomination label. Labels missing
// from parsed are set to 0; labels outside Denominations are dropped.
func Backfill(parsed map[string]any) DenominationCount {
	out := make(DenominationCount, len(Denominations))
	for _, d := range Denominations {
		if v, ok := parsed[d]; ok {
			out[d] = v
			continue
		}
		out[d] = 0
	}
	return out
}

// Total is the yen value of c. Counts that are not numbers are skipped.
func (c DenominationCount) Total() int64 {
	var sum int64
	for _, d := range Denominations {
		n, ok := asInt(c[d])
		if !ok {
			continue
		}
		unit, _ := strconv.ParseInt(d, 10, 64)
		sum += unit * n
	}
	return sum
}

func asInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		if f, err := n.Float64(); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}
