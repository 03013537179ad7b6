package domain

import (
	"math"
	"strconv"
)

// FormatNumber renders v for display: "---" when undefined, "∞" / "-∞" for infinities.
func FormatNumber(v float64, decimals int) string {
	switch {
	case math.IsNaN(v):
		return "---"
	case math.IsInf(v, 1):
		return "∞"
	case math.IsInf(v, -1):
		return "-∞"
	}
	if decimals < 0 {
		decimals = 4
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
