package domain

import (
	"encoding/json"
	"math"
)

// Undefined returns the sentinel used for values that could not be computed.
func Undefined() float64 { return math.NaN() }

// Defined reports whether v is a finite number.
func Defined(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// OrUndefined collapses every non-finite value to the Undefined sentinel.
func OrUndefined(v float64) float64 {
	if Defined(v) {
		return v
	}
	return Undefined()
}

// Number is a float64 that encodes as JSON null when it is not finite.
// encoding/json refuses NaN and Inf, so responses crossing a transport use Number.
type Number float64

// IsDefined reports whether n holds a finite value.
func (n Number) IsDefined() bool { return Defined(float64(n)) }

// Float64 returns n as a float64, NaN when undefined.
func (n Number) Float64() float64 { return float64(n) }

func (n Number) MarshalJSON() ([]byte, error) {
	if !n.IsDefined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(n))
}

func (n *Number) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Number(Undefined())
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*n = Number(f)
	return nil
}
