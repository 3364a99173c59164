package commerce

import (
	"encoding/json"
	"math"
	"reflect"
)

// Quantity is a whole-number item count. Integral numbers written with a fraction or
// an exponent, such as 2.0 or 1e3, decode to their integer value.
type Quantity int

// UnmarshalJSON accepts any JSON number with no fractional part that fits in an int.
// null leaves the value unchanged.
func (q *Quantity) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		return quantityTypeError("string")
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil && int64(int(i)) == i {
		*q = Quantity(i)
		return nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 || float64(int(f)) != f {
		return quantityTypeError("number " + n.String())
	}
	*q = Quantity(f)
	return nil
}

func quantityTypeError(value string) error {
	return &json.UnmarshalTypeError{Value: value, Type: reflect.TypeOf(Quantity(0))}
}
