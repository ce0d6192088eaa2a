package sinenet

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Vector is a float64 slice whose JSON form keeps non-finite values.
// NaN and the infinities are written as the strings "NaN", "+Inf" and
// "-Inf"; every other element is a plain JSON number.
type Vector []float64

func (v Vector) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	buf := []byte{'['}
	for i, f := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		switch {
		case math.IsNaN(f):
			buf = append(buf, `"NaN"`...)
		case math.IsInf(f, 1):
			buf = append(buf, `"+Inf"`...)
		case math.IsInf(f, -1):
			buf = append(buf, `"-Inf"`...)
		default:
			buf = strconv.AppendFloat(buf, f, 'g', -1, 64)
		}
	}
	buf = append(buf, ']')
	return buf, nil
}

func (v *Vector) UnmarshalJSON(data []byte) error {
	var raw []interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		*v = nil
		return nil
	}
	out := make(Vector, len(raw))
	for i, x := range raw {
		switch x := x.(type) {
		case float64:
			out[i] = x
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil || !(math.IsNaN(f) || math.IsInf(f, 0)) {
				return fmt.Errorf("vector element %d: %q is not NaN or an infinity", i, x)
			}
			out[i] = f
		default:
			return fmt.Errorf("vector element %d: %v is not a number", i, x)
		}
	}
	*v = out
	return nil
}
