package leverage

import "encoding/json"

// Ratio is a tagged leverage value. A ratio is undefined when its
// computation would divide by zero (no ask quoted, or a zero percent
// move); undefined is a first-class state rather than a NaN or Inf
// sentinel, so consumers are forced to handle both cases.
type Ratio struct {
	value   float64
	defined bool
}

// DefinedRatio returns a Ratio holding v.
func DefinedRatio(v float64) Ratio { return Ratio{value: v, defined: true} }

// UndefinedRatio returns the undefined marker.
func UndefinedRatio() Ratio { return Ratio{} }

// Defined reports whether the ratio holds a value.
func (r Ratio) Defined() bool { return r.defined }

// Value returns the ratio value and whether it is defined.
func (r Ratio) Value() (float64, bool) { return r.value, r.defined }

// MarshalJSON encodes an undefined ratio as null.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

// UnmarshalJSON decodes null as the undefined marker.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = UndefinedRatio()
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*r = DefinedRatio(v)
	return nil
}
