package record

import (
	"encoding/json"
	"fmt"
)

// valueJSON is the wire form of a Value. The kind tag keeps Int64 and Float64
// apart, which plain JSON numbers would not.
type valueJSON struct {
	Kind  string   `json:"kind"`
	Int   *int64   `json:"int,omitempty"`
	Float *float64 `json:"float,omitempty"`
	Text  *string  `json:"text,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	out := valueJSON{}
	switch v.kind {
	case KindNull:
		out.Kind = "null"
	case KindInt64:
		out.Kind = "int"
		out.Int = &v.i
	case KindFloat64:
		out.Kind = "float"
		out.Float = &v.f
	case KindText:
		out.Kind = "text"
		out.Text = &v.s
	default:
		return nil, fmt.Errorf("record: unknown value kind %d", v.kind)
	}
	return json.Marshal(out)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	var in valueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	switch in.Kind {
	case "null":
		*v = Null()
	case "int":
		if in.Int == nil {
			return fmt.Errorf("record: int value missing payload")
		}
		*v = Int(*in.Int)
	case "float":
		if in.Float == nil {
			return fmt.Errorf("record: float value missing payload")
		}
		*v = Float(*in.Float)
	case "text":
		if in.Text == nil {
			return fmt.Errorf("record: text value missing payload")
		}
		*v = Text(*in.Text)
	default:
		return fmt.Errorf("record: unknown value kind %q", in.Kind)
	}
	return nil
}
