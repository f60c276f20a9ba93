package value

import "github.com/davecgh/go-spew/spew"

var dumper = spew.ConfigState{Indent: "", DisablePointerAddresses: true, DisableCapacities: true}

// Debug renders the full structural debug form used by the Invoker's
// `display = debug(val)` success path (spec's result-table success row).
// Unlike Display, it is meant for humans, not round-tripping.
func (v Value) Debug() string {
	return dumper.Sdump(v.toNative())
}

// Serialized is the JSON-friendly shape an ExecutionRecord stores for an
// argument or result value: the type tag alongside a native Go rendering
// of the payload.
type Serialized struct {
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
}

// Serialize converts v into its ExecutionRecord form.
func (v Value) Serialize() Serialized {
	return Serialized{Type: string(v.Tag), Value: v.toNative()}
}

func (v Value) toNative() interface{} {
	switch v.Tag {
	case TagU32, TagI32, TagU64, TagI64, TagU128, TagI128, TagU256, TagI256:
		if v.Int == nil {
			return "0"
		}
		return v.Int.String()
	case TagBool:
		return v.Bool
	case TagSymbol, TagString, TagAddress:
		return v.Str
	case TagBytes:
		return v.Display()
	case TagOption:
		if v.Option == nil {
			return nil
		}
		return v.Option.toNative()
	case TagVec:
		out := make([]interface{}, len(v.Vec))
		for i, it := range v.Vec {
			out[i] = it.toNative()
		}
		return out
	case TagTuple:
		out := make([]interface{}, len(v.Tuple))
		for i, it := range v.Tuple {
			out[i] = it.toNative()
		}
		return out
	case TagMap:
		out := make(map[string]interface{}, len(v.Map))
		for _, e := range v.Map {
			out[e.Key.Display()] = e.Val.toNative()
		}
		return out
	default:
		return nil
	}
}
