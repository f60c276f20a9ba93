// Package argparse converts a normalised JSON argument array into the
// host-typed value.Value list the executor binds to its environment.
package argparse

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/contractdbg/internal/errs"
	"github.com/nspcc-dev/contractdbg/internal/value"
)

type envelope struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
	Arity int             `json:"arity"`
}

// ParseValue parses a single JSON value (raw primitive or typed
// envelope), the grammar mock specifications use for their right-hand
// side.
func ParseValue(raw string) (value.Value, error) {
	return parseElement(json.RawMessage(raw), "value")
}

// ParseArgs parses a normalised top-level JSON array into host values.
func ParseArgs(jsonArray string) ([]value.Value, error) {
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(jsonArray), &arr); err != nil {
		return nil, errs.InvalidArguments("arguments must be a JSON array: %v", err)
	}
	out := make([]value.Value, len(arr))
	for i, raw := range arr {
		v, err := parseElement(raw, fmt.Sprintf("args[%d]", i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseElement(raw json.RawMessage, path string) (value.Value, error) {
	var probe interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&probe); err != nil {
		return value.Value{}, errs.InvalidArguments("%s: invalid JSON: %v", path, err)
	}
	switch p := probe.(type) {
	case nil:
		return value.None(), nil
	case bool:
		return value.Bool(p), nil
	case string:
		return value.String(p), nil
	case json.Number:
		// Untyped bare numbers default to i64, same as the envelope
		// form's widest un-annotated integer; routed through big.Int
		// so literals near the i64 boundary are not first rounded by
		// float64.
		n, ok := new(big.Int).SetString(p.String(), 10)
		if !ok {
			return value.Value{}, errs.InvalidArguments("%s: invalid integer literal %q", path, p.String())
		}
		if !fitsWidth(value.TagI64, n) {
			return value.Value{}, errs.InvalidArguments("%s: value %s overflows i64", path, p.String())
		}
		return value.Int(value.TagI64, n), nil
	case map[string]interface{}:
		if _, ok := p["type"]; ok {
			return parseEnvelope(raw, path)
		}
		return value.Value{}, errs.InvalidArguments("%s: missing type tag on non-primitive value", path)
	case []interface{}:
		return value.Value{}, errs.InvalidArguments("%s: missing type tag on non-primitive value", path)
	default:
		return value.Value{}, errs.InvalidArguments("%s: unsupported JSON value", path)
	}
}

func parseEnvelope(raw json.RawMessage, path string) (value.Value, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return value.Value{}, errs.InvalidArguments("%s: malformed type envelope: %v", path, err)
	}

	switch value.Tag(env.Type) {
	case value.TagU32, value.TagI32, value.TagU64, value.TagI64, value.TagU128, value.TagI128, value.TagU256, value.TagI256:
		return parseInt(value.Tag(env.Type), env.Value, path)

	case value.TagBool:
		var b bool
		if err := json.Unmarshal(env.Value, &b); err != nil {
			return value.Value{}, errs.InvalidArguments("%s: expected a bool", path)
		}
		return value.Bool(b), nil

	case value.TagSymbol:
		s, err := unmarshalString(env.Value, path)
		if err != nil {
			return value.Value{}, err
		}
		return value.Symbol(s), nil

	case value.TagString:
		s, err := unmarshalString(env.Value, path)
		if err != nil {
			return value.Value{}, err
		}
		return value.String(s), nil

	case value.TagBytes:
		s, err := unmarshalString(env.Value, path)
		if err != nil {
			return value.Value{}, err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return value.Value{}, errs.InvalidArguments("%s: invalid hex bytes: %v", path, err)
		}
		return value.Bytes(b), nil

	case value.TagAddress:
		s, err := unmarshalString(env.Value, path)
		if err != nil {
			return value.Value{}, err
		}
		if err := validateAddress(s); err != nil {
			return value.Value{}, errs.InvalidArguments("%s: %v", path, err)
		}
		v := value.Address(s)
		if payload, ok := decodeAddressPayload(s); ok {
			v.Bytes = payload
		}
		return v, nil

	case value.TagVec:
		var items []json.RawMessage
		if err := json.Unmarshal(env.Value, &items); err != nil {
			return value.Value{}, errs.InvalidArguments("%s: expected a vec array", path)
		}
		out := make([]value.Value, len(items))
		for i, it := range items {
			v, err := parseElement(it, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return value.Value{}, err
			}
			out[i] = v
		}
		return value.Vec(out), nil

	case value.TagMap:
		var entries []struct {
			Key   json.RawMessage `json:"key"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(env.Value, &entries); err != nil {
			return value.Value{}, errs.InvalidArguments("%s: expected a map entry array", path)
		}
		out := make([]value.MapEntry, len(entries))
		for i, e := range entries {
			k, err := parseElement(e.Key, fmt.Sprintf("%s{%d}.key", path, i))
			if err != nil {
				return value.Value{}, err
			}
			v, err := parseElement(e.Value, fmt.Sprintf("%s{%d}.value", path, i))
			if err != nil {
				return value.Value{}, err
			}
			out[i] = value.MapEntry{Key: k, Val: v}
		}
		return value.Map(out), nil

	case value.TagOption:
		if len(env.Value) == 0 || string(env.Value) == "null" {
			return value.None(), nil
		}
		inner, err := parseElement(env.Value, path+".value")
		if err != nil {
			return value.Value{}, err
		}
		return value.Some(inner), nil

	case value.TagTuple:
		var items []json.RawMessage
		if err := json.Unmarshal(env.Value, &items); err != nil {
			return value.Value{}, errs.InvalidArguments("%s: expected a tuple array", path)
		}
		if env.Arity != 0 && len(items) != env.Arity {
			return value.Value{}, errs.InvalidArguments("%s: arity mismatch: expected %d, got %d", path, env.Arity, len(items))
		}
		out := make([]value.Value, len(items))
		for i, it := range items {
			v, err := parseElement(it, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return value.Value{}, err
			}
			out[i] = v
		}
		return value.Tuple(out), nil

	default:
		return value.Value{}, errs.InvalidArguments("%s: unknown type tag %q", path, env.Type)
	}
}

func unmarshalString(raw json.RawMessage, path string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errs.InvalidArguments("%s: expected a string", path)
	}
	return s, nil
}

// validateAddress applies exactly the two structural rules the spec
// names: minimum length and an account/contract prefix byte. A base58
// decode of the remainder is attempted only to populate a display form
// for envelopes that are valid base58; a non-base58 remainder is not
// itself a rejection reason.
func validateAddress(s string) error {
	if len(s) < 10 || (s[0] != 'G' && s[0] != 'C') {
		return fmt.Errorf("invalid address %q: must be 10+ characters beginning with 'G' or 'C'", s)
	}
	return nil
}

// decodeAddressPayload best-effort base58-decodes the envelope following
// the prefix byte, for display purposes only.
func decodeAddressPayload(s string) ([]byte, bool) {
	if len(s) < 2 {
		return nil, false
	}
	b, err := base58.Decode(s[1:])
	if err != nil {
		return nil, false
	}
	return b, true
}

var widthBits = map[value.Tag]int{
	value.TagU32: 32, value.TagI32: 32,
	value.TagU64: 64, value.TagI64: 64,
	value.TagU128: 128, value.TagI128: 128,
	value.TagU256: 256, value.TagI256: 256,
}

var unsignedTags = map[value.Tag]bool{
	value.TagU32: true, value.TagU64: true, value.TagU128: true, value.TagU256: true,
}

func parseInt(tag value.Tag, raw json.RawMessage, path string) (value.Value, error) {
	// Bare JSON numbers are read via json.Number rather than float64:
	// float64 only carries 53 bits of integer precision, which silently
	// truncates u128/u256-sized literals before fitsWidth ever sees them.
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return value.Value{}, errs.InvalidArguments("%s: expected an integer number or decimal string", path)
		}
		s = num.String()
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return value.Value{}, errs.InvalidArguments("%s: invalid integer literal %q", path, s)
	}
	if !fitsWidth(tag, n) {
		return value.Value{}, errs.InvalidArguments("%s: value %s overflows %s", path, s, tag)
	}
	if tag == value.TagU256 {
		if _, overflow := uint256.FromBig(n); overflow {
			return value.Value{}, errs.InvalidArguments("%s: value %s overflows u256", path, s)
		}
	}
	return value.Int(tag, n), nil
}

func fitsWidth(tag value.Tag, n *big.Int) bool {
	bits, ok := widthBits[tag]
	if !ok {
		return false
	}
	if unsignedTags[tag] {
		if n.Sign() < 0 {
			return false
		}
		max := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		return n.Cmp(max) < 0
	}
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(half)
	max := new(big.Int).Sub(half, big.NewInt(1))
	return n.Cmp(min) >= 0 && n.Cmp(max) <= 0
}
