// Package value implements the host-typed value system that the Arg
// Parser produces and the Invoker consumes: a closed tagged variant
// covering every primitive, container, and reference shape a guest
// contract's surface type can name.
package value

import (
	"fmt"
	"math/big"
)

// Tag discriminates a Value's shape. It matches the type tags the Arg
// Parser accepts verbatim.
type Tag string

const (
	TagU32     Tag = "u32"
	TagI32     Tag = "i32"
	TagU64     Tag = "u64"
	TagI64     Tag = "i64"
	TagU128    Tag = "u128"
	TagI128    Tag = "i128"
	TagU256    Tag = "u256"
	TagI256    Tag = "i256"
	TagBool    Tag = "bool"
	TagSymbol  Tag = "symbol"
	TagString  Tag = "string"
	TagBytes   Tag = "bytes"
	TagAddress Tag = "address"
	TagVec     Tag = "vec"
	TagMap     Tag = "map"
	TagOption  Tag = "option"
	TagTuple   Tag = "tuple"
)

// MapEntry is one key/value pair of a Map value.
type MapEntry struct {
	Key Value
	Val Value
}

// Value is a single host-typed value bound to the executor's environment.
// Exactly one payload field is meaningful for a given Tag.
type Value struct {
	Tag    Tag
	Int    *big.Int
	Bool   bool
	Str    string
	Bytes  []byte
	Vec    []Value
	Map    []MapEntry
	Option *Value
	Tuple  []Value
}

func Int(tag Tag, n *big.Int) Value    { return Value{Tag: tag, Int: n} }
func Bool(b bool) Value                { return Value{Tag: TagBool, Bool: b} }
func Symbol(s string) Value            { return Value{Tag: TagSymbol, Str: s} }
func String(s string) Value            { return Value{Tag: TagString, Str: s} }
func Bytes(b []byte) Value             { return Value{Tag: TagBytes, Bytes: b} }
func Address(s string) Value           { return Value{Tag: TagAddress, Str: s} }
func Vec(items []Value) Value          { return Value{Tag: TagVec, Vec: items} }
func Map(entries []MapEntry) Value     { return Value{Tag: TagMap, Map: entries} }
func Some(v Value) Value               { return Value{Tag: TagOption, Option: &v} }
func None() Value                      { return Value{Tag: TagOption} }
func Tuple(items []Value) Value        { return Value{Tag: TagTuple, Tuple: items} }

// Display renders the canonical form used for breakpoint argument
// stringification: numbers as canonical decimal, booleans lowercase,
// everything else via a short debug form.
func (v Value) Display() string {
	switch v.Tag {
	case TagU32, TagI32, TagU64, TagI64, TagU128, TagI128, TagU256, TagI256:
		if v.Int == nil {
			return "0"
		}
		return v.Int.String()
	case TagBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case TagSymbol, TagString, TagAddress:
		return v.Str
	case TagBytes:
		return fmt.Sprintf("%x", v.Bytes)
	case TagOption:
		if v.Option == nil {
			return "none"
		}
		return "some(" + v.Option.Display() + ")"
	case TagVec:
		return debugList(v.Vec)
	case TagTuple:
		return debugList(v.Tuple)
	case TagMap:
		s := "{"
		for i, e := range v.Map {
			if i > 0 {
				s += ", "
			}
			s += e.Key.Display() + ": " + e.Val.Display()
		}
		return s + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func debugList(items []Value) string {
	s := "["
	for i, it := range items {
		if i > 0 {
			s += ", "
		}
		s += it.Display()
	}
	return s + "]"
}

// Equal is a deep structural comparison, used by round-trip tests.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagU32, TagI32, TagU64, TagI64, TagU128, TagI128, TagU256, TagI256:
		if a.Int == nil || b.Int == nil {
			return a.Int == b.Int
		}
		return a.Int.Cmp(b.Int) == 0
	case TagBool:
		return a.Bool == b.Bool
	case TagSymbol, TagString, TagAddress:
		return a.Str == b.Str
	case TagBytes:
		if len(a.Bytes) != len(b.Bytes) {
			return false
		}
		for i := range a.Bytes {
			if a.Bytes[i] != b.Bytes[i] {
				return false
			}
		}
		return true
	case TagOption:
		if (a.Option == nil) != (b.Option == nil) {
			return false
		}
		if a.Option == nil {
			return true
		}
		return Equal(*a.Option, *b.Option)
	case TagVec, TagTuple:
		av, bv := a.Vec, b.Vec
		if a.Tag == TagTuple {
			av, bv = a.Tuple, b.Tuple
		}
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case TagMap:
		if len(a.Map) != len(b.Map) {
			return false
		}
		for i := range a.Map {
			if !Equal(a.Map[i].Key, b.Map[i].Key) || !Equal(a.Map[i].Val, b.Map[i].Val) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
