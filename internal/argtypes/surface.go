// Package argtypes understands the contract-spec surface type syntax
// (Option<T>, Tuple<T1,T2,...>, Vec<T>, Map<K,V>, and bare primitive
// names) used by the Arg Normaliser and Arg Parser. It is distinct from
// the raw guest-bytecode GuestType tag set in package wasmreader: the
// two signature sources are not interchangeable.
package argtypes

import "strings"

const (
	OptionPrefix = "Option<"
	TuplePrefix  = "Tuple<"
	VecPrefix    = "Vec<"
	MapPrefix    = "Map<"
)

func IsOption(typeName string) bool { return strings.HasPrefix(typeName, OptionPrefix) }
func IsTuple(typeName string) bool  { return strings.HasPrefix(typeName, TuplePrefix) }
func IsVec(typeName string) bool    { return strings.HasPrefix(typeName, VecPrefix) }
func IsMap(typeName string) bool    { return strings.HasPrefix(typeName, MapPrefix) }

// TupleArity counts the top-level comma-separated elements inside a
// Tuple<...> surface type, respecting nested angle-bracket depth. An
// empty inner means arity zero.
func TupleArity(typeName string) int {
	inner := strings.TrimPrefix(typeName, TuplePrefix)
	inner = strings.TrimSuffix(inner, ">")
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return 0
	}
	depth := 0
	count := 1
	for _, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				count++
			}
		}
	}
	return count
}
