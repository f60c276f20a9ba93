// Package breakpoint implements the conditional breakpoint model:
// parsing predicate strings into a closed condition variant and
// evaluating them against a storage snapshot or an argument document.
package breakpoint

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"

	"github.com/nspcc-dev/contractdbg/internal/errs"
)

// ConditionKind discriminates the two predicate shapes the grammar
// produces.
type ConditionKind int

const (
	ConditionStorage ConditionKind = iota
	ConditionArgument
)

// Condition is the parsed form of one breakpoint predicate.
type Condition struct {
	Kind ConditionKind
	Key  string
	Op   string
	Value string
}

// String re-renders a Condition back into parseable source form, used
// by the condition-exactness round-trip property.
func (c Condition) String() string {
	if c.Kind == ConditionStorage {
		return fmt.Sprintf("storage[%s] %s %s", c.Key, c.Op, c.Value)
	}
	return fmt.Sprintf("%s %s %s", c.Key, c.Op, c.Value)
}

var operators = []string{">=", "<=", "==", "!=", ">", "<"}

// findOperator scans left to right for the first position at which any
// operator matches, preferring two-character operators over
// one-character ones at that position.
func findOperator(s string) (op string, idx int, found bool) {
	for i := 0; i < len(s); i++ {
		for _, candidate := range operators {
			if strings.HasPrefix(s[i:], candidate) {
				return candidate, i, true
			}
		}
	}
	return "", -1, false
}

// ParseCondition parses one condition string per the grammar:
// `storage[<key>] OP <value>` or `ident OP value`.
func ParseCondition(raw string) (Condition, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "storage[") {
		end := strings.Index(s, "]")
		if end < 0 {
			return Condition{}, errs.InvalidArguments("invalid condition %q: unterminated storage[...]", raw)
		}
		key := strings.TrimSpace(s[len("storage["):end])
		rest := strings.TrimSpace(s[end+1:])
		op, idx, found := findOperator(rest)
		if !found {
			return Condition{}, errs.InvalidArguments("invalid condition %q: no operator found", raw)
		}
		val := strings.TrimSpace(rest[idx+len(op):])
		return Condition{Kind: ConditionStorage, Key: key, Op: op, Value: val}, nil
	}

	op, idx, found := findOperator(s)
	if !found {
		return Condition{}, errs.InvalidArguments("invalid condition %q: no operator found", raw)
	}
	name := strings.TrimSpace(s[:idx])
	val := strings.TrimSpace(s[idx+len(op):])
	return Condition{Kind: ConditionArgument, Key: name, Op: op, Value: val}, nil
}

// CompareValues compares a and b per op: numerically (arbitrary
// precision, so no signed/unsigned 128-bit overflow boundary ever
// applies) when both parse as integers, lexicographically otherwise.
func CompareValues(a, b, op string) bool {
	an, aok := new(big.Int).SetString(a, 10)
	bn, bok := new(big.Int).SetString(b, 10)
	var cmp int
	if aok && bok {
		cmp = an.Cmp(bn)
	} else {
		cmp = strings.Compare(a, b)
	}
	switch op {
	case "==":
		return cmp == 0
	case "!=":
		return cmp != 0
	case ">":
		return cmp > 0
	case "<":
		return cmp < 0
	case ">=":
		return cmp >= 0
	case "<=":
		return cmp <= 0
	default:
		return false
	}
}

// NameArguments zips a positional JSON array (the shape
// argnorm.Normalize produces) against a function's declared parameter
// names, producing the name-keyed JSON document ShouldBreak's
// argument-condition branch expects. Positions beyond len(names), or
// an argsJSON that isn't a JSON array, are ignored rather than erroring
// — the caller may not have a contractspec to name parameters from, in
// which case argument-keyed conditions simply never match.
func NameArguments(names []string, argsJSON string) string {
	if argsJSON == "" {
		return ""
	}
	var arr []json.RawMessage
	if err := json.Unmarshal([]byte(argsJSON), &arr); err != nil {
		return ""
	}
	obj := make(map[string]json.RawMessage, len(arr))
	for i, raw := range arr {
		if i >= len(names) {
			break
		}
		obj[names[i]] = raw
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return ""
	}
	return string(out)
}

// Breakpoint is one registered predicate; a nil Condition means
// "always break".
type Breakpoint struct {
	Function  string
	Condition *Condition
}

// Manager holds at most one breakpoint per function name, with
// replace-on-insert semantics.
type Manager struct {
	mu          sync.Mutex
	breakpoints map[string]*Breakpoint
}

func NewManager() *Manager {
	return &Manager{breakpoints: map[string]*Breakpoint{}}
}

// Set installs (or replaces) the breakpoint for function. An empty
// conditionStr means "always break".
func (m *Manager) Set(function, conditionStr string) error {
	var cond *Condition
	if conditionStr != "" {
		c, err := ParseCondition(conditionStr)
		if err != nil {
			return err
		}
		cond = &c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.breakpoints[function] = &Breakpoint{Function: function, Condition: cond}
	return nil
}

func (m *Manager) Clear(function string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.breakpoints, function)
}

func (m *Manager) Get(function string) (*Breakpoint, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bp, ok := m.breakpoints[function]
	return bp, ok
}

// ShouldBreak evaluates the registered breakpoint (if any) for
// function against storage and an optional JSON argument document.
func (m *Manager) ShouldBreak(function string, storage map[string]string, argsJSON string) (bool, error) {
	bp, ok := m.Get(function)
	if !ok {
		return false, nil
	}
	if bp.Condition == nil {
		return true, nil
	}

	c := bp.Condition
	switch c.Kind {
	case ConditionStorage:
		v, ok := storage[c.Key]
		if !ok {
			return false, nil
		}
		return CompareValues(v, c.Value, c.Op), nil

	case ConditionArgument:
		if argsJSON == "" {
			return false, nil
		}
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(argsJSON), &obj); err != nil {
			return false, errs.InvalidArguments("argument document is not a JSON object: %v", err)
		}
		raw, ok := obj[c.Key]
		if !ok {
			return false, nil
		}
		return CompareValues(stringifyPrimitive(raw), c.Value, c.Op), nil

	default:
		return false, nil
	}
}

func stringifyPrimitive(v interface{}) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%v", x)
	}
}
