package mockgen

import (
	"fmt"
	"strings"
)

// StatementKind selects the Mockito stubbing pattern
type StatementKind int

const (
	NoOp StatementKind = iota
	ReturnValue
	FluentReturn
	ThrowException
)

var kindNames = map[StatementKind]string{
	NoOp:           "do_nothing",
	ReturnValue:    "do_return",
	FluentReturn:   "then_return",
	ThrowException: "then_throw",
}

// Kinds lists every statement kind in declaration order
func Kinds() []StatementKind {
	return []StatementKind{NoOp, ReturnValue, FluentReturn, ThrowException}
}

func (k StatementKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("unknown(%d)", int(k))
}

// ParseKind accepts the names returned by String, case-insensitively,
// with either '_' or '-' as separator.
func ParseKind(name string) (StatementKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for kind, kindName := range kindNames {
		if kindName == normalized {
			return kind, nil
		}
	}

	return 0, fmt.Errorf("unknown statement kind %q (expected one of do_nothing, do_return, then_return, then_throw)", name)
}
