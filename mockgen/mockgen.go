// Package mockgen turns a Java method signature into a single Mockito
// stubbing statement.
package mockgen

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MethodSignature describes the method being stubbed
type MethodSignature struct {
	OwnerType      string   `json:"owner_type"`
	MethodName     string   `json:"method_name"`
	ParameterTypes []string `json:"parameter_types"`
	ReturnType     string   `json:"return_type"`
}

// Validate checks the input constraints Generate relies on
func (s MethodSignature) Validate() error {
	if s.OwnerType == "" {
		return errors.New("owner type cannot be empty")
	}

	if s.MethodName == "" {
		return errors.New("method name cannot be empty")
	}

	return nil
}

func (s MethodSignature) String() string {
	return fmt.Sprintf("%s %s.%s(%s)", s.ReturnType, s.OwnerType, s.MethodName, strings.Join(s.ParameterTypes, ", "))
}

// statementTemplate renders one stubbing pattern. value is the default
// value expression for the return type.
type statementTemplate func(instance, method, matchers, value string) string

var templates = map[StatementKind]statementTemplate{
	NoOp: func(instance, method, matchers, _ string) string {
		return fmt.Sprintf("doNothing().when(%s.%s(%s));", instance, method, matchers)
	},
	ReturnValue: func(instance, method, matchers, value string) string {
		return fmt.Sprintf("doReturn(%s).when(%s).%s(%s);", value, instance, method, matchers)
	},
	FluentReturn: func(instance, method, matchers, value string) string {
		return fmt.Sprintf("when(%s.%s(%s)).thenReturn(%s);", instance, method, matchers, value)
	},
	ThrowException: func(instance, method, matchers, _ string) string {
		return fmt.Sprintf("when(%s.%s(%s)).thenThrow(new Exception());", instance, method, matchers)
	},
}

// Generate renders the statement of the given kind for sig.
// An unknown kind renders an empty string.
func Generate(kind StatementKind, sig MethodSignature) string {
	tmpl, ok := templates[kind]
	if !ok {
		return ""
	}

	return tmpl(InstanceName(sig.OwnerType), sig.MethodName, Matchers(sig.ParameterTypes), ToMockValue(sig.ReturnType))
}

// GenerateAll renders every statement kind for sig
func GenerateAll(sig MethodSignature) map[StatementKind]string {
	result := make(map[StatementKind]string, len(templates))
	for _, kind := range Kinds() {
		result[kind] = Generate(kind, sig)
	}

	return result
}

// Matchers joins the argument matcher of each parameter type, in order
func Matchers(parameterTypes []string) string {
	matchers := make([]string, 0, len(parameterTypes))
	for _, t := range parameterTypes {
		matchers = append(matchers, ToMockType(t))
	}

	return strings.Join(matchers, ", ")
}

// InstanceName derives the mock variable name by lowering the first
// character of the owner type.
func InstanceName(ownerType string) string {
	r, size := utf8.DecodeRuneInString(ownerType)
	if r == utf8.RuneError {
		return ownerType
	}

	return string(unicode.ToLower(r)) + ownerType[size:]
}
