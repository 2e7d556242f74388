// Package javasig extracts method signatures from the text a Java language
// server reports in hover and document symbol responses.
package javasig

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrNotMethod is returned when text does not describe a method or constructor
var ErrNotMethod = errors.New("text is not a method signature")

// Signature is a parsed method signature. Owner is empty when the text
// carries no qualified name. ReturnType is empty for constructors.
type Signature struct {
	Owner      string
	Method     string
	Parameters []string
	ReturnType string
}

var modifiers = map[string]bool{
	"public":       true,
	"protected":    true,
	"private":      true,
	"static":       true,
	"final":        true,
	"abstract":     true,
	"synchronized": true,
	"native":       true,
	"default":      true,
	"strictfp":     true,
	"transient":    true,
	"volatile":     true,
}

var keywords = map[string]bool{
	"if":      true,
	"for":     true,
	"while":   true,
	"switch":  true,
	"catch":   true,
	"return":  true,
	"new":     true,
	"throw":   true,
	"try":     true,
	"do":      true,
	"else":    true,
	"assert":  true,
	"case":    true,
	"class":   true,
	"record":  true,
	"package": true,
	"import":  true,
}

// ParseSignature parses one line of signature text. Both hover form
// ("User com.example.UserService.findUser(String name, int age)") and
// symbol form ("findUser(String, int) : User") are accepted.
func ParseSignature(text string) (Signature, error) {
	s := stripLeadingAnnotations(strings.TrimSuffix(strings.TrimSpace(text), ";"))

	open := indexTopLevel(s, '(')
	if open < 0 {
		return Signature{}, ErrNotMethod
	}

	closeIdx := matchingParen(s, open)
	if closeIdx < 0 {
		return Signature{}, fmt.Errorf("%w: unbalanced parentheses in %q", ErrNotMethod, text)
	}

	var head []string
	for _, token := range splitTopLevel(s[:open], unicode.IsSpace) {
		if isModifierToken(token) || strings.HasPrefix(token, "<") {
			continue
		}
		head = append(head, token)
	}

	if len(head) == 0 {
		return Signature{}, ErrNotMethod
	}

	// java.util.List<String>.get names the method get of List
	qualified := stripGenerics(head[len(head)-1])
	if !isQualifiedIdentifier(qualified) {
		return Signature{}, fmt.Errorf("%w: %q is not a method name", ErrNotMethod, qualified)
	}

	parts := strings.Split(qualified, ".")
	sig := Signature{Method: parts[len(parts)-1]}
	if keywords[sig.Method] {
		return Signature{}, fmt.Errorf("%w: %q is a keyword", ErrNotMethod, sig.Method)
	}

	if len(parts) > 1 {
		sig.Owner = parts[len(parts)-2]
	}

	if len(head) > 1 {
		sig.ReturnType = SimpleTypeName(strings.Join(head[:len(head)-1], " "))
	}

	sig.Parameters = parseParameters(s[open+1 : closeIdx])

	rest := strings.TrimSpace(s[closeIdx+1:])
	if after, ok := strings.CutPrefix(rest, ":"); ok && sig.ReturnType == "" {
		sig.ReturnType = SimpleTypeName(after)
	}

	return sig, nil
}

func parseParameters(list string) []string {
	params := []string{}

	for _, param := range splitTopLevel(list, func(r rune) bool { return r == ',' }) {
		var tokens []string
		for _, token := range splitTopLevel(param, unicode.IsSpace) {
			if isModifierToken(token) {
				continue
			}
			tokens = append(tokens, token)
		}

		if len(tokens) == 0 {
			continue
		}

		typeName := tokens[0]
		if len(tokens) > 1 {
			typeName = strings.Join(tokens[:len(tokens)-1], "")

			// C-style array declarators: "int values[]"
			name := tokens[len(tokens)-1]
			for strings.HasSuffix(name, "[]") {
				typeName += "[]"
				name = strings.TrimSuffix(name, "[]")
			}
		}

		params = append(params, SimpleTypeName(typeName))
	}

	return params
}

// SimpleTypeName reduces a Java type to the simple class name used for
// matcher lookup: annotations, packages and generic arguments are removed,
// varargs become arrays and an empty type becomes "void".
func SimpleTypeName(typeName string) string {
	var kept []string
	for _, token := range splitTopLevel(typeName, unicode.IsSpace) {
		if isModifierToken(token) {
			continue
		}
		kept = append(kept, token)
	}

	t := stripGenerics(strings.Join(kept, ""))

	suffix := ""
	if base, ok := strings.CutSuffix(t, "..."); ok {
		t = base
		suffix = "[]"
	}

	for strings.HasSuffix(t, "[]") {
		t = strings.TrimSuffix(t, "[]")
		suffix = "[]" + suffix
	}

	if i := strings.LastIndex(t, "."); i >= 0 {
		t = t[i+1:]
	}

	if t == "" {
		return "void"
	}

	return t + suffix
}

// ExtractCodeLines returns the lines inside fenced code blocks of a
// markdown document, or every non-empty line when there is no fence.
func ExtractCodeLines(markdown string) []string {
	var fenced, plain []string
	inFence := false
	sawFence := false

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			sawFence = true
			continue
		}

		if trimmed == "" {
			continue
		}

		if inFence {
			fenced = append(fenced, trimmed)
		} else {
			plain = append(plain, trimmed)
		}
	}

	if sawFence {
		return fenced
	}

	return plain
}

// stripLeadingAnnotations drops "@Name" and "@Name(...)" prefixes so their
// parentheses are not mistaken for the parameter list.
func stripLeadingAnnotations(s string) string {
	for strings.HasPrefix(s, "@") {
		end := strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '(' })
		if end < 0 {
			return ""
		}

		if s[end] == '(' {
			closeIdx := matchingParen(s, end)
			if closeIdx < 0 {
				return s
			}
			end = closeIdx + 1
		}

		s = strings.TrimSpace(s[end:])
	}

	return s
}

func isModifierToken(token string) bool {
	return modifiers[token] || strings.HasPrefix(token, "@")
}

func isQualifiedIdentifier(s string) bool {
	if s == "" || strings.HasPrefix(s, ".") || strings.HasSuffix(s, ".") {
		return false
	}

	for _, r := range s {
		if r != '.' && r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}

	return !unicode.IsDigit([]rune(s)[0])
}

func stripGenerics(s string) string {
	var b strings.Builder
	depth := 0

	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}

	return b.String()
}

// splitTopLevel splits s at runes matching sep that are not nested inside
// <>, () or [] pairs. Empty fields are dropped.
func splitTopLevel(s string, sep func(rune) bool) []string {
	var fields []string
	var b strings.Builder
	depth := 0

	flush := func() {
		if field := strings.TrimSpace(b.String()); field != "" {
			fields = append(fields, field)
		}
		b.Reset()
	}

	for _, r := range s {
		switch r {
		case '<', '(', '[':
			depth++
		case '>', ')', ']':
			if depth > 0 {
				depth--
			}
		}

		if depth == 0 && sep(r) {
			flush()
			continue
		}

		b.WriteRune(r)
	}

	flush()

	return fields
}

func indexTopLevel(s string, target rune) int {
	depth := 0
	for i, r := range s {
		switch {
		case r == target && depth == 0:
			return i
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		}
	}

	return -1
}

func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
