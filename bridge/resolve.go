package bridge

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf16"

	"rockerboo/mockito-tools/javasig"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/lsp"
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/types"
	"rockerboo/mockito-tools/utils"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// ResolveSite classifies the caret position in a Java source file
func (b *MockitoBridge) ResolveSite(uri string, line, character uint32) (types.Site, error) {
	normalizedURI := utils.NormalizeURI(uri)

	language, err := b.InferLanguage(normalizedURI)
	if err != nil {
		return types.Unsupported{Reason: "not a Java source file"}, nil
	}

	if *language != lsp.JavaLanguage {
		return types.Unsupported{Reason: fmt.Sprintf("language %s is not supported", *language)}, nil
	}

	client, err := b.GetClientForLanguage(string(*language))
	if err != nil {
		return nil, fmt.Errorf("failed to get client for language %s: %w", *language, err)
	}

	if err := b.ensureDocumentOpen(client, normalizedURI, string(*language)); err != nil {
		return nil, err
	}

	symbols, err := client.DocumentSymbols(normalizedURI)
	if err != nil {
		return nil, fmt.Errorf("document symbols request failed: %w", err)
	}

	pos := protocol.Position{Line: line, Character: character}
	chain := enclosingChain(symbols, pos)
	placeholder := b.config.GetMockitoConfig().Placeholder()

	callable, idx := innermostCallable(chain)
	if callable != nil && callable.SelectionRange == callable.Range {
		// Flat symbols carry no selection range
		if sel, found := nameRange(*callable, b.documentContent(normalizedURI)); found {
			callable.SelectionRange = sel
		} else {
			callable = nil
		}
	}

	if callable != nil && rangeContains(callable.SelectionRange, pos) {
		sig, err := b.declarationSignature(client, normalizedURI, *callable)
		if err != nil {
			logger.Debug(fmt.Sprintf("ResolveSite: declaration at %d:%d unparsable: %v", line, character, err))
			return types.Unsupported{Reason: "method signature could not be read"}, nil
		}

		if owner := enclosingTypeName(chain[:idx], *callable); owner != "" {
			sig.Owner = owner
		}
		if sig.Owner == "" {
			return types.Unsupported{Reason: "method has no enclosing type"}, nil
		}

		return types.MethodDeclarationSite{
			Signature: toMethodSignature(sig, placeholder),
			Range:     callable.SelectionRange,
		}, nil
	}

	hover, err := client.Hover(normalizedURI, line, character)
	if err != nil {
		return nil, fmt.Errorf("hover request failed: %w", err)
	}

	sig, ok := firstSignature(hover)
	if !ok {
		return types.Unsupported{Reason: "caret is not on a method"}, nil
	}

	if sig.ReturnType == "" && sig.Owner == sig.Method {
		return types.Unsupported{Reason: "constructor calls cannot be stubbed"}, nil
	}

	if sig.Owner == "" {
		sig.Owner = enclosingTypeName(chain, types.DocumentSymbol{})
	}
	if sig.Owner == "" {
		return types.Unsupported{Reason: "method has no enclosing type"}, nil
	}

	return types.CallSite{
		Signature: toMethodSignature(sig, placeholder),
		Position:  pos,
	}, nil
}

// GenerateAt resolves the caret and renders the statement of kind. The
// statement goes to the clipboard when deliver is set.
func (b *MockitoBridge) GenerateAt(kind mockgen.StatementKind, uri string, line, character uint32, deliver bool) (*types.StubResult, error) {
	site, err := b.ResolveSite(uri, line, character)
	if err != nil {
		return nil, err
	}

	sig, ok := types.SignatureOf(site)
	if !ok {
		reason := "unsupported location"
		if u, isUnsupported := site.(types.Unsupported); isUnsupported {
			reason = u.Reason
		}
		return nil, fmt.Errorf("%w: %s", ErrNotSupported, reason)
	}

	result := &types.StubResult{
		Kind:      kind.String(),
		Statement: mockgen.Generate(kind, sig),
		Site:      site,
		Message:   "Code generated",
	}

	if result.Statement == "" {
		return nil, fmt.Errorf("unknown statement kind %d", int(kind))
	}

	if !deliver {
		return result, nil
	}

	if err := b.clipboard.WriteAll(result.Statement); err != nil {
		logger.Warn(fmt.Sprintf("Clipboard delivery failed: %v", err))
		result.Message = fmt.Sprintf("Code generated (clipboard unavailable: %v)", err)
		return result, nil
	}

	result.Copied = true
	result.Message = "Code copied to clipboard"

	return result, nil
}

func (b *MockitoBridge) declarationSignature(client types.LanguageClientInterface, uri string, symbol types.DocumentSymbol) (javasig.Signature, error) {
	start := symbol.SelectionRange.Start

	hover, err := client.Hover(uri, start.Line, start.Character)
	if err != nil {
		logger.Debug(fmt.Sprintf("Hover on declaration failed, using symbol text: %v", err))
	} else if sig, ok := firstSignature(hover); ok {
		return sig, nil
	}

	sig, err := javasig.ParseSignature(symbol.Name + symbol.Detail)
	if err != nil {
		return javasig.Signature{}, err
	}
	if sig.Owner == "" {
		sig.Owner = symbol.ContainerName
	}
	return sig, nil
}

func firstSignature(hover string) (javasig.Signature, bool) {
	for _, line := range javasig.ExtractCodeLines(hover) {
		sig, err := javasig.ParseSignature(line)
		if err == nil {
			return sig, true
		}
		if !errors.Is(err, javasig.ErrNotMethod) {
			logger.Debug(fmt.Sprintf("Skipping hover line %q: %v", line, err))
		}
	}
	return javasig.Signature{}, false
}

func toMethodSignature(sig javasig.Signature, placeholder string) mockgen.MethodSignature {
	params := make([]string, len(sig.Parameters))
	for i, p := range sig.Parameters {
		params[i] = orPlaceholder(p, placeholder)
	}

	return mockgen.MethodSignature{
		OwnerType:      sig.Owner,
		MethodName:     sig.Method,
		ParameterTypes: params,
		ReturnType:     orPlaceholder(sig.ReturnType, placeholder),
	}
}

func orPlaceholder(typeName, placeholder string) string {
	if typeName == "" {
		return placeholder
	}
	return typeName
}

// enclosingChain returns every symbol whose range holds pos, outermost first.
// Flat symbol lists are ordered the same way by nesting of their ranges.
func enclosingChain(symbols []types.DocumentSymbol, pos protocol.Position) []types.DocumentSymbol {
	var chain []types.DocumentSymbol

	var walk func([]types.DocumentSymbol)
	walk = func(nodes []types.DocumentSymbol) {
		for _, s := range nodes {
			if !rangeContains(s.Range, pos) {
				continue
			}
			chain = append(chain, s)
			walk(s.Children)
		}
	}
	walk(symbols)

	sort.SliceStable(chain, func(i, j int) bool {
		a, b := chain[i].Range, chain[j].Range
		if a.Start != b.Start {
			return positionBefore(a.Start, b.Start)
		}
		return positionBefore(b.End, a.End)
	})

	return chain
}

func innermostCallable(chain []types.DocumentSymbol) (*types.DocumentSymbol, int) {
	for i := len(chain) - 1; i >= 0; i-- {
		switch chain[i].Kind {
		case protocol.SymbolKindMethod, protocol.SymbolKindConstructor:
			return &chain[i], i
		case protocol.SymbolKindClass, protocol.SymbolKindInterface, protocol.SymbolKindEnum:
			// A type nested inside the method owns the caret
			return nil, -1
		}
	}
	return nil, -1
}

// nameRange locates the declared name of symbol on its first line. The
// name must be followed by an opening parenthesis, so a call to the same
// method later on the line is not taken for the declaration.
func nameRange(symbol types.DocumentSymbol, content string) (protocol.Range, bool) {
	name, _, _ := strings.Cut(symbol.Name, "(")
	name = strings.TrimSpace(name)
	if name == "" {
		return protocol.Range{}, false
	}

	lines := strings.Split(content, "\n")
	line := symbol.Range.Start.Line
	if int(line) >= len(lines) {
		return protocol.Range{}, false
	}
	text := strings.TrimSuffix(lines[line], "\r")

	for offset := 0; offset < len(text); {
		i := strings.Index(text[offset:], name)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(name)
		offset = end

		if start > 0 && isIdentifierByte(text[start-1]) {
			continue
		}
		if end < len(text) && isIdentifierByte(text[end]) {
			continue
		}
		if !strings.HasPrefix(strings.TrimLeft(text[end:], " \t"), "(") {
			continue
		}

		startChar := utf16Len(text[:start])
		return protocol.Range{
			Start: protocol.Position{Line: line, Character: startChar},
			End:   protocol.Position{Line: line, Character: startChar + utf16Len(name)},
		}, true
	}

	return protocol.Range{}, false
}

func isIdentifierByte(c byte) bool {
	return c == '_' || c == '$' || c >= 0x80 ||
		('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// utf16Len counts s in UTF-16 code units, the unit of LSP character offsets
func utf16Len(s string) uint32 {
	var n uint32
	for _, r := range s {
		if w := utf16.RuneLen(r); w > 0 {
			n += uint32(w)
		} else {
			n++
		}
	}
	return n
}

// enclosingTypeName returns the innermost class-like symbol of chain,
// falling back to the container name of fallback.
func enclosingTypeName(chain []types.DocumentSymbol, fallback types.DocumentSymbol) string {
	for i := len(chain) - 1; i >= 0; i-- {
		switch chain[i].Kind {
		case protocol.SymbolKindClass, protocol.SymbolKindInterface, protocol.SymbolKindEnum, protocol.SymbolKindStruct:
			return javasig.SimpleTypeName(chain[i].Name)
		}
	}

	if fallback.ContainerName != "" {
		return javasig.SimpleTypeName(fallback.ContainerName)
	}

	return ""
}

func rangeContains(r protocol.Range, pos protocol.Position) bool {
	return !positionBefore(pos, r.Start) && !positionBefore(r.End, pos)
}

func positionBefore(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}
