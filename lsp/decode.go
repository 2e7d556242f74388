package lsp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"rockerboo/mockito-tools/types"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// wireSymbol covers both DocumentSymbol and SymbolInformation shapes
type wireSymbol struct {
	Name           string              `json:"name"`
	Detail         string              `json:"detail"`
	Kind           protocol.SymbolKind `json:"kind"`
	Range          *protocol.Range     `json:"range"`
	SelectionRange *protocol.Range     `json:"selectionRange"`
	Children       []wireSymbol        `json:"children"`
	ContainerName  string              `json:"containerName"`
	Location       *struct {
		Range protocol.Range `json:"range"`
	} `json:"location"`
}

func decodeDocumentSymbols(raw json.RawMessage) ([]types.DocumentSymbol, error) {
	if isNull(raw) {
		return nil, nil
	}

	var wire []wireSymbol
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, err
	}

	return convertSymbols(wire), nil
}

func convertSymbols(wire []wireSymbol) []types.DocumentSymbol {
	symbols := make([]types.DocumentSymbol, 0, len(wire))

	for _, w := range wire {
		symbol := types.DocumentSymbol{
			Name:          w.Name,
			Detail:        w.Detail,
			Kind:          w.Kind,
			ContainerName: w.ContainerName,
		}

		switch {
		case w.Range != nil:
			symbol.Range = *w.Range
			symbol.SelectionRange = *w.Range
			if w.SelectionRange != nil {
				symbol.SelectionRange = *w.SelectionRange
			}
		case w.Location != nil:
			symbol.Range = w.Location.Range
			symbol.SelectionRange = w.Location.Range
		}

		if len(w.Children) > 0 {
			symbol.Children = convertSymbols(w.Children)
		}

		symbols = append(symbols, symbol)
	}

	return symbols
}

func decodeHover(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}

	var hover struct {
		Contents json.RawMessage `json:"contents"`
	}
	if err := json.Unmarshal(raw, &hover); err != nil {
		return "", err
	}

	return flattenHoverContents(hover.Contents)
}

// flattenHoverContents renders MarkupContent, MarkedString and
// MarkedString[] as one markdown document.
func flattenHoverContents(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return "", err
		}

		parts := make([]string, 0, len(items))
		for _, item := range items {
			part, err := flattenHoverContents(item)
			if err != nil {
				return "", err
			}
			if part != "" {
				parts = append(parts, part)
			}
		}
		return strings.Join(parts, "\n\n"), nil

	case '{':
		var obj struct {
			Kind     string `json:"kind"`
			Language string `json:"language"`
			Value    string `json:"value"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return "", err
		}

		if obj.Language != "" {
			return fmt.Sprintf("```%s\n%s\n```", obj.Language, obj.Value), nil
		}
		return obj.Value, nil
	}

	return "", fmt.Errorf("unexpected hover contents: %s", string(raw))
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
