package tools

import (
	"fmt"
	"math"
	"strings"

	"rockerboo/mockito-tools/interfaces"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolServer interface {
	AddTool(tool mcp.Tool, handler server.ToolHandlerFunc)
}

// caret is a 0-based position in a source file
type caret struct {
	uri       string
	line      uint32
	character uint32
}

// safeUint32 converts an int to uint32, rejecting negative and oversized values
func safeUint32(val int) (uint32, error) {
	if val < 0 {
		return 0, fmt.Errorf("value cannot be negative: %d", val)
	}
	if uint64(val) > math.MaxUint32 {
		return 0, fmt.Errorf("value too large: %d", val)
	}
	return uint32(val), nil
}

// requireCaret reads the uri, line and character arguments
func requireCaret(request mcp.CallToolRequest) (caret, error) {
	uri, err := request.RequireString("uri")
	if err != nil {
		return caret{}, err
	}
	if strings.TrimSpace(uri) == "" {
		return caret{}, fmt.Errorf("uri cannot be empty")
	}

	line, err := request.RequireInt("line")
	if err != nil {
		return caret{}, err
	}

	character, err := request.RequireInt("character")
	if err != nil {
		return caret{}, err
	}

	lineUint32, err := safeUint32(line)
	if err != nil {
		return caret{}, fmt.Errorf("invalid line number: %w", err)
	}

	characterUint32, err := safeUint32(character)
	if err != nil {
		return caret{}, fmt.Errorf("invalid character position: %w", err)
	}

	return caret{uri: uri, line: lineUint32, character: characterUint32}, nil
}

// parseFlag reads an optional "true"/"false" argument
func parseFlag(request mcp.CallToolRequest, name string, def bool) (bool, error) {
	val, err := request.RequireString(name)
	if err != nil {
		return def, nil
	}

	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "yes", "1":
		return true, nil
	case "false", "no", "0":
		return false, nil
	case "":
		return def, nil
	default:
		return def, fmt.Errorf("%s must be 'true' or 'false', got %q", name, val)
	}
}

// defaultCopy is the configured clipboard preference, true when unset
func defaultCopy(bridge interfaces.BridgeInterface) bool {
	config := bridge.GetConfig()
	if config == nil {
		return true
	}
	return config.GetMockitoConfig().ShouldCopy()
}

// splitTypes parses a comma-separated parameter type list. Commas inside
// generic arguments do not split.
func splitTypes(list string) []string {
	var (
		out   []string
		depth int
		start int
	)

	for i, r := range list {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				out = appendType(out, list[start:i])
				start = i + 1
			}
		}
	}

	return appendType(out, list[start:])
}

func appendType(out []string, typeName string) []string {
	if t := strings.TrimSpace(typeName); t != "" {
		return append(out, t)
	}
	return out
}
