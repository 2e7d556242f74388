package tools

import (
	"context"
	"fmt"
	"strings"

	"rockerboo/mockito-tools/javasig"
	"rockerboo/mockito-tools/logger"
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMockStatementTools registers the signature-driven generators
func RegisterMockStatementTools(mcpServer ToolServer) {
	mcpServer.AddTool(MockStatementTool())
	mcpServer.AddTool(MockStatementsTool())
}

func signatureOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("owner", mcp.Description("Simple name of the class or interface that declares the method, e.g. 'Calculator'"), mcp.Required()),
		mcp.WithString("method", mcp.Description("Method name, e.g. 'add'"), mcp.Required()),
		mcp.WithString("parameter_types", mcp.Description("Comma-separated parameter types in declaration order, e.g. 'int, java.util.List<String>' (empty for no parameters). Packages and generic arguments are dropped.")),
		mcp.WithString("return_type", mcp.Description("Return type (default: 'void')")),
	}
}

func requireSignature(request mcp.CallToolRequest) (mockgen.MethodSignature, error) {
	owner, err := request.RequireString("owner")
	if err != nil {
		return mockgen.MethodSignature{}, err
	}

	method, err := request.RequireString("method")
	if err != nil {
		return mockgen.MethodSignature{}, err
	}

	returnType := types.DefaultUnresolvedType
	if val, err := request.RequireString("return_type"); err == nil && strings.TrimSpace(val) != "" {
		returnType = javasig.SimpleTypeName(val)
	}

	params := []string{}
	if val, err := request.RequireString("parameter_types"); err == nil {
		for _, p := range splitTypes(val) {
			params = append(params, javasig.SimpleTypeName(p))
		}
	}

	owner = strings.TrimSpace(owner)
	if owner != "" {
		owner = javasig.SimpleTypeName(owner)
	}

	sig := mockgen.MethodSignature{
		OwnerType:      owner,
		MethodName:     strings.TrimSpace(method),
		ParameterTypes: params,
		ReturnType:     returnType,
	}

	return sig, sig.Validate()
}

// MockStatementTool renders one statement from an explicit signature
func MockStatementTool() (mcp.Tool, server.ToolHandlerFunc) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Generate a single Mockito stubbing statement from an explicit method signature, without a language server. kind is one of do_nothing, do_return, then_return, then_throw."),
		mcp.WithString("kind", mcp.Description("Statement kind"), mcp.Required(), mcp.Enum("do_nothing", "do_return", "then_return", "then_throw")),
	}, signatureOptions()...)

	return mcp.NewTool("mock_statement", opts...),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			kindName, err := request.RequireString("kind")
			if err != nil {
				logger.Error("mock_statement: Kind parsing failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			kind, err := mockgen.ParseKind(kindName)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			sig, err := requireSignature(request)
			if err != nil {
				logger.Error("mock_statement: Signature parsing failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			return mcp.NewToolResultText(mockgen.Generate(kind, sig)), nil
		}
}

// MockStatementsTool renders every statement kind for one signature
func MockStatementsTool() (mcp.Tool, server.ToolHandlerFunc) {
	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Generate all four Mockito stubbing statements (do_nothing, do_return, then_return, then_throw) for an explicit method signature. One 'kind: statement' line per kind."),
	}, signatureOptions()...)

	return mcp.NewTool("mock_statements", opts...),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			sig, err := requireSignature(request)
			if err != nil {
				logger.Error("mock_statements: Signature parsing failed", err)
				return mcp.NewToolResultError(err.Error()), nil
			}

			statements := mockgen.GenerateAll(sig)

			var out strings.Builder
			for _, kind := range mockgen.Kinds() {
				fmt.Fprintf(&out, "%s: %s\n", kind, statements[kind])
			}

			return mcp.NewToolResultText(strings.TrimSuffix(out.String(), "\n")), nil
		}
}
