package tools

import (
	"errors"
	"fmt"
	"testing"

	"rockerboo/mockito-tools/bridge"
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/mocks"
	"rockerboo/mockito-tools/types"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const orderServiceURI = "file:///work/src/main/java/shop/OrderService.java"

func TestStubTool(t *testing.T) {
	sig := mockgen.MethodSignature{
		OwnerType:      "Calculator",
		MethodName:     "add",
		ParameterTypes: []string{"int", "int"},
		ReturnType:     "int",
	}

	testCases := []struct {
		name         string
		kind         mockgen.StatementKind
		args         map[string]any
		deliver      bool
		skipBridge   bool
		result       *types.StubResult
		err          error
		expectError  bool
		expectedText string
	}{
		{
			name:    "copied to clipboard by default",
			kind:    mockgen.FluentReturn,
			args:    map[string]any{"uri": orderServiceURI, "line": 12, "character": 20},
			deliver: true,
			result: &types.StubResult{
				Kind:      "then_return",
				Statement: mockgen.Generate(mockgen.FluentReturn, sig),
				Copied:    true,
				Message:   "Code copied to clipboard",
			},
			expectedText: "Code copied to clipboard\n\nwhen(calculator.add(anyInt(), anyInt())).thenReturn(0);",
		},
		{
			name:    "copy disabled",
			kind:    mockgen.NoOp,
			args:    map[string]any{"uri": orderServiceURI, "line": 12, "character": 20, "copy": "false"},
			deliver: false,
			result: &types.StubResult{
				Kind:      "do_nothing",
				Statement: mockgen.Generate(mockgen.NoOp, sig),
				Message:   "Code generated",
			},
			expectedText: "Code generated\n\ndoNothing().when(calculator.add(anyInt(), anyInt()));",
		},
		{
			name:         "not a method",
			kind:         mockgen.ThrowException,
			args:         map[string]any{"uri": orderServiceURI, "line": 3, "character": 0},
			deliver:      true,
			err:          fmt.Errorf("%w: caret is not on a method", bridge.ErrNotSupported),
			expectError:  true,
			expectedText: NotSupportedMessage,
		},
		{
			name:         "language server failure",
			kind:         mockgen.ReturnValue,
			args:         map[string]any{"uri": orderServiceURI, "line": 12, "character": 20},
			deliver:      true,
			err:          errors.New("hover request failed: timeout"),
			expectError:  true,
			expectedText: "Failed to generate statement: hover request failed: timeout",
		},
		{
			name:        "missing uri",
			kind:        mockgen.NoOp,
			args:        map[string]any{"line": 1, "character": 1},
			skipBridge:  true,
			expectError: true,
		},
		{
			name:        "negative line",
			kind:        mockgen.NoOp,
			args:        map[string]any{"uri": orderServiceURI, "line": -1, "character": 1},
			skipBridge:  true,
			expectError: true,
		},
		{
			name:        "bad copy flag",
			kind:        mockgen.NoOp,
			args:        map[string]any{"uri": orderServiceURI, "line": 1, "character": 1, "copy": "maybe"},
			skipBridge:  true,
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bridgeMock := &mocks.MockBridge{}
			bridgeMock.On("GetConfig").Return(nil).Maybe()

			if !tc.skipBridge {
				line := uint32(tc.args["line"].(int))
				character := uint32(tc.args["character"].(int))

				if tc.result != nil {
					bridgeMock.On("GenerateAt", tc.kind, orderServiceURI, line, character, tc.deliver).Return(tc.result, nil)
				} else {
					bridgeMock.On("GenerateAt", tc.kind, orderServiceURI, line, character, tc.deliver).Return(nil, tc.err)
				}
			}

			tool, handler := StubTool(tc.kind, bridgeMock)
			assert.Equal(t, tc.kind.String(), tool.Name)

			toolResult := callTool(t, tool, handler, tc.args)

			assert.Equal(t, tc.expectError, toolResult.IsError, "result: %+v", toolResult.Content)
			if tc.expectedText != "" {
				assert.Equal(t, tc.expectedText, resultText(t, toolResult))
			}

			bridgeMock.AssertExpectations(t)
			if tc.skipBridge {
				bridgeMock.AssertNotCalled(t, "GenerateAt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestStubToolCopyDefaultFromConfig(t *testing.T) {
	disabled := false

	config := &mocks.MockLSPServerConfig{}
	config.On("GetMockitoConfig").Return(types.MockitoConfig{CopyToClipboard: &disabled})

	bridgeMock := &mocks.MockBridge{}
	bridgeMock.On("GetConfig").Return(config)
	bridgeMock.On("GenerateAt", mockgen.NoOp, orderServiceURI, uint32(4), uint32(9), false).
		Return(&types.StubResult{Statement: "doNothing().when(orderService.cancel(anyString()));", Message: "Code generated"}, nil)

	tool, handler := StubTool(mockgen.NoOp, bridgeMock)
	toolResult := callTool(t, tool, handler, map[string]any{"uri": orderServiceURI, "line": 4, "character": 9})

	assert.False(t, toolResult.IsError)
	assert.Contains(t, resultText(t, toolResult), "doNothing()")
	bridgeMock.AssertExpectations(t)
	config.AssertExpectations(t)
}

type recordingToolServer struct {
	names []string
}

func (r *recordingToolServer) AddTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	r.names = append(r.names, tool.Name)
}

func TestRegisterStubTools(t *testing.T) {
	recorder := &recordingToolServer{}
	RegisterStubTools(recorder, &mocks.MockBridge{})

	assert.Equal(t, []string{"do_nothing", "do_return", "then_return", "then_throw"}, recorder.names)
}
