package bridge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"rockerboo/mockito-tools/clipboard"
	"rockerboo/mockito-tools/lsp"
	"rockerboo/mockito-tools/mockgen"
	"rockerboo/mockito-tools/mocks"
	"rockerboo/mockito-tools/types"
	"rockerboo/mockito-tools/utils"

	"github.com/myleshyson/lsprotocol-go/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const orderService = `package com.example;

public class OrderService {
    private final UserService userService;

    public User owner(String name, int age) {
        return userService.findUser(name, age);
    }
}
`

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: startLine, Character: startChar},
		End:   protocol.Position{Line: endLine, Character: endChar},
	}
}

// orderServiceSymbols mirrors the jdtls outline of orderService
func orderServiceSymbols() []types.DocumentSymbol {
	return []types.DocumentSymbol{
		{
			Name:           "OrderService",
			Kind:           protocol.SymbolKindClass,
			Range:          rng(2, 0, 8, 1),
			SelectionRange: rng(2, 13, 2, 25),
			Children: []types.DocumentSymbol{
				{
					Name:           "userService",
					Detail:         " : UserService",
					Kind:           protocol.SymbolKindField,
					Range:          rng(3, 4, 3, 43),
					SelectionRange: rng(3, 31, 3, 42),
				},
				{
					Name:           "owner(String, int)",
					Detail:         " : User",
					Kind:           protocol.SymbolKindMethod,
					Range:          rng(5, 4, 7, 5),
					SelectionRange: rng(5, 16, 5, 21),
				},
			},
		},
	}
}

type fixture struct {
	bridge    *MockitoBridge
	client    *mocks.MockLanguageClient
	clipboard *clipboard.Memory
	root      string
	path      string
	uri       string
}

func newFixture(t *testing.T, source string) *fixture {
	t.Helper()

	root := t.TempDir()
	path := filepath.Join(root, "OrderService.java")
	require.NoError(t, os.WriteFile(path, []byte(source), 0600))

	mem := &clipboard.Memory{}
	client := &mocks.MockLanguageClient{}
	client.On("Context").Return(context.Background()).Maybe()
	client.On("IsConnected").Return(true).Maybe()
	client.On("ProjectRoots").Return([]string{root}).Maybe()
	client.On("DidOpen", mock.Anything, protocol.LanguageKind("java"), mock.Anything, mock.Anything).Return(nil).Maybe()

	b := NewMockitoBridge(lsp.DefaultLSPConfig(), []string{root}, WithClipboard(mem))
	b.clients[lsp.JavaServer] = client

	return &fixture{
		bridge:    b,
		client:    client,
		clipboard: mem,
		root:      root,
		path:      path,
		uri:       utils.FilePathToURI(path),
	}
}

func TestResolveSite_MethodDeclarationFromHover(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(5), uint32(16)).
		Return("```java\ncom.example.User com.example.OrderService.owner(String name, int age)\n```", nil)

	site, err := f.bridge.ResolveSite(f.uri, 5, 18)
	require.NoError(t, err)

	decl, ok := site.(types.MethodDeclarationSite)
	require.True(t, ok, "got %T", site)
	assert.Equal(t, "OrderService", decl.Signature.OwnerType)
	assert.Equal(t, "owner", decl.Signature.MethodName)
	assert.Equal(t, []string{"String", "int"}, decl.Signature.ParameterTypes)
	assert.Equal(t, "User", decl.Signature.ReturnType)
	assert.Equal(t, rng(5, 16, 5, 21), decl.Range)
}

func TestResolveSite_MethodDeclarationFromSymbolText(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(5), uint32(16)).Return("", nil)

	site, err := f.bridge.ResolveSite(f.uri, 5, 16)
	require.NoError(t, err)

	sig, ok := types.SignatureOf(site)
	require.True(t, ok)
	assert.Equal(t, "owner", sig.MethodName)
	assert.Equal(t, []string{"String", "int"}, sig.ParameterTypes)
	assert.Equal(t, "User", sig.ReturnType)
}

func TestResolveSite_CallSite(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(6), uint32(30)).
		Return("```java\ncom.example.User com.example.UserService.findUser(String name, int age)\n```\n\nLooks a user up.", nil)

	site, err := f.bridge.ResolveSite(f.uri, 6, 30)
	require.NoError(t, err)

	call, ok := site.(types.CallSite)
	require.True(t, ok, "got %T", site)
	assert.Equal(t, "UserService", call.Signature.OwnerType)
	assert.Equal(t, "findUser", call.Signature.MethodName)
	assert.Equal(t, []string{"String", "int"}, call.Signature.ParameterTypes)
	assert.Equal(t, "User", call.Signature.ReturnType)
	assert.Equal(t, protocol.Position{Line: 6, Character: 30}, call.Position)
}

func TestResolveSite_Unsupported(t *testing.T) {
	tests := []struct {
		name  string
		line  uint32
		char  uint32
		hover string
	}{
		{"local variable", 6, 38, "```java\nString name\n```"},
		{"field", 3, 35, "```java\nUserService userService\n```"},
		{"whitespace", 4, 0, ""},
		{"constructor call", 6, 12, "```java\ncom.example.User.User(String name)\n```"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, orderService)
			f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
			f.client.On("Hover", f.uri, tt.line, tt.char).Return(tt.hover, nil)

			site, err := f.bridge.ResolveSite(f.uri, tt.line, tt.char)
			require.NoError(t, err)
			assert.IsType(t, types.Unsupported{}, site)
		})
	}
}

func TestResolveSite_NonJavaFile(t *testing.T) {
	f := newFixture(t, orderService)

	site, err := f.bridge.ResolveSite(utils.FilePathToURI(filepath.Join(f.root, "notes.txt")), 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "unsupported", site.SiteKind())

	f.client.AssertNotCalled(t, "DocumentSymbols", mock.Anything)
}

func TestResolveSite_ConstructorDeclaration(t *testing.T) {
	source := "public class Money {\n    public Money(long cents) {}\n}\n"
	f := newFixture(t, source)
	f.client.On("DocumentSymbols", f.uri).Return([]types.DocumentSymbol{
		{
			Name:           "Money",
			Kind:           protocol.SymbolKindClass,
			Range:          rng(0, 0, 2, 1),
			SelectionRange: rng(0, 13, 0, 18),
			Children: []types.DocumentSymbol{{
				Name:           "Money(long)",
				Kind:           protocol.SymbolKindConstructor,
				Range:          rng(1, 4, 1, 31),
				SelectionRange: rng(1, 11, 1, 16),
			}},
		},
	}, nil)
	f.client.On("Hover", f.uri, uint32(1), uint32(11)).Return("", nil)

	site, err := f.bridge.ResolveSite(f.uri, 1, 12)
	require.NoError(t, err)

	sig, ok := types.SignatureOf(site)
	require.True(t, ok)
	assert.Equal(t, "Money", sig.OwnerType)
	assert.Equal(t, []string{"long"}, sig.ParameterTypes)
	assert.Equal(t, types.DefaultUnresolvedType, sig.ReturnType)
}

func TestResolveSite_FlatSymbols(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return([]types.DocumentSymbol{
		{Name: "OrderService", Kind: protocol.SymbolKindClass, Range: rng(2, 0, 8, 1), SelectionRange: rng(2, 0, 8, 1)},
		{Name: "owner(String, int)", Kind: protocol.SymbolKindMethod, Range: rng(5, 4, 7, 5), SelectionRange: rng(5, 4, 7, 5), ContainerName: "OrderService"},
	}, nil)
	f.client.On("Hover", f.uri, uint32(5), uint32(16)).Return("", nil)
	f.client.On("Hover", f.uri, uint32(6), uint32(30)).
		Return("com.example.User com.example.UserService.findUser(String name, int age)", nil)
	f.client.On("Hover", f.uri, uint32(5), uint32(9)).Return("", nil)

	site, err := f.bridge.ResolveSite(f.uri, 5, 17)
	require.NoError(t, err)
	decl, ok := site.(types.MethodDeclarationSite)
	require.True(t, ok, "got %T", site)
	assert.Equal(t, "OrderService", decl.Signature.OwnerType)
	assert.Equal(t, types.DefaultUnresolvedType, decl.Signature.ReturnType)
	assert.Equal(t, rng(5, 16, 5, 21), decl.Range)

	// "public" on the declaration line is not the name
	site, err = f.bridge.ResolveSite(f.uri, 5, 9)
	require.NoError(t, err)
	assert.IsType(t, types.Unsupported{}, site)

	site, err = f.bridge.ResolveSite(f.uri, 6, 30)
	require.NoError(t, err)
	assert.IsType(t, types.CallSite{}, site)
}

func TestResolveSite_FlatSymbolsCallOnDeclarationLine(t *testing.T) {
	source := "public class Basket {\n    public int size() { return items.size(); }\n}\n"
	f := newFixture(t, source)
	f.client.On("DocumentSymbols", f.uri).Return([]types.DocumentSymbol{
		{Name: "Basket", Kind: protocol.SymbolKindClass, Range: rng(0, 0, 2, 1), SelectionRange: rng(0, 0, 2, 1)},
		{Name: "size()", Kind: protocol.SymbolKindMethod, Range: rng(1, 4, 1, 46), SelectionRange: rng(1, 4, 1, 46), ContainerName: "Basket"},
	}, nil)
	f.client.On("Hover", f.uri, uint32(1), uint32(15)).Return("", nil)
	f.client.On("Hover", f.uri, uint32(1), uint32(38)).
		Return("```java\nint java.util.List<String>.size()\n```", nil)

	site, err := f.bridge.ResolveSite(f.uri, 1, 38)
	require.NoError(t, err)
	call, ok := site.(types.CallSite)
	require.True(t, ok, "got %T", site)
	assert.Equal(t, "List", call.Signature.OwnerType)
	assert.Equal(t, "size", call.Signature.MethodName)
	assert.Equal(t, "int", call.Signature.ReturnType)

	site, err = f.bridge.ResolveSite(f.uri, 1, 17)
	require.NoError(t, err)
	decl, ok := site.(types.MethodDeclarationSite)
	require.True(t, ok, "got %T", site)
	assert.Equal(t, "Basket", decl.Signature.OwnerType)
	assert.Equal(t, "size", decl.Signature.MethodName)
	assert.Equal(t, rng(1, 15, 1, 19), decl.Range)
}

func TestNameRange(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		line   string
		want   protocol.Range
		found  bool
	}{
		{name: "plain", symbol: "owner(String, int)", line: "    public User owner(String name, int age) {", want: rng(0, 16, 0, 21), found: true},
		{name: "space before paren", symbol: "owner(String, int)", line: "  User owner (String name, int age)", want: rng(0, 7, 0, 12), found: true},
		{name: "skips longer identifier", symbol: "get()", line: "  Getter getter() { return get(); }", want: rng(0, 27, 0, 30), found: true},
		{name: "utf16 offsets", symbol: "größe()", line: "  /* é */ int größe() {", want: rng(0, 14, 0, 19), found: true},
		{name: "name on another line", symbol: "owner(String, int)", line: "    public User", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			symbol := types.DocumentSymbol{Name: tt.symbol, Range: rng(0, 0, 0, 10)}
			got, found := nameRange(symbol, tt.line)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveSite_SymbolError(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(nil, errors.New("server busy"))

	_, err := f.bridge.ResolveSite(f.uri, 5, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server busy")
}

func TestResolveSite_OutsideProjectRoot(t *testing.T) {
	f := newFixture(t, orderService)

	outside := filepath.Join(t.TempDir(), "Elsewhere.java")
	require.NoError(t, os.WriteFile(outside, []byte(orderService), 0600))

	_, err := f.bridge.ResolveSite(utils.FilePathToURI(outside), 5, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestGenerateAt_CopiesToClipboard(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(6), uint32(30)).
		Return("com.example.User com.example.UserService.findUser(String name, int age)", nil)

	result, err := f.bridge.GenerateAt(mockgen.FluentReturn, f.uri, 6, 30, true)
	require.NoError(t, err)

	want := "when(userService.findUser(anyString(), anyInt())).thenReturn(new User());"
	assert.Equal(t, want, result.Statement)
	assert.Equal(t, "then_return", result.Kind)
	assert.True(t, result.Copied)
	assert.Equal(t, "Code copied to clipboard", result.Message)
	assert.Equal(t, want, f.clipboard.Last())
}

func TestGenerateAt_WithoutClipboard(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(5), uint32(16)).Return("", nil)

	result, err := f.bridge.GenerateAt(mockgen.NoOp, f.uri, 5, 16, false)
	require.NoError(t, err)
	assert.Equal(t, "doNothing().when(orderService.owner(anyString(), anyInt()));", result.Statement)
	assert.False(t, result.Copied)
	assert.Empty(t, f.clipboard.Last())
}

type failingClipboard struct{}

func (failingClipboard) WriteAll(string) error { return errors.New("no display") }

func TestGenerateAt_ClipboardFailureKeepsStatement(t *testing.T) {
	f := newFixture(t, orderService)
	f.bridge.clipboard = failingClipboard{}
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(5), uint32(16)).Return("", nil)

	result, err := f.bridge.GenerateAt(mockgen.ThrowException, f.uri, 5, 16, true)
	require.NoError(t, err)
	assert.Equal(t, "when(orderService.owner(anyString(), anyInt())).thenThrow(new Exception());", result.Statement)
	assert.False(t, result.Copied)
	assert.Contains(t, result.Message, "no display")
}

func TestGenerateAt_NotSupported(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DocumentSymbols", f.uri).Return(orderServiceSymbols(), nil)
	f.client.On("Hover", f.uri, uint32(4), uint32(0)).Return("", nil)

	_, err := f.bridge.GenerateAt(mockgen.ReturnValue, f.uri, 4, 0, true)
	require.ErrorIs(t, err, ErrNotSupported)
	assert.Empty(t, f.clipboard.Last())
}

func TestEnsureDocumentOpen_ReopensChangedFile(t *testing.T) {
	f := newFixture(t, orderService)
	f.client.On("DidClose", f.uri).Return(nil)

	require.NoError(t, f.bridge.ensureDocumentOpen(f.client, f.uri, "java"))
	require.NoError(t, f.bridge.ensureDocumentOpen(f.client, f.uri, "java"))
	f.client.AssertNumberOfCalls(t, "DidOpen", 1)
	f.client.AssertNotCalled(t, "DidClose", mock.Anything)

	require.NoError(t, os.WriteFile(f.path, []byte(orderService+"// edited\n"), 0600))
	require.NoError(t, f.bridge.ensureDocumentOpen(f.client, f.uri, "java"))

	f.client.AssertNumberOfCalls(t, "DidOpen", 2)
	f.client.AssertCalled(t, "DidClose", f.uri)
	f.client.AssertCalled(t, "DidOpen", f.uri, protocol.LanguageKind("java"), orderService+"// edited\n", int32(2))
}

func TestInferLanguage(t *testing.T) {
	b := NewMockitoBridge(lsp.DefaultLSPConfig(), nil, WithClipboard(clipboard.Discard{}))

	language, err := b.InferLanguage("file:///src/OrderService.java")
	require.NoError(t, err)
	assert.Equal(t, lsp.JavaLanguage, *language)

	_, err = b.InferLanguage("/src/main.go")
	require.Error(t, err)
}

func TestGetClientForLanguage_ConnectsAndCaches(t *testing.T) {
	root := t.TempDir()

	failing := &mocks.MockLanguageClient{}
	failing.On("Connect").Return(nil, errors.New("spawn failed"))

	healthy := &mocks.MockLanguageClient{}
	healthy.On("Connect").Return(healthy, nil)
	healthy.On("SetProjectRoots", []string{root}).Return()
	healthy.On("Initialize", mock.Anything).Return(&protocol.InitializeResult{}, nil)
	healthy.On("SetServerCapabilities", mock.Anything).Return()
	healthy.On("Initialized").Return(nil)
	healthy.On("Context").Return(context.Background())
	healthy.On("IsConnected").Return(true)

	built := 0
	var commands []string
	factory := func(command string, args []string) (types.LanguageClientInterface, error) {
		built++
		commands = append(commands, command)
		if built == 1 {
			return failing, nil
		}
		return healthy, nil
	}

	b := NewMockitoBridge(lsp.DefaultLSPConfig(), []string{root},
		WithClientFactory(factory),
		WithConnectionConfig(ConnectionAttemptConfig{MaxRetries: 3, RetryDelay: time.Millisecond, TotalTimeout: time.Second}),
	)

	client, err := b.GetClientForLanguage("java")
	require.NoError(t, err)
	assert.Same(t, healthy, client)
	assert.Equal(t, []string{"jdtls", "jdtls"}, commands)

	again, err := b.GetClientForLanguage("java")
	require.NoError(t, err)
	assert.Same(t, healthy, again)
	assert.Equal(t, 2, built)

	var params protocol.InitializeParams
	for _, call := range healthy.Calls {
		if call.Method == "Initialize" {
			params = call.Arguments.Get(0).(protocol.InitializeParams)
		}
	}
	require.NotNil(t, params.WorkspaceFolders)
	assert.Equal(t, filepath.Base(root), (*params.WorkspaceFolders)[0].Name)
}

func TestGetClientForLanguage_GivesUp(t *testing.T) {
	failing := &mocks.MockLanguageClient{}
	failing.On("Connect").Return(nil, errors.New("spawn failed"))

	b := NewMockitoBridge(lsp.DefaultLSPConfig(), []string{t.TempDir()},
		WithClientFactory(func(string, []string) (types.LanguageClientInterface, error) { return failing, nil }),
		WithConnectionConfig(ConnectionAttemptConfig{MaxRetries: 2, RetryDelay: time.Millisecond, TotalTimeout: time.Second}),
	)

	_, err := b.GetClientForLanguage("java")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
	failing.AssertNumberOfCalls(t, "Connect", 2)
}

func TestGetClientForLanguage_UnknownLanguage(t *testing.T) {
	b := NewMockitoBridge(lsp.DefaultLSPConfig(), nil)

	_, err := b.GetClientForLanguage("cobol")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no server found")
}

func TestGetClientForLanguage_ReplacesDisconnectedClient(t *testing.T) {
	root := t.TempDir()

	stale := &mocks.MockLanguageClient{}
	stale.On("Context").Return(context.Background())
	stale.On("IsConnected").Return(false)
	stale.On("Close").Return(nil)

	fresh := &mocks.MockLanguageClient{}
	fresh.On("Connect").Return(fresh, nil)
	fresh.On("SetProjectRoots", mock.Anything).Return()
	fresh.On("Initialize", mock.Anything).Return(&protocol.InitializeResult{}, nil)
	fresh.On("SetServerCapabilities", mock.Anything).Return()
	fresh.On("Initialized").Return(nil)

	b := NewMockitoBridge(lsp.DefaultLSPConfig(), []string{root},
		WithClientFactory(func(string, []string) (types.LanguageClientInterface, error) { return fresh, nil }),
	)
	b.clients[lsp.JavaServer] = stale
	b.openDocuments["file:///x.java"] = openDocument{content: "x", version: 1}

	client, err := b.GetClientForLanguage("java")
	require.NoError(t, err)
	assert.Same(t, fresh, client)
	stale.AssertCalled(t, "Close")
	assert.Empty(t, b.openDocuments)
}

func TestCloseAllClients(t *testing.T) {
	client := &mocks.MockLanguageClient{}
	client.On("IsConnected").Return(true)
	client.On("Shutdown").Return(nil)
	client.On("Exit").Return(nil)
	client.On("Close").Return(nil)

	b := NewMockitoBridge(lsp.DefaultLSPConfig(), nil)
	b.clients[lsp.JavaServer] = client

	b.CloseAllClients()

	client.AssertExpectations(t)
	assert.Empty(t, b.clients)
}

func TestCloseClient(t *testing.T) {
	client := &mocks.MockLanguageClient{}
	client.On("Close").Return(nil)

	b := NewMockitoBridge(lsp.DefaultLSPConfig(), nil)
	b.clients[lsp.JavaServer] = client

	closed, err := b.CloseClient("java")
	require.NoError(t, err)
	assert.True(t, closed)

	closed, err = b.CloseClient("java")
	require.NoError(t, err)
	assert.False(t, closed)
}

type fixedWorkspace string

func (w fixedWorkspace) GetWorkspaceDirectory(project string) (string, error) {
	return filepath.Join(string(w), project), nil
}

func TestServerArgs_AddsJdtlsWorkspace(t *testing.T) {
	b := NewMockitoBridge(lsp.DefaultLSPConfig(), nil, WithWorkspaceResolver(fixedWorkspace("/data")))

	args := b.serverArgs(&lsp.LanguageServerConfig{Command: "/opt/jdtls/bin/jdtls"}, "/work/billing")
	require.Len(t, args, 2)
	assert.Equal(t, "-data", args[0])
	assert.Equal(t, filepath.Join("/data", workspaceName("/work/billing")), args[1])
	assert.Regexp(t, `^billing-[0-9a-f]{8}$`, filepath.Base(args[1]))

	// Same basename, different project
	other := b.serverArgs(&lsp.LanguageServerConfig{Command: "jdtls"}, "/archive/billing")
	require.Len(t, other, 2)
	assert.NotEqual(t, args[1], other[1])
	assert.Equal(t, workspaceName("/work/billing"), workspaceName("/work/billing/"))

	configured := &lsp.LanguageServerConfig{Command: "jdtls", Args: []string{"-data", "/custom"}}
	assert.Equal(t, []string{"-data", "/custom"}, b.serverArgs(configured, "/work/billing"))

	unrelated := &lsp.LanguageServerConfig{Command: "java-language-server"}
	assert.Empty(t, b.serverArgs(unrelated, "/work/billing"))
}

func TestConnectionConfigFromGlobal(t *testing.T) {
	c := connectionConfigFrom(types.GlobalConfig{MaxRestartAttempts: 5, RestartDelayMs: 100})
	assert.Equal(t, 5, c.MaxRetries)
	assert.Equal(t, 100*time.Millisecond, c.RetryDelay)

	assert.Equal(t, DefaultConnectionConfig(), connectionConfigFrom(types.GlobalConfig{}))
}
