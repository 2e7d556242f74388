package types

import (
	"encoding/json"

	"rockerboo/mockito-tools/mockgen"

	"github.com/myleshyson/lsprotocol-go/protocol"
)

// Site is what sits under the caret. Only the variants below implement it.
type Site interface {
	SiteKind() string
	isSite()
}

// MethodDeclarationSite is a caret on the name of a method or constructor declaration
type MethodDeclarationSite struct {
	Signature mockgen.MethodSignature `json:"signature"`
	Range     protocol.Range          `json:"range"`
}

// CallSite is a caret on a method invocation that resolves to a declaration
type CallSite struct {
	Signature mockgen.MethodSignature `json:"signature"`
	Position  protocol.Position       `json:"position"`
}

// Unsupported is any other caret location
type Unsupported struct {
	Reason string `json:"reason"`
}

func (MethodDeclarationSite) SiteKind() string { return "method_declaration" }
func (CallSite) SiteKind() string              { return "call" }
func (Unsupported) SiteKind() string           { return "unsupported" }

func (MethodDeclarationSite) isSite() {}
func (CallSite) isSite()              {}
func (Unsupported) isSite()           {}

// SignatureOf returns the signature carried by a resolved site
func SignatureOf(site Site) (mockgen.MethodSignature, bool) {
	switch s := site.(type) {
	case MethodDeclarationSite:
		return s.Signature, true
	case CallSite:
		return s.Signature, true
	default:
		return mockgen.MethodSignature{}, false
	}
}

// StubResult is a generated statement and where it came from
type StubResult struct {
	Kind      string `json:"kind"`
	Statement string `json:"statement"`
	Site      Site   `json:"-"`
	Copied    bool   `json:"copied"`
	Message   string `json:"message"`
}

func (r StubResult) MarshalJSON() ([]byte, error) {
	type plain StubResult

	out := struct {
		plain
		SiteKind string `json:"site_kind,omitempty"`
		Site     Site   `json:"site,omitempty"`
	}{plain: plain(r)}

	if r.Site != nil {
		out.SiteKind = r.Site.SiteKind()
		out.Site = r.Site
	}

	return json.Marshal(out)
}
