package gate_test

import (
	"context"
	"testing"

	"github.com/moduquote/moduquote/gate"
)

// mockPolicy is a simple policy for testing with uint user type.
type mockPolicy struct {
	allowAll bool
}

func (p *mockPolicy) Can(_ context.Context, _ uint, _ gate.Action, _ any) bool {
	return p.allowAll
}

func TestGateAuthorizeNoUser(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("quote", &mockPolicy{allowAll: true})

	if err := g.Authorize(context.Background(), 0, gate.ActionView, "quote", nil); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGateAuthorizeNoPolicy(t *testing.T) {
	g := gate.NewGate[uint]()

	if err := g.Authorize(context.Background(), 1, gate.ActionView, "unknown", nil); err != gate.ErrNoPolicyDefined {
		t.Errorf("expected ErrNoPolicyDefined, got %v", err)
	}
}

func TestGateAuthorizeAllowedAndDenied(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("quote", &mockPolicy{allowAll: true})
	g.Register("product", &mockPolicy{allowAll: false})

	if err := g.Authorize(context.Background(), 1, gate.ActionUpdate, "quote", nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if err := g.Authorize(context.Background(), 1, gate.ActionDelete, "product", nil); err != gate.ErrUnauthorized {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestGateCan(t *testing.T) {
	g := gate.NewGate[uint]()
	g.Register("quote", &mockPolicy{allowAll: true})

	if !g.Can(context.Background(), 1, gate.ActionCreate, "quote", nil) {
		t.Error("expected Can to return true")
	}
	if g.Can(context.Background(), 1, gate.ActionCreate, "missing", nil) {
		t.Error("expected Can to return false for unregistered policy")
	}
}
