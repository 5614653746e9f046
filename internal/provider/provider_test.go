package provider

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/aguiarsc/numen/internal/apperr"
)

type fakeProvider struct {
	name      string
	available bool
	output    string
	err       error
	calls     int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Available(_ context.Context) bool { return f.available }

func (f *fakeProvider) Generate(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.output, f.err
}

func TestInvoke_DefaultProvider(t *testing.T) {
	p1 := &fakeProvider{name: "p1", available: true, output: "from p1"}
	p2 := &fakeProvider{name: "p2", available: true, output: "from p2"}
	g := NewGatewayWith("p1", []string{"p1", "p2"}, p1, p2)

	out, by, err := g.Invoke(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if by != "p1" || out != "from p1" {
		t.Errorf("serviced by %s: %q", by, out)
	}
	if p2.calls != 0 {
		t.Errorf("p2 called %d times", p2.calls)
	}
}

func TestInvoke_FallbackSkipsUnavailable(t *testing.T) {
	p1 := &fakeProvider{name: "p1", available: false}
	p2 := &fakeProvider{name: "p2", available: true, output: "from p2"}
	g := NewGatewayWith("p1", []string{"p1", "p2"}, p1, p2)

	out, by, err := g.Invoke(context.Background(), "", "prompt")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if by != "p2" || out != "from p2" {
		t.Errorf("serviced by %s: %q", by, out)
	}
	if p1.calls != 0 {
		t.Errorf("unavailable p1 was called %d times", p1.calls)
	}
}

func TestInvoke_ExplicitSelectorWins(t *testing.T) {
	p1 := &fakeProvider{name: "p1", available: true, output: "from p1"}
	p2 := &fakeProvider{name: "p2", available: true, output: "from p2"}
	g := NewGatewayWith("p1", []string{"p1", "p2"}, p1, p2)

	_, by, err := g.Invoke(context.Background(), "p2", "prompt")
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if by != "p2" {
		t.Errorf("serviced by %s, want p2", by)
	}
}

func TestInvoke_ExplicitSelectorUnavailableNoFallback(t *testing.T) {
	p1 := &fakeProvider{name: "p1", available: true, output: "from p1"}
	p2 := &fakeProvider{name: "p2", available: false}
	g := NewGatewayWith("p1", []string{"p1", "p2"}, p1, p2)

	_, _, err := g.Invoke(context.Background(), "p2", "prompt")
	if !errors.Is(err, apperr.ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
	if p1.calls != 0 {
		t.Errorf("explicit selection fell back to p1")
	}
}

func TestInvoke_UnknownSelector(t *testing.T) {
	g := NewGatewayWith("p1", []string{"p1"}, &fakeProvider{name: "p1", available: true})
	_, _, err := g.Invoke(context.Background(), "nope", "prompt")
	if !errors.Is(err, apperr.ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestInvoke_AllUnavailable(t *testing.T) {
	g := NewGatewayWith("p1", []string{"p1", "p2"},
		&fakeProvider{name: "p1"},
		&fakeProvider{name: "p2"},
	)
	_, _, err := g.Invoke(context.Background(), "", "prompt")
	if !errors.Is(err, apperr.ErrProviderUnavailable) {
		t.Errorf("err = %v, want ErrProviderUnavailable", err)
	}
}

func TestInvoke_FailureNormalizedNoRetry(t *testing.T) {
	p1 := &fakeProvider{name: "p1", available: true, err: fmt.Errorf("upstream 500")}
	p2 := &fakeProvider{name: "p2", available: true, output: "from p2"}
	g := NewGatewayWith("p1", []string{"p1", "p2"}, p1, p2)

	_, by, err := g.Invoke(context.Background(), "", "prompt")
	if !errors.Is(err, apperr.ErrProviderFailure) {
		t.Errorf("err = %v, want ErrProviderFailure", err)
	}
	if by != "p1" {
		t.Errorf("failure attributed to %s", by)
	}
	if p1.calls != 1 {
		t.Errorf("p1 called %d times, want 1 (no retry)", p1.calls)
	}
	if p2.calls != 0 {
		t.Errorf("failed call fell through to p2")
	}
}
