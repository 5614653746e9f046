// Package provider implements the AI provider gateway: a uniform
// instruction+text → text capability over multiple backends, with
// availability-based fallback through a configured preference order.
package provider

import (
	"context"
	"fmt"

	"github.com/aguiarsc/numen/internal"
	"github.com/aguiarsc/numen/internal/apperr"
)

// systemPrompt frames every generation request the same way the CLI intents
// expect: plain transformed text, no meta commentary.
const systemPrompt = "You are a helpful writing assistant that helps expand, summarize, or transform text."

// Provider is a single AI backend able to transform a prompt into text.
type Provider interface {
	// Name returns the configuration name of the backend.
	Name() string
	// Available reports whether the backend's runtime prerequisites are
	// met (credential present, local runtime reachable).
	Available(ctx context.Context) bool
	// Generate sends the prompt and returns the produced text.
	Generate(ctx context.Context, prompt string) (string, error)
}

// Gateway selects and invokes providers. Selection: an explicit name wins;
// otherwise the configured default, then the fallback order, skipping
// backends whose prerequisites are unavailable.
type Gateway struct {
	providers map[string]Provider
	defName   string
	order     []string
}

// NewGateway builds a gateway with the concrete providers described by cfg.
func NewGateway(cfg internal.AIConfig) *Gateway {
	g := &Gateway{
		providers: make(map[string]Provider, 4),
		defName:   cfg.DefaultProvider,
		order:     cfg.FallbackOrder,
	}
	for _, p := range []Provider{
		newOpenAI(cfg.OpenAI, cfg.Temperature),
		newAnthropic(cfg.Anthropic, cfg.Temperature),
		newGemini(cfg.Gemini, cfg.Temperature),
		newOllama(cfg.Ollama, cfg.Temperature),
	} {
		g.providers[p.Name()] = p
	}
	return g
}

// NewGatewayWith builds a gateway from explicit providers; used by tests to
// substitute deterministic fakes.
func NewGatewayWith(defName string, order []string, providers ...Provider) *Gateway {
	g := &Gateway{
		providers: make(map[string]Provider, len(providers)),
		defName:   defName,
		order:     order,
	}
	for _, p := range providers {
		g.providers[p.Name()] = p
	}
	return g
}

// Invoke sends the prompt to the selected backend and returns the output
// text along with the name of the provider that actually serviced the call.
// Upstream errors are normalized to apperr.ErrProviderFailure; exhausting
// the preference order yields apperr.ErrProviderUnavailable. The gateway
// never retries a failed call.
func (g *Gateway) Invoke(ctx context.Context, selector, prompt string) (string, string, error) {
	p, err := g.pick(ctx, selector)
	if err != nil {
		return "", "", err
	}
	out, err := p.Generate(ctx, prompt)
	if err != nil {
		return "", p.Name(), fmt.Errorf("provider %s: %w: %v", p.Name(), apperr.ErrProviderFailure, err)
	}
	return out, p.Name(), nil
}

// pick resolves which provider services the request.
func (g *Gateway) pick(ctx context.Context, selector string) (Provider, error) {
	if selector != "" {
		p, ok := g.providers[selector]
		if !ok {
			return nil, fmt.Errorf("provider %q not configured: %w", selector, apperr.ErrProviderUnavailable)
		}
		if !p.Available(ctx) {
			return nil, fmt.Errorf("provider %q unavailable: %w", selector, apperr.ErrProviderUnavailable)
		}
		return p, nil
	}

	tried := make(map[string]struct{})
	for _, name := range append([]string{g.defName}, g.order...) {
		if _, dup := tried[name]; dup {
			continue
		}
		tried[name] = struct{}{}
		p, ok := g.providers[name]
		if !ok {
			continue
		}
		if p.Available(ctx) {
			return p, nil
		}
	}
	return nil, apperr.ErrProviderUnavailable
}
