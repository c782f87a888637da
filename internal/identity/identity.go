// Package identity is the identity-provider capability: who is signed in,
// and a stream of sign-in/sign-out transitions. Authentication itself is
// delegated to the provider behind this interface.
package identity

import (
	"sync"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

// Change is one identity transition. Next is nil on sign-out, Previous is
// nil on a first sign-in.
type Change struct {
	Previous *domain.UserProfile
	Next     *domain.UserProfile
}

// Provider exposes the active user and a single change-notification stream.
type Provider interface {
	CurrentUser() *domain.UserProfile
	Changes() <-chan Change
}

// LocalProvider is an in-process Provider driven by SignIn/SignOut calls,
// used by the web surface and tests.
type LocalProvider struct {
	mu      sync.Mutex
	current *domain.UserProfile
	events  chan Change
}

func NewLocalProvider() *LocalProvider {
	return &LocalProvider{events: make(chan Change, 16)}
}

func (p *LocalProvider) CurrentUser() *domain.UserProfile {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	u := *p.current
	return &u
}

func (p *LocalProvider) Changes() <-chan Change {
	return p.events
}

// SignIn makes user the active identity and publishes the transition.
// Signing in over an existing session publishes a direct user-to-user change.
func (p *LocalProvider) SignIn(user domain.UserProfile) {
	p.mu.Lock()
	prev := p.current
	p.current = &user
	p.mu.Unlock()
	p.events <- Change{Previous: prev, Next: &user}
}

// SignOut clears the active identity. A no-op when nobody is signed in.
func (p *LocalProvider) SignOut() {
	p.mu.Lock()
	prev := p.current
	p.current = nil
	p.mu.Unlock()
	if prev == nil {
		return
	}
	p.events <- Change{Previous: prev}
}
