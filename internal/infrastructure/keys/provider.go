// Package keys supplies signing key material to the integrity layer.
// Keys are looked up on every signing operation, so a provider backed by
// a rotating source takes effect without restarting the service.
package keys

import "sync"

// StaticProvider serves a fixed secret loaded at startup. Rotate swaps
// the secret for subsequent signatures; previously signed records keep
// verifying only as long as the old secret is restored, which is why
// rotation must be paired with re-signing in operational runbooks.
type StaticProvider struct {
	mu     sync.RWMutex
	secret []byte
}

// NewStaticProvider creates a provider serving the given secret.
func NewStaticProvider(secret string) *StaticProvider {
	return &StaticProvider{secret: []byte(secret)}
}

// CurrentSecret returns the active signing secret.
func (p *StaticProvider) CurrentSecret() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.secret
}

// Rotate replaces the active signing secret.
func (p *StaticProvider) Rotate(secret string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.secret = []byte(secret)
}
