// FILE: lixenwraith/rlog/pii.go
package rlog

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// HashFunc maps sensitive text to a hex digest
type HashFunc func(text string) (string, error)

// sha256Hex is the default HashFunc
func sha256Hex(text string) (string, error) {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:]), nil
}

// Redactor replaces sensitive text with a stable opaque token of the form {!hash!}.
// Tokens are memoized in a bounded LRU; a zero TTL keeps entries until evicted by size.
// Expiry is checked on access; the cache starts no goroutine.
type Redactor struct {
	mu    sync.Mutex
	cache *lru.Cache[string, piiEntry]
	hash  HashFunc
	size  int
	ttl   time.Duration
	now   func() time.Time
}

type piiEntry struct {
	token   string
	expires time.Time // Zero when the entry never expires
}

// NewRedactor creates a redactor caching up to size tokens for ttl
func NewRedactor(size int, ttl time.Duration) *Redactor {
	if size <= 0 {
		size = DefaultPIICacheSize
	}
	cache, _ := lru.New[string, piiEntry](size)
	return &Redactor{
		cache: cache,
		hash:  sha256Hex,
		size:  size,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Resize changes the bounds in place. A smaller size evicts the oldest tokens;
// a new ttl drops every cached token.
func (p *Redactor) Resize(size int, ttl time.Duration) {
	if size <= 0 {
		size = DefaultPIICacheSize
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if size != p.size {
		p.cache.Resize(size)
		p.size = size
	}
	if ttl != p.ttl {
		p.cache.Purge()
		p.ttl = ttl
	}
}

func (p *Redactor) expiredLocked(e piiEntry) bool {
	return !e.expires.IsZero() && !p.now().Before(e.expires)
}

// pruneLocked removes expired tokens
func (p *Redactor) pruneLocked() {
	if p.ttl <= 0 {
		return
	}
	for _, k := range p.cache.Keys() {
		if e, ok := p.cache.Peek(k); ok && p.expiredLocked(e) {
			p.cache.Remove(k)
		}
	}
}

// SetHashFunc replaces the digest; nil restores SHA-256
func (p *Redactor) SetHashFunc(h HashFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if h == nil {
		h = sha256Hex
	}
	p.hash = h
	p.cache.Purge()
}

// Replace returns the token for text. A failed hash yields the empty token {!!}
// so the raw text never reaches a log.
func (p *Redactor) Replace(text string) string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if e, ok := p.cache.Get(text); ok {
		if !p.expiredLocked(e) {
			return e.token
		}
		p.cache.Remove(text)
	}
	digest, err := p.hash(text)
	if err != nil || len(digest) < piiHashLength {
		return piiPlaceholder
	}
	token := piiPrefix + digest[:piiHashLength] + piiSuffix
	e := piiEntry{token: token}
	if p.ttl > 0 {
		e.expires = p.now().Add(p.ttl)
	}
	p.cache.Add(text, e)
	return token
}

// List returns a copy of the cached text to token mappings
func (p *Redactor) List() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pruneLocked()
	out := make(map[string]string, p.cache.Len())
	for _, k := range p.cache.Keys() {
		if e, ok := p.cache.Peek(k); ok {
			out[k] = e.token
		}
	}
	return out
}

// Len returns the number of cached tokens
func (p *Redactor) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pruneLocked()
	return p.cache.Len()
}

// Purge drops every cached token
func (p *Redactor) Purge() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.Purge()
}
