// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"os"
	"strings"
	"sync"

	"bookly/config"
	domainerrors "bookly/internal/domain/errors"
	"bookly/internal/domain/service"
)

// rsaKeyProvider resolves the PEM key pair from configuration and caches it
// for the process lifetime. The cache fields are write-once: once populated
// they are never invalidated, so keys only rotate with a restart.
type rsaKeyProvider struct {
	cfg *config.Config

	mu      sync.Mutex
	private string
	public  string
}

// NewRSAKeyProvider is the constructor for rsaKeyProvider.
func NewRSAKeyProvider(cfg *config.Config) service.KeyProvider {
	return &rsaKeyProvider{cfg: cfg}
}

// PrivateKey returns the PEM-encoded signing key.
func (p *rsaKeyProvider) PrivateKey() (string, error) {
	return p.resolve(&p.private, p.cfg.JWT.PrivateKey, p.cfg.JWT.PrivateKeyPath)
}

// PublicKey returns the PEM-encoded verification key.
func (p *rsaKeyProvider) PublicKey() (string, error) {
	return p.resolve(&p.public, p.cfg.JWT.PublicKey, p.cfg.JWT.PublicKeyPath)
}

// resolve returns the cached key if present; otherwise the inline config
// value wins over the file path. Error messages stay generic so neither key
// material nor filesystem paths leak to callers.
func (p *rsaKeyProvider) resolve(cache *string, inline, path string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if *cache != "" {
		return *cache, nil
	}

	if key := normalizeKey(inline); key != "" {
		*cache = key

		return key, nil
	}

	if path == "" {
		return "", domainerrors.ErrKeyNotConfigured
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", domainerrors.ErrKeyLoadFailed
	}

	key := normalizeKey(string(content))
	if key == "" {
		return "", domainerrors.ErrKeyLoadFailed
	}

	*cache = key

	return key, nil
}

// normalizeKey trims the content and converts literal \n escape sequences
// into real newlines. Secret stores that inject PEM blocks through
// environment variables usually deliver them escaped on a single line.
func normalizeKey(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return ""
	}

	if strings.Contains(trimmed, "\n") {
		return trimmed
	}

	return strings.ReplaceAll(trimmed, `\n`, "\n")
}
