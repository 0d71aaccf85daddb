package service

// KeyProvider supplies the PEM-encoded RSA key pair used for signing and
// verifying tokens. Implementations load key material once and serve it
// from an immutable cache for the rest of the process lifetime; keys do
// not rotate without a restart.
type KeyProvider interface {
	// PrivateKey returns the PEM-encoded signing key.
	PrivateKey() (string, error)

	// PublicKey returns the PEM-encoded verification key.
	PublicKey() (string, error)
}
