// Package keys generates signing key material for issued tokens.
package keys

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/custodia-labs/mplemon/internal/core/domain"
	"github.com/custodia-labs/mplemon/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.KeyGenerator = (*RSAGenerator)(nil)

// DefaultBits is the RSA modulus size.
const DefaultBits = 2048

// RSAGenerator creates RSA key pairs encoded the way Java's KeyFactory
// expects them: X.509 for the public key, PKCS#8 for the private key.
type RSAGenerator struct {
	bits   int
	random io.Reader
}

// NewRSAGenerator creates a generator for keys of the given size.
// Sizes below DefaultBits use DefaultBits.
func NewRSAGenerator(bits int) *RSAGenerator {
	if bits < DefaultBits {
		bits = DefaultBits
	}
	return &RSAGenerator{bits: bits, random: rand.Reader}
}

// Generate returns a fresh key pair, base64 encoded.
func (g *RSAGenerator) Generate() (domain.KeyPair, error) {
	key, err := rsa.GenerateKey(g.random, g.bits)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("generate rsa key: %w", err)
	}

	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("encode public key: %w", err)
	}
	priv, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return domain.KeyPair{}, fmt.Errorf("encode private key: %w", err)
	}

	return domain.KeyPair{
		Public:  base64.StdEncoding.EncodeToString(pub),
		Private: base64.StdEncoding.EncodeToString(priv),
	}, nil
}
