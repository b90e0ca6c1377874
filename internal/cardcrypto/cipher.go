// Package cardcrypto protects card numbers at rest. Numbers are stored only as
// authenticated ciphertext tokens; a keyed deterministic index allows equality
// lookup without decrypting, and Mask produces the outward display form.
package cardcrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	apperrors "bankcards/internal/errors"
)

// Cipher encrypts and decrypts card numbers with AES-256-GCM. Each Encrypt call
// draws a fresh random nonce, so the same plaintext never yields the same
// token twice. The token layout is base64(nonce || ciphertext || tag).
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a Cipher from a 32-byte key.
func NewCipher(key []byte) (*Cipher, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return &Cipher{aead: aead}, nil
}

// Encrypt returns the ciphertext token for plaintext.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt recovers the plaintext from a ciphertext token. Malformed base64,
// truncated input, and tag verification failure all report ErrDecryption; the
// caller never sees corrupted plaintext.
func (c *Cipher) Decrypt(token string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return "", apperrors.ErrDecryption
	}
	nonceSize := c.aead.NonceSize()
	if len(raw) < nonceSize+c.aead.Overhead() {
		return "", apperrors.ErrDecryption
	}
	plaintext, err := c.aead.Open(nil, raw[:nonceSize], raw[nonceSize:], nil)
	if err != nil {
		return "", apperrors.ErrDecryption
	}
	return string(plaintext), nil
}
