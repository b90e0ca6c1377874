package cardcrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Index derives a deterministic blind index over card numbers. Random-nonce
// encryption makes ciphertext unusable as an equality key, so lookups by
// number go through this index instead: the same plaintext always maps to the
// same key, and the key reveals nothing without the index secret.
type Index struct {
	key []byte
}

// NewIndex creates an Index keyed with secret. The secret must be independent
// of the encryption key.
func NewIndex(secret []byte) *Index {
	return &Index{key: secret}
}

// Key returns the hex-encoded index value for plaintext.
func (i *Index) Key(plaintext string) string {
	mac := hmac.New(sha256.New, i.key)
	mac.Write([]byte(plaintext))
	return hex.EncodeToString(mac.Sum(nil))
}
