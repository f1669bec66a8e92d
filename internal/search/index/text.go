package index

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/kamusis/postsearch/internal/search"
)

// Encode returns the canonical on-disk encoding of docs.
func Encode(docs []search.Document) ([]byte, error) {
	if docs == nil {
		docs = []search.Document{}
	}
	b, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Fingerprint returns a sha256 hash (hex) of the canonical encoding of docs.
func Fingerprint(docs []search.Document) (string, error) {
	b, err := Encode(docs)
	if err != nil {
		return "", err
	}
	return TextHash(b), nil
}

// TextHash returns a sha256 hash (hex) of b.
func TextHash(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
