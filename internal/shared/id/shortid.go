// Package id generates URL-safe random identifiers.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
)

const (
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12

	// ObjectNameLength is the length of randomized upload file names.
	ObjectNameLength = 20
)

// Generate returns a cryptographically random Base62 string.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	out := make([]byte, length)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}

func MustGenerate(length int) string {
	s, err := Generate(length)
	if err != nil {
		panic(err)
	}
	return s
}

// RandomFileName replaces the base name of original with a random one and
// keeps its extension, lowercased.
func RandomFileName(original string) (string, error) {
	name, err := Generate(ObjectNameLength)
	if err != nil {
		return "", err
	}
	return name + strings.ToLower(filepath.Ext(original)), nil
}
