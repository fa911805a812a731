// Package digest fingerprints the located binary so it can be matched
// against a published release.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	"github.com/zeebo/blake3"
)

// FileOpener abstracts file operations for testability.
type FileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// RealFileOpener implements FileOpener using the real filesystem.
type RealFileOpener struct{}

// Open opens the named file for reading.
func (r *RealFileOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Algorithm names a supported hash.
type Algorithm string

const (
	AlgorithmSHA256 Algorithm = "sha256"
	AlgorithmSHA512 Algorithm = "sha512"
	AlgorithmBLAKE3 Algorithm = "blake3"
)

// Algorithms lists the accepted names in the order shown to users.
var Algorithms = []Algorithm{AlgorithmSHA256, AlgorithmSHA512, AlgorithmBLAKE3}

// ParseAlgorithm validates a user supplied algorithm name.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Algorithms {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("unsupported hash algorithm %q (use sha256, sha512 or blake3)", s)
}

// NewHasher returns a fresh hash for a. Unknown values use SHA-256.
func (a Algorithm) NewHasher() hash.Hash {
	switch a {
	case AlgorithmSHA512:
		return sha512.New()
	case AlgorithmBLAKE3:
		return blake3.New()
	default:
		return sha256.New()
	}
}

// File returns the hex digest of the named file.
func File(opener FileOpener, name string, a Algorithm) (string, error) {
	if opener == nil {
		opener = &RealFileOpener{}
	}

	f, err := opener.Open(name)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer func() { _ = f.Close() }()

	return Reader(f, a)
}

// Reader returns the hex digest of everything read from r.
func Reader(r io.Reader, a Algorithm) (string, error) {
	h := a.NewHasher()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
