package checksum

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lukechampine.com/blake3"
)

// Algorithm is a named hash with the conventional manifest file name for it.
type Algorithm struct {
	Name     string
	Manifest string
	New      func() hash.Hash
}

var (
	SHA256 = Algorithm{Name: "sha256", Manifest: "SHA256SUMS", New: sha256.New}
	SHA512 = Algorithm{Name: "sha512", Manifest: "SHA512SUMS", New: sha512.New}
	BLAKE3 = Algorithm{Name: "blake3", Manifest: "B3SUMS", New: func() hash.Hash { return blake3.New(32, nil) }}
)

// Lookup finds an algorithm by name, case-insensitively.
func Lookup(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SHA256.Name:
		return SHA256, nil
	case SHA512.Name:
		return SHA512, nil
	case BLAKE3.Name:
		return BLAKE3, nil
	}
	return Algorithm{}, fmt.Errorf("unsupported hash algorithm %q", name)
}

// File returns the lowercase hex digest of the file at path.
func File(path string, algo Algorithm) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := algo.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SHA256File hashes path with SHA-256, the digest Homebrew formulas carry.
func SHA256File(path string) (string, error) {
	return File(path, SHA256)
}

// WriteManifest writes a "<digest>  <basename>" line per file, in the given
// order, to dir/<algo.Manifest> and returns the manifest path.
func WriteManifest(dir string, files []string, algo Algorithm) (string, error) {
	outPath := filepath.Join(dir, algo.Manifest)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outPath, err)
	}
	defer out.Close()

	for _, path := range files {
		sum, err := File(path, algo)
		if err != nil {
			return "", err
		}
		if _, err := fmt.Fprintf(out, "%s  %s\n", sum, filepath.Base(path)); err != nil {
			return "", fmt.Errorf("write checksum: %w", err)
		}
	}
	if err := out.Sync(); err != nil {
		return "", fmt.Errorf("sync %s: %w", outPath, err)
	}
	return outPath, nil
}
