// Package artifact provides read-only access to pre-fitted model artifacts.
// It defines the Store interface and a local-directory implementation with
// optional sha256 manifest verification. Artifacts are fitted offline and
// shipped with the deployment; the server only ever reads them.
package artifact

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrChecksumMismatch = errors.New("model artifact checksum mismatch")
)

// Store is the contract for artifact backends. A key is a logical artifact
// name such as "ckd.json".
type Store interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// DirStore serves artifacts from a local directory. When a manifest is set,
// every read is verified against its recorded sha256 before the content is
// handed out, so a corrupted artifact fails loudly instead of producing
// silently wrong predictions.
type DirStore struct {
	root     string
	manifest map[string]string // key -> hex sha256
}

func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

// LoadManifest reads a sha256sum-style manifest file: one "<hex>  <key>"
// entry per line, comments starting with '#'.
func (s *DirStore) LoadManifest(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	manifest := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("malformed manifest line: %q", line)
		}
		if _, err := hex.DecodeString(fields[0]); err != nil || len(fields[0]) != 64 {
			return fmt.Errorf("manifest entry for %q is not a sha256 digest", fields[1])
		}
		manifest[fields[1]] = fields[0]
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	s.manifest = manifest
	return nil
}

func (s *DirStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	// Keys are plain file names; reject anything that escapes the root.
	if key != filepath.Base(key) {
		return nil, fmt.Errorf("%w: invalid key %q", ErrArtifactNotFound, key)
	}

	data, err := os.ReadFile(filepath.Join(s.root, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, key)
		}
		return nil, fmt.Errorf("read artifact %s: %w", key, err)
	}

	if want, ok := s.manifest[key]; ok {
		sum := sha256.Sum256(data)
		if hex.EncodeToString(sum[:]) != want {
			return nil, fmt.Errorf("%w: %s", ErrChecksumMismatch, key)
		}
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}
