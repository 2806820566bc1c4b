// Package filestore implements the physical artifact store: write-once
// binary blobs on a shared disk, addressed through opaque URIs. Every
// write mints a fresh name, so no two operations ever touch the same
// path; blobs are only ever created and deleted, never updated in place.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/platform/logger"
)

// DiskStore stores blobs as files under a base directory and addresses
// them as "<scheme><name>" URIs.
type DiskStore struct {
	basePath  string
	uriScheme string
}

// NewDiskStore creates a DiskStore rooted at basePath, creating the
// directory when needed.
func NewDiskStore(basePath, uriScheme string) (*DiskStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskStore{basePath: basePath, uriScheme: uriScheme}, nil
}

// Write stores the blob under the given name and returns its URI.
// Names are minted fresh per generation, so an existing file under the
// same name indicates a caller bug and is rejected.
func (s *DiskStore) Write(ctx context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.basePath, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create blob %s: %w", name, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write blob %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close blob %s: %w", name, err)
	}

	return s.uriScheme + name, nil
}

// Path resolves a URI produced by this store back to a local file path.
func (s *DiskStore) Path(uri string) (string, error) {
	name, ok := strings.CutPrefix(uri, s.uriScheme)
	if !ok || name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("not a valid blob URI: %q", uri)
	}
	return filepath.Join(s.basePath, name), nil
}

// Delete removes the blob behind the URI. The caller context is the
// authorization of the originally submitting caller; the local disk
// store has no use for it beyond audit logging, but remote
// implementations forward it unchanged.
func (s *DiskStore) Delete(ctx context.Context, uri string, caller domain.CallerContext) error {
	path, err := s.Path(uri)
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Debug("deleting superseded blob",
		"uri", uri,
		"caller_attrs", len(caller))

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", uri, err)
	}
	return nil
}
