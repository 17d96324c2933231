package crates

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Download fetches the .crate tarball for a crate version from the static
// CDN and extracts it into a fresh temp directory. It returns the crate
// root (the name-version directory inside the archive) and a cleanup
// function that removes the extraction tree.
func (c *Client) Download(ctx context.Context, crate, version string) (string, func(), error) {
	url := fmt.Sprintf("%s/%s/%s-%s.crate", c.CDNBaseURL, crate, crate, version)
	data, err := c.GetBytes(ctx, url)
	if err != nil {
		return "", nil, fmt.Errorf("download %s %s: %w", crate, version, err)
	}

	root := filepath.Join(os.TempDir(), "packforge-"+uuid.NewString())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(root) }

	if err := extractTarGz(data, root); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("extract %s %s: %w", crate, version, err)
	}

	return filepath.Join(root, fmt.Sprintf("%s-%s", crate, version)), cleanup, nil
}

// extractTarGz unpacks a gzip-compressed tarball under dest. Entries that
// would escape dest are rejected.
func extractTarGz(data []byte, dest string) error {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := securePath(dest, hdr.Name)
		if err != nil {
			return err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return err
			}
			f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode)&0o777)
			if err != nil {
				return err
			}
			if _, err := io.Copy(f, tr); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
		default:
			// Symlinks and specials never appear in published crates.
		}
	}
}

func securePath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.Clean(name))
	if !strings.HasPrefix(target, filepath.Clean(dest)+string(os.PathSeparator)) {
		return "", fmt.Errorf("archive entry escapes destination: %s", name)
	}
	return target, nil
}
