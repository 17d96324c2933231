package crates

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/packforge/packforge/pkg/cache"
)

func tarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for name, content := range files {
		if err := tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := tw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDownload(t *testing.T) {
	archive := tarGz(t, map[string]string{
		"cli-pack-0.2.1/Cargo.toml":       "[package]\nname = \"cli-pack\"\n",
		"cli-pack-0.2.1/src/lib.rs":       "",
		"cli-pack-0.2.1/templates/x/a.rs": "fn main() {}\n",
	})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cli-pack/cli-pack-0.2.1.crate" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(archive)
	}))
	defer server.Close()

	c := NewClient(cache.NewNullCache(), time.Hour, "packforge-test")
	c.CDNBaseURL = server.URL

	dir, cleanup, err := c.Download(context.Background(), "cli-pack", "0.2.1")
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	defer cleanup()

	data, err := os.ReadFile(filepath.Join(dir, "Cargo.toml"))
	if err != nil {
		t.Fatalf("extracted manifest missing: %v", err)
	}
	if !bytes.Contains(data, []byte("cli-pack")) {
		t.Errorf("manifest content = %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "templates", "x", "a.rs")); err != nil {
		t.Errorf("nested file missing: %v", err)
	}

	cleanup()
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("cleanup() should remove the extraction tree")
	}
}

func TestExtractRejectsTraversal(t *testing.T) {
	archive := tarGz(t, map[string]string{
		"../evil.txt": "nope",
	})

	if err := extractTarGz(archive, t.TempDir()); err == nil {
		t.Error("extractTarGz() should reject paths escaping the destination")
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	if err := extractTarGz([]byte("not a gzip stream"), t.TempDir()); err == nil {
		t.Error("extractTarGz() should fail on non-gzip input")
	}
}
