package zwrap_test

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/tortoize/pkg/zwrap"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const content = "16 bins, aver 1, sd 1, binspacing 90\nrama vs random: 0 1\n"

func gz(t *testing.T, s string) []byte {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	zw.Close()
	return buf.Bytes()
}

func zst(t *testing.T, s string) []byte {
	zw, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatal(err)
	}
	defer zw.Close()
	return zw.EncodeAll([]byte(s), nil)
}

func readBack(t *testing.T, name string) string {
	t.Helper()
	fp, err := zwrap.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(fp)
	if err != nil {
		t.Fatal(err)
	}
	if err := fp.Close(); err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	files := map[string][]byte{
		"plain.txt":      []byte(content),
		"gzipped.txt.gz": gz(t, content),
		"zstd.txt.zst":   zst(t, content),
		"short.txt":      []byte("x"),
	}
	for name, b := range files {
		if err := os.WriteFile(filepath.Join(dir, name), b, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	for _, name := range []string{"plain.txt", "gzipped.txt", "gzipped.txt.gz", "zstd.txt"} {
		if got := readBack(t, filepath.Join(dir, name)); got != content {
			t.Errorf("%s got %q", name, got)
		}
		if !zwrap.Exists(filepath.Join(dir, name)) {
			t.Error("Exists says no to", name)
		}
	}
	if got := readBack(t, filepath.Join(dir, "short.txt")); got != "x" {
		t.Error("one byte file got", got)
	}
	_, err := zwrap.Open(filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("wanted not exist, got", err)
	}
	if zwrap.Exists(filepath.Join(dir, "missing.txt")) {
		t.Error("Exists says yes to missing file")
	}
}
