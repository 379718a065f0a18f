package dictionary_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/andrewz1/radius/dictionary"
)

func TestOSFileSystemOpenResolvesIncludes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	includePath := filepath.Join(dir, "vendors.dictionary")
	if err := os.WriteFile(includePath, []byte("VENDOR 9 Cisco\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	mainPath := filepath.Join(dir, "main.dictionary")
	if err := os.WriteFile(mainPath, []byte("ATTRIBUTE User-Name 1 string\n$INCLUDE vendors.dictionary\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := os.Open(mainPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	d := dictionary.New()
	if err := dictionary.Parse(d, f, dir, dictionary.OSFileSystem{}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if name, ok := d.VendorName(9); !ok || name != "Cisco" {
		t.Fatalf("VendorName(9) = %q, %v, want Cisco resolved via the real filesystem", name, ok)
	}
}

func TestOSFileSystemOpenMissingFileFails(t *testing.T) {
	t.Parallel()

	var fsys dictionary.OSFileSystem
	if _, err := fsys.Open(filepath.Join(t.TempDir(), "does-not-exist.dictionary")); err == nil {
		t.Fatal("expected an error opening a nonexistent file")
	}
}
