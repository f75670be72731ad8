package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui-state.json")

	if err := AtomicWriteFile(path, []byte(`{"v":1}`), 0o600); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != `{"v":1}` {
		t.Errorf("got %q", data)
	}

	// Overwrite must replace, not append.
	if err := AtomicWriteFile(path, []byte(`{"v":2}`), 0o600); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != `{"v":2}` {
		t.Errorf("got %q after overwrite", data)
	}
}
