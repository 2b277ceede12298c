package histstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// MustGetTempStore returns a Store backed by a temporary file, and a cleanup
// function that should be called when the Store is no longer used.
func MustGetTempStore() (Store, func()) {
	dir, err := os.MkdirTemp("", "vanilla-shell.test")
	if err != nil {
		panic(fmt.Sprintf("failed to create temp dir: %v", err))
	}
	st, err := NewStore(filepath.Join(dir, "history.db"))
	if err != nil {
		panic(fmt.Sprintf("failed to create store instance: %v", err))
	}
	return st, func() {
		st.Close()
		os.RemoveAll(dir)
	}
}
