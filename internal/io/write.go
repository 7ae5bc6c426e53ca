//go:build !windows

package ioutils

import (
	"fmt"
	"io"

	"github.com/google/renameio/v2"
)

// WriteFileAtomic writes a file through write and atomically replaces path.
//
// The content goes to a temporary file in the same directory, which is
// fsynced and renamed over path only if write succeeds. An existing file is
// replaced without confirmation; on failure it is left untouched.
//
// Example:
//
//	err := WriteFileAtomic("search_results.json", func(w io.Writer) error {
//	    return json.NewEncoder(w).Encode(results)
//	})
func WriteFileAtomic(path string, write func(w io.Writer) error) (err error) {
	pending, err := renameio.NewPendingFile(path, renameio.WithPermissions(0644))
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		// No-op after a successful replace.
		if cerr := pending.Cleanup(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := write(pending); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
