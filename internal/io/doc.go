// Package ioutils provides the file record source and file system helpers.
//
// This package contains functions for:
//   - Importing a result set from a JSON file (API envelope or bare array)
//   - Atomic, durable file replacement
//   - Filename sanitization
//   - Directory creation
//
// # Importing
//
//	results, err := ioutils.ReadResultSet("search_results.json")
//
// # Writing
//
//	err := ioutils.WriteFileAtomic(path, func(w io.Writer) error {
//	    _, err := w.Write(data)
//	    return err
//	})
package ioutils
