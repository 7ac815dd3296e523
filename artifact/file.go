// SPDX-License-Identifier: MIT

package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/katalvlaran/fraudgraph/matrix"
)

// Standard artifact file names inside a run's output directory.
const (
	StructuralFile = "structural_matrix.csv"
	AttributeFile  = "attribute_matrix.csv"
	RelevanceFile  = "relevance_matrix.csv"
)

// atomicWrite stages fn's output in a temporary file beside path and renames
// it over path only if fn, the flush and the close all succeed. On failure the
// temporary file is removed and every error is reported.
func atomicWrite(path string, fn func(f *os.File) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("artifact: %w", err)
	}
	defer func() {
		if err != nil {
			err = multierr.Append(err, ignoreMissing(os.Remove(tmp.Name())))
		}
	}()

	err = fn(tmp)
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func ignoreMissing(err error) error {
	if os.IsNotExist(err) {
		return nil
	}

	return err
}

// WriteSquareFile creates path and lets fn stream rows into a SquareWriter.
// The file appears only if fn returns nil and all N rows were written.
func WriteSquareFile(path string, ids []string, fn func(*SquareWriter) error) error {
	return atomicWrite(path, func(f *os.File) error {
		sw := NewSquareWriter(f, ids)
		if err := fn(sw); err != nil {
			return err
		}

		return sw.Close()
	})
}

// ReadSquareFile opens path and delegates to ReadSquare.
func ReadSquareFile(path string) (*Square, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("artifact: %w", err)
	}
	defer f.Close()

	return ReadSquare(f)
}

// WriteMatrixFile writes a fully materialised labeled matrix to path.
func WriteMatrixFile(path string, ids []string, m *matrix.Dense) error {
	return WriteSquareFile(path, ids, func(sw *SquareWriter) error {
		return sw.WriteRows(0, m)
	})
}
