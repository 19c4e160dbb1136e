package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
)

// ErrCorrupt is returned when an archive cannot be read.
var ErrCorrupt = errors.New("corrupt archive")

// IsArchive reports whether the file name denotes a zip container.
func IsArchive(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".zip")
}

// Expand extracts the zip archive at path into a fresh temporary directory and
// calls fn with the path of the first regular file inside. The directory is
// removed before Expand returns, whatever fn returns.
//
// Failures to read the container are reported wrapped in ErrCorrupt. Errors
// returned by fn are passed through unchanged.
func Expand(path string, fn func(extracted string) error) (err error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
	}
	defer r.Close()

	dir, err := os.MkdirTemp("", "tablet-ingest-*")
	if err != nil {
		return fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() {
		if rmErr := os.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("removing temp dir: %w", rmErr)
		}
	}()

	var extracted string
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		target := filepath.Join(dir, filepath.Base(f.Name))
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorrupt, path, err)
		}
		extracted = target
		break
	}
	if extracted == "" {
		return fmt.Errorf("%w: %s: no file inside", ErrCorrupt, path)
	}

	return fn(extracted)
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
