// Package docpkg reads and writes the zip container of an OOXML
// word-processing document. Extraction pulls out the markup parts that
// carry translatable text; reassembly writes a new container in which
// every other archive member passes through bit-for-bit.
package docpkg

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// BodyPart is the primary document part. Every well-formed package has it.
const BodyPart = "word/document.xml"

// ErrMalformedPackage reports an input that cannot be opened as a document
// package or lacks the primary body part.
var ErrMalformedPackage = errors.New("malformed document package")

// PackagingError reports a failure while writing the output package. No
// partial output file is left behind when it is returned.
type PackagingError struct {
	Path  string
	Cause error
}

func (e *PackagingError) Error() string {
	return fmt.Sprintf("packaging %s: %v", e.Path, e.Cause)
}

func (e *PackagingError) Unwrap() error { return e.Cause }

// IsTargetPart reports whether an archive member carries translatable
// markup: the body part plus any header/footer part. Headers and footers
// are matched by naming convention because their set varies per document
// (header1.xml, header2.xml, footer1.xml, …).
func IsTargetPart(name string) bool {
	if name == BodyPart {
		return true
	}
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/header") || strings.HasPrefix(name, "word/footer")
}

// Extract opens the package at path and returns the bytes of every target
// part, keyed by archive member name, plus the member names in archive
// order with the body part first. The package itself is not modified.
func Extract(path string) (map[string][]byte, []string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedPackage, err)
	}
	defer r.Close()

	parts := make(map[string][]byte)
	var names []string
	for _, f := range r.File {
		if !IsTargetPart(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: open %s: %v", ErrMalformedPackage, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: read %s: %v", ErrMalformedPackage, f.Name, err)
		}
		parts[f.Name] = data
		if f.Name == BodyPart {
			names = append([]string{f.Name}, names...)
		} else {
			names = append(names, f.Name)
		}
	}

	if _, ok := parts[BodyPart]; !ok {
		return nil, nil, fmt.Errorf("%w: missing %s", ErrMalformedPackage, BodyPart)
	}
	return parts, names, nil
}

// Reassemble writes a new package at outputPath from the original at
// originalPath, replacing the members named in mutated with their new
// bytes. Unchanged members are copied raw, preserving order, compression
// method, and compressed bytes. The output is written to a temporary file
// and renamed into place, so a failure never leaves a partial package.
func Reassemble(originalPath, outputPath string, mutated map[string][]byte) error {
	r, err := zip.OpenReader(originalPath)
	if err != nil {
		return &PackagingError{Path: originalPath, Cause: err}
	}
	defer r.Close()

	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PackagingError{Path: outputPath, Cause: err}
	}
	tmp, err := os.CreateTemp(dir, ".doctran-*")
	if err != nil {
		return &PackagingError{Path: outputPath, Cause: err}
	}
	tmpPath := tmp.Name()
	fail := func(cause error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return &PackagingError{Path: outputPath, Cause: cause}
	}

	w := zip.NewWriter(tmp)
	for _, f := range r.File {
		data, changed := mutated[f.Name]
		if !changed {
			if err := w.Copy(f); err != nil {
				return fail(fmt.Errorf("copy %s: %w", f.Name, err))
			}
			continue
		}
		hdr := &zip.FileHeader{
			Name:     f.Name,
			Method:   f.Method,
			Modified: f.Modified,
		}
		out, err := w.CreateHeader(hdr)
		if err != nil {
			return fail(fmt.Errorf("create %s: %w", f.Name, err))
		}
		if _, err := out.Write(data); err != nil {
			return fail(fmt.Errorf("write %s: %w", f.Name, err))
		}
	}

	if err := w.Close(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &PackagingError{Path: outputPath, Cause: err}
	}
	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return &PackagingError{Path: outputPath, Cause: err}
	}
	return nil
}
