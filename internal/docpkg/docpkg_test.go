package docpkg_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dverbin/doctran/internal/docpkg"
)

type member struct {
	name   string
	data   []byte
	method uint16
}

func writePackage(t *testing.T, path string, members []member) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	w := zip.NewWriter(f)
	for _, m := range members {
		out, err := w.CreateHeader(&zip.FileHeader{Name: m.name, Method: m.method})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := out.Write(m.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
}

func fixtureMembers() []member {
	return []member{
		{"[Content_Types].xml", []byte("<Types/>"), zip.Deflate},
		{"word/document.xml", []byte("<w:document>body</w:document>"), zip.Deflate},
		{"word/header1.xml", []byte("<w:hdr>header</w:hdr>"), zip.Deflate},
		{"word/footer2.xml", []byte("<w:ftr>footer</w:ftr>"), zip.Deflate},
		{"word/styles.xml", []byte("<w:styles/>"), zip.Deflate},
		{"word/media/image1.png", bytes.Repeat([]byte{0xDE, 0xAD}, 64), zip.Store},
	}
}

func TestExtract_TargetParts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.docx")
	writePackage(t, path, fixtureMembers())

	parts, names, err := docpkg.Extract(path)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if len(names) != 3 {
		t.Fatalf("expected 3 target parts, got %d: %v", len(names), names)
	}
	if names[0] != docpkg.BodyPart {
		t.Errorf("body part must come first, got %v", names)
	}
	if string(parts["word/header1.xml"]) != "<w:hdr>header</w:hdr>" {
		t.Errorf("unexpected header bytes: %q", parts["word/header1.xml"])
	}
	if _, ok := parts["word/styles.xml"]; ok {
		t.Error("styles.xml must not be selected as a target part")
	}
}

func TestExtract_MissingBodyPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.docx")
	writePackage(t, path, []member{
		{"word/header1.xml", []byte("<w:hdr/>"), zip.Deflate},
	})

	_, _, err := docpkg.Extract(path)
	if !errors.Is(err, docpkg.ErrMalformedPackage) {
		t.Errorf("expected ErrMalformedPackage, got %v", err)
	}
}

func TestExtract_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.docx")
	if err := os.WriteFile(path, []byte("not a zip archive"), 0644); err != nil {
		t.Fatal(err)
	}

	_, _, err := docpkg.Extract(path)
	if !errors.Is(err, docpkg.ErrMalformedPackage) {
		t.Errorf("expected ErrMalformedPackage, got %v", err)
	}
}

func TestIsTargetPart(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"word/document.xml", true},
		{"word/header1.xml", true},
		{"word/header12.xml", true},
		{"word/footer1.xml", true},
		{"word/styles.xml", false},
		{"word/headerless.txt", false},
		{"docProps/core.xml", false},
	}
	for _, tt := range tests {
		if got := docpkg.IsTargetPart(tt.name); got != tt.want {
			t.Errorf("IsTargetPart(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestReassemble_PreservesUntouchedMembers(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.docx")
	outPath := filepath.Join(dir, "out.docx")
	members := fixtureMembers()
	writePackage(t, inPath, members)

	mutated := map[string][]byte{
		"word/document.xml": []byte("<w:document>translated</w:document>"),
	}
	if err := docpkg.Reassemble(inPath, outPath, mutated); err != nil {
		t.Fatalf("Reassemble: %v", err)
	}

	r, err := zip.OpenReader(outPath)
	if err != nil {
		t.Fatalf("output is not a valid zip: %v", err)
	}
	defer r.Close()

	if len(r.File) != len(members) {
		t.Fatalf("member count changed: got %d, want %d", len(r.File), len(members))
	}
	for i, f := range r.File {
		if f.Name != members[i].name {
			t.Errorf("member %d: order changed, got %q want %q", i, f.Name, members[i].name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			t.Fatal(err)
		}
		rc.Close()

		want := members[i].data
		if f.Name == docpkg.BodyPart {
			want = mutated[docpkg.BodyPart]
		}
		if !bytes.Equal(buf.Bytes(), want) {
			t.Errorf("member %q: bytes differ", f.Name)
		}
		if f.Method != members[i].method {
			t.Errorf("member %q: compression method changed from %d to %d",
				f.Name, members[i].method, f.Method)
		}
	}
}

func TestReassemble_NoPartialOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.docx")

	err := docpkg.Reassemble(filepath.Join(dir, "missing.docx"), outPath, nil)
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	var pkgErr *docpkg.PackagingError
	if !errors.As(err, &pkgErr) {
		t.Errorf("expected PackagingError, got %T", err)
	}
	if _, statErr := os.Stat(outPath); !os.IsNotExist(statErr) {
		t.Error("partial output file left behind")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		t.Errorf("leftover file in output dir: %s", e.Name())
	}
}
