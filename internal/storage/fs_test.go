package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempVault(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempVault(t)
	content := []byte("# Hello\nWorld\n")
	if err := s.Write("note.md", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("note.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempVault(t)
	if err := s.Write("a/b/c.md", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("a/b/c.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("del.md", []byte("bye"))
	if err := s.Delete("del.md"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.md"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestMove(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("src.md", []byte("payload"))
	if err := s.Move("src.md", "dst/moved.md"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := s.Read("src.md"); err == nil {
		t.Error("source still readable after move")
	}
	got, err := s.Read("dst/moved.md")
	if err != nil {
		t.Fatalf("Read moved: %v", err)
	}
	if string(got) != "payload" {
		t.Errorf("content = %q", got)
	}
}

func TestListAllFileTypes(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("note.md", []byte("# note"))
	_ = s.Write("scan.pdf", []byte("%PDF"))
	_ = s.Write("sub/chart.png", []byte{0x89, 0x50})

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("len = %d, want 3 (all regular files listed)", len(metas))
	}
	byPath := make(map[string]bool, len(metas))
	for _, m := range metas {
		byPath[m.Path] = true
		if m.Checksum == "" {
			t.Errorf("%s: empty checksum", m.Path)
		}
		if m.Modified == 0 {
			t.Errorf("%s: zero modified time", m.Path)
		}
	}
	if !byPath["sub/chart.png"] {
		t.Errorf("paths = %v, want slash-separated relative paths", metas)
	}
}

func TestListSkipsHidden(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("visible.md", []byte("x"))
	if err := os.MkdirAll(filepath.Join(s.root, ".obsidian"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.root, ".obsidian", "state.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(s.root, ".hidden.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	metas, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(metas) != 1 || metas[0].Path != "visible.md" {
		t.Errorf("metas = %v, want only visible.md", metas)
	}
}

func TestStat(t *testing.T) {
	s := tempVault(t)
	_ = s.Write("note.md", []byte("x"))
	meta, err := s.Stat("note.md")
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if meta.Path != "note.md" || meta.Modified == 0 {
		t.Errorf("meta = %+v", meta)
	}
}

func TestPathTraversalBlocked(t *testing.T) {
	s := tempVault(t)
	for _, p := range []string{"../escape.md", "a/../../escape.md", "/etc/passwd"} {
		if _, err := s.Read(p); err == nil {
			t.Errorf("Read(%q) succeeded, want traversal error", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("Write(%q) succeeded, want traversal error", p)
		}
	}
}
