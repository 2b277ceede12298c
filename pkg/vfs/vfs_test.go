package vfs

import "testing"

func TestMemFSReadWrite(t *testing.T) {
	m := NewMemFSWith("/home/user")
	if err := m.WriteFile("/home/user/f.txt", "a\n"); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, err := m.ReadFile("/home/user/f.txt")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "a\n" {
		t.Errorf("ReadFile = %q, want %q", got, "a\n")
	}
	if err := m.AppendFile("/home/user/f.txt", "b\n"); err != nil {
		t.Fatalf("AppendFile: %v", err)
	}
	got, _ = m.ReadFile("/home/user/f.txt")
	if got != "a\nb\n" {
		t.Errorf("after append = %q, want %q", got, "a\nb\n")
	}
}

func TestMemFSErrors(t *testing.T) {
	m := NewMemFSWith("/d")
	if _, err := m.ReadFile("/missing"); ErrorCode(err) != ENOENT {
		t.Errorf("ReadFile missing: got %v, want ENOENT", err)
	}
	if _, err := m.ReadFile("/d"); ErrorCode(err) != EISDIR {
		t.Errorf("ReadFile dir: got %v, want EISDIR", err)
	}
	if err := m.Mkdir("/d", false); ErrorCode(err) != EEXIST {
		t.Errorf("Mkdir existing: got %v, want EEXIST", err)
	}
	m.WriteFile("/d/f", "x")
	if err := m.Rmdir("/d"); ErrorCode(err) != ENOTEMPTY {
		t.Errorf("Rmdir non-empty: got %v, want ENOTEMPTY", err)
	}
	if err := m.Unlink("/d"); ErrorCode(err) != EISDIR {
		t.Errorf("Unlink dir: got %v, want EISDIR", err)
	}
	if err := m.Unlink("/d/f"); err != nil {
		t.Errorf("Unlink file: %v", err)
	}
	if err := m.Rmdir("/d"); err != nil {
		t.Errorf("Rmdir empty: %v", err)
	}
}

func TestMemFSReadDir(t *testing.T) {
	m := NewMemFSWith("/d")
	m.WriteFile("/d/b", "1")
	m.WriteFile("/d/a", "2")
	m.Mkdir("/d/c", false)
	entries, err := m.ReadDir("/d")
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"a", "b", "c"}
	if len(names) != len(want) {
		t.Fatalf("ReadDir names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ReadDir names = %v, want %v", names, want)
			break
		}
	}
	if !entries[2].IsDirectory {
		t.Errorf("entry c should be a directory")
	}
}

func TestAbsPath(t *testing.T) {
	tests := []struct {
		cwd, p, want string
	}{
		{"/home/user", "f.txt", "/home/user/f.txt"},
		{"/home/user", "/etc", "/etc"},
		{"/home/user", "..", "/home"},
		{"/home/user", "../..", "/"},
		{"/home/user", "../../..", "/"},
		{"/", "a//b/./c", "/a/b/c"},
	}
	for _, test := range tests {
		if got := AbsPath(test.cwd, test.p); got != test.want {
			t.Errorf("AbsPath(%q, %q) = %q, want %q", test.cwd, test.p, got, test.want)
		}
	}
}
