package vfs

import (
	"os"
	"sort"

	"github.com/spf13/afero"
)

// MemFS is an in-memory FS implementation backed by afero's MemMapFs. It is
// the default filesystem for embedded shells and for tests.
type MemFS struct {
	fs afero.Fs
}

var _ FS = (*MemFS)(nil)

// NewMemFS returns an empty in-memory filesystem containing only the root
// directory.
func NewMemFS() *MemFS {
	return &MemFS{fs: afero.NewMemMapFs()}
}

// NewMemFSWith returns an in-memory filesystem pre-populated with the given
// directories.
func NewMemFSWith(dirs ...string) *MemFS {
	m := NewMemFS()
	for _, d := range dirs {
		m.fs.MkdirAll(d, 0o755)
	}
	return m
}

func (m *MemFS) ReadFile(path string) (string, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return "", m.wrap("open", path, err)
	}
	if info.IsDir() {
		return "", &Error{Op: "open", Path: path, Code: EISDIR}
	}
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		return "", m.wrap("read", path, err)
	}
	return string(data), nil
}

func (m *MemFS) WriteFile(path, data string) error {
	if info, err := m.fs.Stat(path); err == nil && info.IsDir() {
		return &Error{Op: "write", Path: path, Code: EISDIR}
	}
	if err := afero.WriteFile(m.fs, path, []byte(data), 0o644); err != nil {
		return m.wrap("write", path, err)
	}
	return nil
}

func (m *MemFS) AppendFile(path, data string) error {
	if info, err := m.fs.Stat(path); err == nil && info.IsDir() {
		return &Error{Op: "append", Path: path, Code: EISDIR}
	}
	f, err := m.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return m.wrap("append", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(data); err != nil {
		return m.wrap("append", path, err)
	}
	return nil
}

func (m *MemFS) ReadDir(path string) ([]FileInfo, error) {
	infos, err := afero.ReadDir(m.fs, path)
	if err != nil {
		return nil, m.wrap("readdir", path, err)
	}
	entries := make([]FileInfo, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, fileInfo(info))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func (m *MemFS) Mkdir(path string, recursive bool) error {
	if recursive {
		if err := m.fs.MkdirAll(path, 0o755); err != nil {
			return m.wrap("mkdir", path, err)
		}
		return nil
	}
	if _, err := m.fs.Stat(path); err == nil {
		return &Error{Op: "mkdir", Path: path, Code: EEXIST}
	}
	if err := m.fs.Mkdir(path, 0o755); err != nil {
		return m.wrap("mkdir", path, err)
	}
	return nil
}

func (m *MemFS) Rmdir(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		return m.wrap("rmdir", path, err)
	}
	if !info.IsDir() {
		return &Error{Op: "rmdir", Path: path, Code: ENOENT}
	}
	entries, err := afero.ReadDir(m.fs, path)
	if err != nil {
		return m.wrap("rmdir", path, err)
	}
	if len(entries) > 0 {
		return &Error{Op: "rmdir", Path: path, Code: ENOTEMPTY}
	}
	if err := m.fs.RemoveAll(path); err != nil {
		return m.wrap("rmdir", path, err)
	}
	return nil
}

func (m *MemFS) Stat(path string) (FileInfo, error) {
	info, err := m.fs.Stat(path)
	if err != nil {
		return FileInfo{}, m.wrap("stat", path, err)
	}
	return fileInfo(info), nil
}

func (m *MemFS) Access(path string) error {
	if _, err := m.fs.Stat(path); err != nil {
		return m.wrap("access", path, err)
	}
	return nil
}

func (m *MemFS) Unlink(path string) error {
	info, err := m.fs.Stat(path)
	if err != nil {
		return m.wrap("unlink", path, err)
	}
	if info.IsDir() {
		return &Error{Op: "unlink", Path: path, Code: EISDIR}
	}
	if err := m.fs.Remove(path); err != nil {
		return m.wrap("unlink", path, err)
	}
	return nil
}

func (m *MemFS) Rename(oldPath, newPath string) error {
	if err := m.fs.Rename(oldPath, newPath); err != nil {
		return m.wrap("rename", oldPath, err)
	}
	return nil
}

func (m *MemFS) CopyFile(srcPath, dstPath string) error {
	data, err := m.ReadFile(srcPath)
	if err != nil {
		return err
	}
	return m.WriteFile(dstPath, data)
}

func (m *MemFS) Realpath(path string) (string, error) {
	cleaned := AbsPath("/", path)
	if err := m.Access(cleaned); err != nil {
		return "", err
	}
	return cleaned, nil
}

func fileInfo(info os.FileInfo) FileInfo {
	return FileInfo{
		Name:        info.Name(),
		IsFile:      !info.IsDir(),
		IsDirectory: info.IsDir(),
		Size:        info.Size(),
		Mtime:       info.ModTime(),
	}
}

// wrap translates an afero or os error into an *Error with a code.
func (m *MemFS) wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	code := EACCES
	switch {
	case os.IsNotExist(err):
		code = ENOENT
	case os.IsExist(err):
		code = EEXIST
	case os.IsPermission(err):
		code = EACCES
	}
	return &Error{Op: op, Path: path, Code: code}
}
