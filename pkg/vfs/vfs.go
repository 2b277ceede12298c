// Package vfs defines the sandboxed filesystem capability consumed by the
// shell. The evaluator only touches it for redirections; command handlers get
// the full surface.
package vfs

import (
	"fmt"
	"time"
)

// Error codes reported by filesystem operations.
const (
	ENOENT    = "ENOENT"
	EISDIR    = "EISDIR"
	EACCES    = "EACCES"
	EEXIST    = "EEXIST"
	ENOTEMPTY = "ENOTEMPTY"
)

// Error is a filesystem error with a POSIX-style code.
type Error struct {
	Op   string
	Path string
	Code string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, strerror(e.Code))
}

// Reason returns the human-readable message alone, for "<program>:
// <subject>: <reason>" style diagnostics.
func (e *Error) Reason() string { return strerror(e.Code) }

func strerror(code string) string {
	switch code {
	case ENOENT:
		return "No such file or directory"
	case EISDIR:
		return "Is a directory"
	case EACCES:
		return "Permission denied"
	case EEXIST:
		return "File exists"
	case ENOTEMPTY:
		return "Directory not empty"
	}
	return code
}

// Strerror returns the human-readable message for a filesystem error code,
// e.g. "No such file or directory" for ENOENT.
func Strerror(code string) string { return strerror(code) }

// ErrorCode extracts the code of a filesystem error, or "" if err is not a
// filesystem error.
func ErrorCode(err error) string {
	if fe, ok := err.(*Error); ok {
		return fe.Code
	}
	return ""
}

// FileInfo describes a file, in the shape command handlers consume.
type FileInfo struct {
	Name        string
	IsFile      bool
	IsDirectory bool
	Size        int64
	Mtime       time.Time
}

// FS is the filesystem capability. All paths are absolute, slash-separated.
type FS interface {
	ReadFile(path string) (string, error)
	WriteFile(path, data string) error
	AppendFile(path, data string) error
	ReadDir(path string) ([]FileInfo, error)
	Mkdir(path string, recursive bool) error
	Rmdir(path string) error
	Stat(path string) (FileInfo, error)
	Access(path string) error
	Unlink(path string) error
	Rename(oldPath, newPath string) error
	CopyFile(srcPath, dstPath string) error
	Realpath(path string) (string, error)
}
