package vfs

import "path"

// AbsPath resolves p against cwd and normalizes the result: the returned path
// is absolute, has no empty segments and no "." or ".." segments. cwd must
// itself be absolute.
func AbsPath(cwd, p string) string {
	if !path.IsAbs(p) {
		p = path.Join(cwd, p)
	}
	cleaned := path.Clean(p)
	if cleaned == "" || cleaned == "." {
		return "/"
	}
	return cleaned
}
