package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// Context supplies a root-relative view of the filesystem for environment
// probes. Logical paths such as /proc/vz are resolved against the root, so
// tests (and `prompt --root`) can point the whole probe chain into a
// scratch directory.
type Context struct {
	root string
}

// New returns a Context rooted at root. An empty root means the real
// filesystem root.
func New(root string) *Context {
	if root == "" {
		root = "/"
	}
	return &Context{root: root}
}

// Root returns the directory all logical paths resolve under.
func (c *Context) Root() string { return c.root }

// Resolve maps a logical absolute path into the context's root.
func (c *Context) Resolve(logical string) string {
	return filepath.Join(c.root, strings.TrimPrefix(logical, "/"))
}

// Exists reports whether the logical path exists in the context.
func (c *Context) Exists(logical string) bool {
	_, err := os.Stat(c.Resolve(logical))
	return err == nil
}

// ReadText reads the logical path as text. It reports false on any I/O
// failure; callers never see a partial read.
func (c *Context) ReadText(logical string) (string, bool) {
	b, err := os.ReadFile(c.Resolve(logical))
	if err != nil {
		return "", false
	}
	return string(b), true
}
