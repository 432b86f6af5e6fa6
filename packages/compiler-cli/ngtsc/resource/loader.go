package resource

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// NotFoundError is returned when a resource does not exist
type NotFoundError struct {
	URL  string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource: %s not found at %s", e.URL, e.Path)
}

// Unwrap makes errors.Is(err, fs.ErrNotExist) hold
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// ReadError is returned when a resource exists but cannot be read
type ReadError struct {
	URL string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("resource: read %s: %v", e.URL, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// FileResourceLoader loads resources relative to a root directory. Loaded contents
// are cached by URL, and it is safe for concurrent use.
type FileResourceLoader struct {
	root string

	mu    sync.RWMutex
	cache map[string]string
}

// NewFileResourceLoader creates a loader rooted at root. An empty root means the
// current directory.
func NewFileResourceLoader(root string) *FileResourceLoader {
	return &FileResourceLoader{
		root:  root,
		cache: map[string]string{},
	}
}

// Resolve maps url to a file path. Absolute URLs are used as is.
func (l *FileResourceLoader) Resolve(url string) string {
	url = strings.TrimPrefix(url, "./")
	if filepath.IsAbs(url) {
		return filepath.Clean(url)
	}
	return filepath.Join(l.root, filepath.FromSlash(url))
}

// Load returns the contents of url
func (l *FileResourceLoader) Load(url string) (string, error) {
	l.mu.RLock()
	content, ok := l.cache[url]
	l.mu.RUnlock()
	if ok {
		return content, nil
	}

	path := l.Resolve(url)
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{URL: url, Path: path}
		}
		return "", &ReadError{URL: url, Err: err}
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", &ReadError{URL: url, Err: err}
	}

	l.mu.Lock()
	l.cache[url] = string(data)
	l.mu.Unlock()
	return string(data), nil
}
