package filex

import (
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
)

// AbsDir resolves relative names against the working directory.
func AbsDir(dir string) (string, error) {
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return filepath.Join(cwd, dir), nil
}

// EnsureDir creates dir if needed and returns its absolute path.
func EnsureDir(dir string) (string, error) {
	dir, err := AbsDir(dir)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// ReadFile loads path and guesses its MIME type, first from the extension,
// then from the content.
func ReadFile(path string) (name, mimeType string, data []byte, err error) {
	data, err = os.ReadFile(path)
	if err != nil {
		return "", "", nil, fmt.Errorf("read %s: %w", path, err)
	}
	return filepath.Base(path), DetectMIME(path, data), data, nil
}

func DetectMIME(name string, data []byte) string {
	if t := mime.TypeByExtension(filepath.Ext(name)); t != "" {
		if mt, _, err := mime.ParseMediaType(t); err == nil {
			return mt
		}
	}
	mt, _, _ := mime.ParseMediaType(http.DetectContentType(data))
	return mt
}
