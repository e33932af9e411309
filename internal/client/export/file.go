package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/textdesk/internal/filex"
)

type FileSaver struct {
	dir string
}

// NewFileSaver resolves dir; it is created by the first Save.
func NewFileSaver(dir string) (*FileSaver, error) {
	abs, err := filex.AbsDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileSaver{dir: abs}, nil
}

func (s *FileSaver) Save(_ context.Context, name string, data []byte) (string, error) {
	if _, err := filex.EnsureDir(s.dir); err != nil {
		return "", err
	}
	p := filepath.Join(s.dir, filepath.Base(name))
	if err := os.WriteFile(p, data, 0o660); err != nil {
		return "", fmt.Errorf("write %s: %w", p, err)
	}
	return p, nil
}
