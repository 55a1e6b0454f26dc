package views

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrTemplateUnreadable = errors.New("page template unreadable")

const (
	headerFile = "header.html"
	footerFile = "footer.html"
)

type IRenderer interface {
	Render(content string) (string, error)
}

// Renderer wraps page fragments between the static header and footer
// documents. Both files are read on every call so edits show up without a
// restart.
type Renderer struct {
	dir string
}

func NewRenderer(dir string) IRenderer {
	return &Renderer{dir: dir}
}

func (r *Renderer) Render(content string) (string, error) {
	header, err := os.ReadFile(filepath.Join(r.dir, headerFile))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)
	}
	footer, err := os.ReadFile(filepath.Join(r.dir, footerFile))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)
	}

	var b strings.Builder
	b.Grow(len(header) + len(content) + len(footer))
	b.Write(header)
	b.WriteString(content)
	b.Write(footer)
	return b.String(), nil
}
