package jsonfile

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"attendeelist/internal/domain"
)

// APIIDList reads and writes the one-identifier-per-line file that bridges
// the tag filter and the guest aggregator.
type APIIDList struct{}

var (
	_ domain.APIIDListReader = APIIDList{}
	_ domain.APIIDListWriter = APIIDList{}
)

// Read returns the trimmed, non-blank lines of path in order.
func (APIIDList) Read(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: file '%s' not found", domain.ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("open api id list: %w", err)
	}
	defer f.Close()

	var ids []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if id := strings.TrimSpace(sc.Text()); id != "" {
			ids = append(ids, id)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read api id list: %w", err)
	}
	return ids, nil
}

// Write stores ids one per line, creating parent directories as needed.
func (APIIDList) Write(path string, ids []string) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create api id list: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, id := range ids {
		if _, err := w.WriteString(id + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("write api id list: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush api id list: %w", err)
	}
	return f.Close()
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	return nil
}
