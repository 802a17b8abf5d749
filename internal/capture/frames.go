package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pagecap/pagecap/internal/assemble"
)

const (
	framePrefix = "page_"
	frameExt    = ".png"
)

// FrameName returns the filename for a 1-based page index, zero-padded
// so lexical order equals page order.
func FrameName(page int) string {
	return fmt.Sprintf("%s%04d%s", framePrefix, page, frameExt)
}

// ParseFrameIndex extracts the page index from a frame filename.
func ParseFrameIndex(name string) (int, bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, framePrefix) || !strings.HasSuffix(base, frameExt) {
		return 0, false
	}
	digits := strings.TrimSuffix(strings.TrimPrefix(base, framePrefix), frameExt)
	n, err := strconv.Atoi(digits)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Store manages the working directory of per-page frame files. The set
// of frame files on disk is the single source of truth for how far a
// capture has progressed; there is no separate counter.
type Store struct {
	dir      string
	minBytes int64
}

// NewStore creates a frame store rooted at dir.
func NewStore(dir string, minBytes int64) *Store {
	return &Store{dir: dir, minBytes: minBytes}
}

// Dir returns the working directory.
func (s *Store) Dir() string { return s.dir }

// Ensure creates the working directory if needed.
func (s *Store) Ensure() error {
	return os.MkdirAll(s.dir, 0o755)
}

// FramePath returns the full path for a page's frame file.
func (s *Store) FramePath(page int) string {
	return filepath.Join(s.dir, FrameName(page))
}

// HasFrame reports whether a frame file exists for page, valid or not.
func (s *Store) HasFrame(page int) bool {
	_, err := os.Stat(s.FramePath(page))
	return err == nil
}

// HasValidFrame reports whether page is backed by a structurally valid
// frame. An invalid (truncated) frame does not count and will be
// recaptured.
func (s *Store) HasValidFrame(page int) bool {
	return assemble.IsValidFrame(s.FramePath(page), s.minBytes)
}

// Scan partitions the store's frame files into structurally valid and
// invalid sets, each sorted by page order.
func (s *Store) Scan() (valid, invalid []string, err error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, framePrefix+"*"+frameExt))
	if err != nil {
		return nil, nil, err
	}
	for _, m := range matches {
		if _, ok := ParseFrameIndex(m); !ok {
			continue
		}
		if assemble.IsValidFrame(m, s.minBytes) {
			valid = append(valid, m)
		} else {
			invalid = append(invalid, m)
		}
	}
	sort.Strings(valid)
	sort.Strings(invalid)
	return valid, invalid, nil
}

// ValidFrames returns the valid frame files in page order.
func (s *Store) ValidFrames() ([]string, error) {
	valid, _, err := s.Scan()
	return valid, err
}

// ResumePage returns the highest page index backed by a valid frame, or
// 0 when none exist. A resumed run continues from one past this page.
func (s *Store) ResumePage() (int, error) {
	valid, _, err := s.Scan()
	if err != nil {
		return 0, err
	}
	highest := 0
	for _, v := range valid {
		if n, ok := ParseFrameIndex(v); ok && n > highest {
			highest = n
		}
	}
	return highest, nil
}

// RemoveAll deletes the working directory and every frame in it.
func (s *Store) RemoveAll() error {
	return os.RemoveAll(s.dir)
}
