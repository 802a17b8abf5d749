// Package assemble merges captured page frames into a single PDF.
package assemble

import (
	"errors"
	"fmt"
	"image/png"
	"os"
	"sort"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoFrames is returned when no structurally valid frame exists.
var ErrNoFrames = errors.New("no valid frames to assemble")

// IsValidFrame reports whether path is a structurally valid frame: it
// exists, is larger than minBytes, and carries a decodable PNG header.
// Zero-byte and truncated captures fail this check.
func IsValidFrame(path string, minBytes int64) bool {
	info, err := os.Stat(path)
	if err != nil || info.Size() <= minBytes {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, err = png.DecodeConfig(f)
	return err == nil
}

// FrameDimensions returns the pixel width and height of a frame.
func FrameDimensions(path string) (w, h int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s: %w", path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// Filter returns the structurally valid frames from paths, sorted by
// filename. Frame filenames encode the page index, so filename order is
// page order.
func Filter(paths []string, minBytes int64) []string {
	var valid []string
	for _, p := range paths {
		if IsValidFrame(p, minBytes) {
			valid = append(valid, p)
		}
	}
	sort.Strings(valid)
	return valid
}

// Document builds outPath as a PDF with one page per valid frame, in
// page order. Each PDF page is sized to its frame's pixel dimensions in
// points, with no margins and no scaling, so pages never letterbox or
// stretch. Returns the number of pages written.
func Document(frames []string, outPath string, minBytes int64) (int, error) {
	valid := Filter(frames, minBytes)
	if len(valid) == 0 {
		return 0, ErrNoFrames
	}
	// ImportImagesFile appends to an existing PDF. Assembly always
	// rebuilds the document from the frame set, so a leftover output
	// from an earlier stopped run must go first.
	if err := os.Remove(outPath); err != nil && !os.IsNotExist(err) {
		return 0, fmt.Errorf("replace %s: %w", outPath, err)
	}
	// The default import description anchors each image full-size on a
	// page matching its dimensions.
	conf := model.NewDefaultConfiguration()
	if err := api.ImportImagesFile(valid, outPath, nil, conf); err != nil {
		return 0, fmt.Errorf("pdf import: %w", err)
	}
	return len(valid), nil
}
