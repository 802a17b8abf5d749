package assemble

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// writePage writes a w x h PNG with a noisy pattern so the file size is
// comfortably above any validity threshold used in these tests.
func writePage(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*x*7 + y*y*11 + x*y*3) % 251)
			img.Set(x, y, color.RGBA{R: v, G: v ^ 0x42, B: v ^ 0x99, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIsValidFrame(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "page_0001.png")
	writePage(t, good, 64, 64)
	if !IsValidFrame(good, 200) {
		t.Error("well-formed frame rejected")
	}
	if IsValidFrame(good, 1<<20) {
		t.Error("undersized frame accepted")
	}

	truncated := filepath.Join(dir, "page_0002.png")
	if err := os.WriteFile(truncated, make([]byte, 500), 0o644); err != nil {
		t.Fatal(err)
	}
	if IsValidFrame(truncated, 200) {
		t.Error("truncated frame accepted")
	}

	if IsValidFrame(filepath.Join(dir, "missing.png"), 200) {
		t.Error("missing frame accepted")
	}
}

func TestFrameDimensions(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "page_0001.png")
	writePage(t, p, 80, 120)

	w, h, err := FrameDimensions(p)
	if err != nil {
		t.Fatal(err)
	}
	if w != 80 || h != 120 {
		t.Errorf("got %dx%d, want 80x120", w, h)
	}
}

func TestFilterDropsInvalidAndSorts(t *testing.T) {
	dir := t.TempDir()

	p2 := filepath.Join(dir, "page_0002.png")
	p1 := filepath.Join(dir, "page_0001.png")
	bad := filepath.Join(dir, "page_0003.png")
	writePage(t, p1, 64, 64)
	writePage(t, p2, 64, 64)
	if err := os.WriteFile(bad, make([]byte, 500), 0o644); err != nil {
		t.Fatal(err)
	}

	valid := Filter([]string{p2, bad, p1}, 200)
	if len(valid) != 2 {
		t.Fatalf("got %d valid, want 2", len(valid))
	}
	if valid[0] != p1 || valid[1] != p2 {
		t.Errorf("order: got %v, want [%s %s]", valid, p1, p2)
	}
}

func TestDocument(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "page_0001.png")
	p2 := filepath.Join(dir, "page_0002.png")
	writePage(t, p1, 80, 120)
	writePage(t, p2, 80, 120)

	out := filepath.Join(dir, "book.pdf")
	n, err := Document([]string{p1, p2}, out, 200)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("pages: got %d, want 2", n)
	}

	count, err := api.PageCountFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("pdf page count: got %d, want 2", count)
	}
}

func TestDocumentReplacesExistingOutput(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "page_0001.png")
	p2 := filepath.Join(dir, "page_0002.png")
	writePage(t, p1, 80, 120)
	writePage(t, p2, 80, 120)
	out := filepath.Join(dir, "book.pdf")

	// A stopped run assembles a partial document; the completed run
	// assembles again to the same path. The second document must hold
	// exactly the frame set, not the earlier pages appended again.
	if _, err := Document([]string{p1}, out, 200); err != nil {
		t.Fatal(err)
	}
	n, err := Document([]string{p1, p2}, out, 200)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Fatalf("pages: got %d, want 2", n)
	}

	count, err := api.PageCountFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("pdf page count after reassembly: got %d, want 2", count)
	}
}

func TestDocumentSkipsInvalidFrames(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "page_0001.png")
	bad := filepath.Join(dir, "page_0002.png")
	writePage(t, p1, 80, 120)
	if err := os.WriteFile(bad, make([]byte, 500), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "book.pdf")
	n, err := Document([]string{p1, bad}, out, 200)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("pages: got %d, want 1", n)
	}
}

func TestDocumentNoFrames(t *testing.T) {
	out := filepath.Join(t.TempDir(), "book.pdf")
	if _, err := Document(nil, out, 200); !errors.Is(err, ErrNoFrames) {
		t.Fatalf("got %v, want ErrNoFrames", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output created despite no frames")
	}
}
