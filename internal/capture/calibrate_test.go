package capture

import (
	"context"
	"errors"
	"testing"
	"time"
)

type pointerInput struct {
	px, py int
}

func (p *pointerInput) Click(x, y int) error        { return nil }
func (p *pointerInput) PointerPosition() (int, int) { return p.px, p.py }

func TestCalibrateOnMark(t *testing.T) {
	finder := &fakeFinder{}
	finder.win.Title = "Bookshelf"
	finder.win.Bounds = [4]int{100, 50, 1200, 800}

	cal := &Calibrator{
		Finder:   finder,
		Inputter: &pointerInput{px: 950, py: 650},
	}

	mark := make(chan struct{}, 1)
	mark <- struct{}{}

	off, err := cal.Calibrate(context.Background(), []string{"Bookshelf"}, mark)
	if err != nil {
		t.Fatal(err)
	}
	if off.DX != 850 || off.DY != 600 {
		t.Errorf("got %+v, want {850 600}", off)
	}
}

func TestCalibrateWindowMissing(t *testing.T) {
	finder := &fakeFinder{missing: true}
	cal := &Calibrator{Finder: finder, Inputter: &pointerInput{px: 10, py: 10}}

	mark := make(chan struct{}, 1)
	mark <- struct{}{}

	if _, err := cal.Calibrate(context.Background(), []string{"Bookshelf"}, mark); !errors.Is(err, ErrWindowNotFound) {
		t.Fatalf("got %v, want ErrWindowNotFound", err)
	}
}

func TestCalibrateContextCancel(t *testing.T) {
	cal := &Calibrator{Finder: &fakeFinder{}, Inputter: &pointerInput{}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	mark := make(chan struct{}) // never fires
	if _, err := cal.Calibrate(ctx, []string{"Bookshelf"}, mark); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("got %v, want context.DeadlineExceeded", err)
	}
}
