package pdf

import (
	"bytes"
	"math"
	"testing"

	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/errors"
	"github.com/matzehuels/planwright/pkg/profile"
)

func sample() *doc.Document {
	p1 := &doc.Page{Kind: "index", Label: "Index"}
	p1.Draw(
		doc.Text{X: 40, Y: 700, Size: 12, Bold: true, Color: profile.Gray(0), Value: "Index – März"},
		doc.Line{X1: 40, Y1: 690, X2: 500, Y2: 690, Width: 0.8, Color: profile.Gray(0.5)},
		doc.Circle{X: 60, Y: 600, R: 1, Fill: true, Color: profile.Gray(0.7)},
		doc.Box{Rect: doc.Rect{X: 40, Y: 500, W: 10, H: 10}, Width: 0.5, Color: profile.Gray(0.3)},
	)
	p1.AddLink(doc.Rect{X: 40, Y: 690, W: 100, H: 16}, 1)
	p2 := &doc.Page{Kind: "daily", Label: "Day"}
	p2.AddLink(doc.Rect{X: 400, Y: 760, W: 30, H: 14}, 0)
	return &doc.Document{Title: "Test", Width: 612, Height: 792, Background: profile.Gray(1), Pages: []*doc.Page{p1, p2}}
}

func TestRender(t *testing.T) {
	out, err := Render(sample(), WithCompression(false))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Fatalf("output does not start with a PDF header: %q", out[:min(len(out), 16)])
	}
	for _, want := range []string{"/Subtype /Link", "/Border [0 0 0]", "/XYZ"} {
		if !bytes.Contains(out, []byte(want)) {
			t.Errorf("output missing %q", want)
		}
	}
	if n := bytes.Count(out, []byte("/Subtype /Link")); n != 2 {
		t.Errorf("link annotations = %d, want 2", n)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a, err := Render(sample())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Render(sample())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same document differ")
	}
}

func TestRenderRejectsBadDocuments(t *testing.T) {
	bad := sample()
	bad.Pages[1].AddLink(doc.Rect{W: 1, H: 1}, 5)

	tests := []struct {
		name string
		d    *doc.Document
	}{
		{"nil", nil},
		{"empty", &doc.Document{Width: 100, Height: 100}},
		{"dangling link", bad},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.d)
			if !errors.Is(err, errors.ErrCodeInternal) {
				t.Fatalf("Write() error = %v, want INTERNAL_ERROR", err)
			}
			if buf.Len() != 0 {
				t.Errorf("Write() wrote %d bytes on failure", buf.Len())
			}
		})
	}
}

func TestMeasurer(t *testing.T) {
	m := NewMeasurer()
	// Helvetica "W" advances 944/1000 em.
	if got := m.TextWidth("W", 10, false); math.Abs(got-9.44) > 1e-6 {
		t.Errorf("TextWidth(W, 10) = %v, want 9.44", got)
	}
	if got := m.TextWidth("", 10, false); got != 0 {
		t.Errorf("TextWidth(\"\") = %v, want 0", got)
	}
	regular := m.TextWidth("Index", 12, false)
	if bold := m.TextWidth("Index", 12, true); bold <= regular {
		t.Errorf("bold width %v should exceed regular %v", bold, regular)
	}
	if double := m.TextWidth("Index", 24, false); math.Abs(double-2*regular) > 1e-6 {
		t.Errorf("width at 24pt = %v, want %v", double, 2*regular)
	}
}
