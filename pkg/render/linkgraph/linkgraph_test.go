package linkgraph

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/planwright/pkg/doc"
)

func sample() *doc.Document {
	month := &doc.Page{Kind: "monthly", Label: "January 2025"}
	day1 := &doc.Page{Kind: "daily", Label: "Wed Jan 1, 2025"}
	day2 := &doc.Page{Kind: "daily", Label: "Thu Jan 2, 2025"}
	month.AddLink(doc.Rect{W: 1, H: 1}, 1)
	month.AddLink(doc.Rect{Y: 2, W: 1, H: 1}, 2)
	day1.AddLink(doc.Rect{W: 1, H: 1}, 0)
	day1.AddLink(doc.Rect{Y: 2, W: 1, H: 1}, 2)
	day1.AddLink(doc.Rect{Y: 4, W: 1, H: 1}, 2)
	day2.AddLink(doc.Rect{W: 1, H: 1}, 2)
	return &doc.Document{Pages: []*doc.Page{month, day1, day2}}
}

func TestToDOT_Basic(t *testing.T) {
	dot := ToDOT(sample(), Options{})

	for _, want := range []string{"digraph G", `"p0"`, `"p0" -> "p1"`, `"p1" -> "p2"`, "fillcolor=lightblue"} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %s", want)
		}
	}
	if strings.Contains(dot, `"p2" -> "p2"`) {
		t.Error("ToDOT() kept a self link")
	}
	if n := strings.Count(dot, `"p1" -> "p2"`); n != 1 {
		t.Errorf("duplicate links produced %d edges, want 1", n)
	}
}

func TestToDOT_Detailed(t *testing.T) {
	dot := ToDOT(sample(), Options{Detailed: true})

	if !strings.Contains(dot, `page 2`) {
		t.Error("ToDOT() detailed output missing page number")
	}
	if !strings.Contains(dot, `"p1" -> "p2" [label="2"]`) {
		t.Error("ToDOT() detailed output missing link count")
	}
}

func TestToDOT_Kinds(t *testing.T) {
	dot := ToDOT(sample(), Options{Kinds: []string{"daily"}})

	if strings.Contains(dot, `"p0"`) {
		t.Error("ToDOT() kept a filtered page")
	}
	if !strings.Contains(dot, `"p1" -> "p2"`) {
		t.Error("ToDOT() dropped a link between kept pages")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}
	if string(normalizeViewBox([]byte("<svg/>"))) != "<svg/>" {
		t.Error("normalizeViewBox() changed an svg without viewBox")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error = %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output is not SVG")
	}
}
