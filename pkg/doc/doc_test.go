package doc

import "testing"

func TestRect(t *testing.T) {
	r := Rect{X: 10, Y: 20, W: 100, H: 50}

	if r.Top() != 70 || r.Right() != 110 {
		t.Errorf("Top, Right = %v, %v, want 70, 110", r.Top(), r.Right())
	}

	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 20, true},
		{110, 70, true},
		{60, 45, true},
		{9.9, 45, false},
		{60, 70.1, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	if got := r.Inset(5); got != (Rect{X: 15, Y: 25, W: 90, H: 40}) {
		t.Errorf("Inset(5) = %+v", got)
	}

	left, right := r.SplitX(0.25)
	if left != (Rect{X: 10, Y: 20, W: 25, H: 50}) || right != (Rect{X: 35, Y: 20, W: 75, H: 50}) {
		t.Errorf("SplitX(0.25) = %+v, %+v", left, right)
	}
}

func TestDocumentCounts(t *testing.T) {
	a, b := &Page{}, &Page{}
	a.AddLink(Rect{W: 1, H: 1}, 1)
	a.AddLink(Rect{W: 1, H: 1}, 1)
	b.AddLink(Rect{W: 1, H: 1}, 0)
	b.Draw(Line{}, Text{Value: "x"})

	d := &Document{Pages: []*Page{a, b}}
	if d.PageCount() != 2 || d.LinkCount() != 3 {
		t.Errorf("PageCount, LinkCount = %d, %d, want 2, 3", d.PageCount(), d.LinkCount())
	}
	if len(b.Ops) != 2 {
		t.Errorf("len(Ops) = %d, want 2", len(b.Ops))
	}
}
