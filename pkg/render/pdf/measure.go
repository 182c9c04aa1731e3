package pdf

import (
	"sync"

	"github.com/jung-kurt/gofpdf"
)

// Measurer reports Helvetica advance widths in points. It implements
// doc.Measurer and is safe for concurrent use.
type Measurer struct {
	mu sync.Mutex
	f  *gofpdf.Fpdf
	tr func(string) string
}

// NewMeasurer returns a measurer for the core fonts used by [Write].
func NewMeasurer() *Measurer {
	f := gofpdf.New("P", "pt", "A4", "")
	return &Measurer{f: f, tr: f.UnicodeTranslatorFromDescriptor("")}
}

// TextWidth returns the width of s set at size points.
func (m *Measurer) TextWidth(s string, size float64, bold bool) float64 {
	if s == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.f.SetFont(fontFamily, fontStyle(bold), size)
	return m.f.GetStringWidth(m.tr(s))
}
