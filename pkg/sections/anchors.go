package sections

import (
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// Anchor is a clickable region inside page content with a semantic target.
type Anchor struct {
	Rect   doc.Rect
	Target pageref.Target
}

// Anchors recomputes the content anchors of the page ref points at. It uses
// the same layout functions as the generators, so regions line up with the
// drawn rows without any geometry being stored.
func Anchors(c *Context, ref pageref.Ref) []Anchor {
	switch v := ref.(type) {
	case pageref.Future:
		return futureAnchors(c, v)
	case pageref.Monthly:
		return monthAnchors(c, v)
	case pageref.Weekly:
		return weekAnchors(c, v)
	}
	return nil
}

// Generate runs every enabled content generator in document order: key,
// future log, monthly, weekly, daily, collections.
func Generate(c *Context) *Book {
	b := &Book{}
	if c.Sections.Key {
		Key(c, b)
	}
	if c.Sections.Future {
		FutureLog(c, b)
	}
	if c.Sections.Monthly {
		Monthly(c, b)
	}
	if c.Sections.Weekly {
		Weekly(c, b)
	}
	if c.Sections.Daily {
		Daily(c, b)
	}
	if c.Sections.Collections {
		Collections(c, b)
	}
	return b
}
