package sections

import (
	"fmt"

	"github.com/matzehuels/planwright/pkg/config"
	"github.com/matzehuels/planwright/pkg/doc"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// Daily appends one log page per planner day.
func Daily(c *Context, b *Book) []pageref.Ref {
	refs := make([]pageref.Ref, 0, len(c.days))
	for i, day := range c.days {
		week := pageref.WeekOf(day)
		label := day.Format("Mon Jan 2, 2006")
		ref := pageref.Daily{
			Base:  base(label, b.Len()),
			Date:  day,
			Day:   pageref.DateKeyOf(day),
			Month: pageref.YearMonthOf(day),
			Week:  week,
		}
		slot := slotOf(i, len(c.days))
		p := c.NewPage(pageref.KindDaily, label, slot, day.Format("Monday"),
			fmt.Sprintf("%s, week %d", day.Format("January 2, 2006"), week.Week))
		c.writingArea(p, c.Content(), c.Config.DailyStyle)
		b.add(p, ref, slot)
		refs = append(refs, ref)
	}
	return refs
}

// Collections appends the free-form collection pages.
func Collections(c *Context, b *Book) []pageref.Ref {
	labels := c.Config.CollectionLabels()
	refs := make([]pageref.Ref, 0, len(labels))
	for i, label := range labels {
		ref := pageref.Collection{Base: base(label, b.Len()), Number: i + 1}
		slot := slotOf(i, len(labels))
		p := c.NewPage(pageref.KindCollection, label, slot, label, fmt.Sprintf("collection %d", i+1))
		c.dotted(p, c.Content(), c.Density.Row())
		b.add(p, ref, slot)
		refs = append(refs, ref)
	}
	return refs
}

func (c *Context) writingArea(p *doc.Page, box doc.Rect, style string) {
	switch style {
	case config.StyleDotted:
		c.dotted(p, box, c.Density.Row())
	case config.StyleBlank:
	default:
		c.ruled(p, box, c.Density.Row())
	}
}
