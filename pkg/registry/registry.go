// Package registry indexes the final page references of a planner by kind
// and semantic key, and resolves navigation items against that index.
//
// A [Registry] is built once per generation from references whose page
// indices are already final (see pageref.Shift) and is read-only afterwards.
package registry

import (
	"sort"

	"github.com/matzehuels/planwright/pkg/layout/nav"
	"github.com/matzehuels/planwright/pkg/pageref"
)

// NoPage marks an absent page index.
const NoPage = -1

// Registry maps semantic keys to physical page indices.
type Registry struct {
	IndexPage         int // first index page, or NoPage
	IndexPages        []int
	KeyPage           *int
	FutureLogPages    []int
	MonthlyCalPages   map[pageref.YearMonth]int
	MonthlyTasksPages map[pageref.YearMonth]int
	WeeklyPages       map[pageref.WeekKey]int
	DailyPages        map[pageref.DateKey]int
	CollectionPages   []int
	PagesByType       map[pageref.Kind][]int
}

// Build indexes refs. References missing the key their kind requires are
// skipped. For months spanning several calendar pages only the first page is
// registered as the month's target; PagesByType still lists every page.
func Build(refs []pageref.Ref) *Registry {
	r := &Registry{
		IndexPage:         NoPage,
		MonthlyCalPages:   make(map[pageref.YearMonth]int),
		MonthlyTasksPages: make(map[pageref.YearMonth]int),
		WeeklyPages:       make(map[pageref.WeekKey]int),
		DailyPages:        make(map[pageref.DateKey]int),
		PagesByType:       make(map[pageref.Kind][]int),
	}

	for _, ref := range refs {
		page := ref.Page()
		switch v := ref.(type) {
		case pageref.Index:
			r.IndexPages = append(r.IndexPages, page)
		case pageref.Key:
			if r.KeyPage == nil {
				r.KeyPage = &page
			}
		case pageref.Future:
			r.FutureLogPages = append(r.FutureLogPages, page)
		case pageref.Monthly:
			if v.Month == "" {
				continue
			}
			firstWins(r.MonthlyCalPages, v.Month, page)
		case pageref.MonthlyTasks:
			if v.Month == "" {
				continue
			}
			firstWins(r.MonthlyTasksPages, v.Month, page)
		case pageref.Weekly:
			if v.Week.IsZero() {
				continue
			}
			firstWins(r.WeeklyPages, v.Week, page)
		case pageref.Daily:
			if v.Day == "" {
				continue
			}
			firstWins(r.DailyPages, v.Day, page)
		case pageref.Collection:
			r.CollectionPages = append(r.CollectionPages, page)
		default:
			continue
		}
		r.PagesByType[ref.Kind()] = append(r.PagesByType[ref.Kind()], page)
	}

	for _, pages := range r.PagesByType {
		sort.Ints(pages)
	}
	sort.Ints(r.IndexPages)
	sort.Ints(r.FutureLogPages)
	sort.Ints(r.CollectionPages)
	if len(r.IndexPages) > 0 {
		r.IndexPage = r.IndexPages[0]
	}
	return r
}

func firstWins[K comparable](m map[K]int, k K, page int) {
	if _, ok := m[k]; !ok {
		m[k] = page
	}
}

// Lookup resolves a semantic target to a page index.
func (r *Registry) Lookup(t pageref.Target) (int, bool) {
	switch t.Kind {
	case pageref.KindIndex:
		return at(r.IndexPages, t.Ordinal)
	case pageref.KindKey:
		if r.KeyPage == nil {
			return 0, false
		}
		return *r.KeyPage, true
	case pageref.KindFuture:
		return at(r.FutureLogPages, t.Ordinal)
	case pageref.KindMonthly:
		p, ok := r.MonthlyCalPages[pageref.YearMonth(t.Key)]
		return p, ok
	case pageref.KindMonthlyTasks:
		p, ok := r.MonthlyTasksPages[pageref.YearMonth(t.Key)]
		return p, ok
	case pageref.KindWeekly:
		var w pageref.WeekKey
		if err := w.UnmarshalText([]byte(t.Key)); err != nil {
			return 0, false
		}
		p, ok := r.WeeklyPages[w]
		return p, ok
	case pageref.KindDaily:
		p, ok := r.DailyPages[pageref.DateKey(t.Key)]
		return p, ok
	case pageref.KindCollection:
		return at(r.CollectionPages, t.Ordinal)
	}
	return 0, false
}

func at(pages []int, i int) (int, bool) {
	if i < 0 || i >= len(pages) {
		return 0, false
	}
	return pages[i], true
}

// Resolve returns the page a navigation item on the current page jumps to.
// Month and week targets use the item's key when set, otherwise the current
// page's own key. Prev and next move within the current page's kind and do
// not wrap around. current may be nil for pages without a reference (the
// cover), in which case only the index and future targets resolve.
func Resolve(item nav.Item, current pageref.Ref, r *Registry) (int, bool) {
	switch item.Target {
	case nav.TargetIndex:
		return r.IndexPage, r.IndexPage != NoPage
	case nav.TargetFuture:
		return at(r.FutureLogPages, 0)
	case nav.TargetMonthly, nav.TargetMonthlyTasks:
		key := pageref.YearMonth(item.Key)
		if key == "" && current != nil {
			key, _ = pageref.MonthOf(current)
		}
		m := r.MonthlyCalPages
		if item.Target == nav.TargetMonthlyTasks {
			m = r.MonthlyTasksPages
		}
		p, ok := m[key]
		return p, ok
	case nav.TargetWeekly:
		if item.Key != "" {
			return r.Lookup(pageref.Target{Kind: pageref.KindWeekly, Key: item.Key})
		}
		if current == nil {
			return 0, false
		}
		w, ok := pageref.WeekOfRef(current)
		if !ok {
			return 0, false
		}
		p, ok := r.WeeklyPages[w]
		return p, ok
	case nav.TargetPrev, nav.TargetNext:
		if current == nil {
			return 0, false
		}
		return r.sibling(current, item.Target == nav.TargetNext)
	}
	return 0, false
}

func (r *Registry) sibling(current pageref.Ref, next bool) (int, bool) {
	pages := r.PagesByType[current.Kind()]
	i := sort.SearchInts(pages, current.Page())
	if i >= len(pages) || pages[i] != current.Page() {
		return 0, false
	}
	if next {
		return at(pages, i+1)
	}
	return at(pages, i-1)
}

// Keys returns every registered semantic key in a stable order, prefixed by
// its kind. Two registries built from equivalent plans have equal keys.
func (r *Registry) Keys() []string {
	var keys []string
	for m := range r.MonthlyCalPages {
		keys = append(keys, "monthly:"+string(m))
	}
	for m := range r.MonthlyTasksPages {
		keys = append(keys, "monthly-tasks:"+string(m))
	}
	for w := range r.WeeklyPages {
		keys = append(keys, "weekly:"+w.String())
	}
	for d := range r.DailyPages {
		keys = append(keys, "daily:"+string(d))
	}
	sort.Strings(keys)
	return keys
}

// Count returns the number of pages registered for kind.
func (r *Registry) Count(kind pageref.Kind) int { return len(r.PagesByType[kind]) }

// Slot reports the sibling position of a reference as seen by navigation.
func (r *Registry) Slot(current pageref.Ref) nav.Slot {
	_, prev := r.sibling(current, false)
	_, next := r.sibling(current, true)
	return nav.Slot{HasPrev: prev, HasNext: next}
}
