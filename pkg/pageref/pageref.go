// Package pageref defines page references: typed records that say which
// logical page of the planner lives at which physical page index.
//
// [Ref] is a sealed variant with one concrete type per page kind. Each type
// carries only the keys that make sense for it (a [Daily] has a date and a
// week, a [Collection] has a number). Generators create references with the
// page index they had at creation time; [Shift] remaps them once when index
// pages are inserted, producing new values rather than mutating shared state.
//
// The package also owns every key function used for lookups (see keys.go),
// in particular the Sunday-first week convention of [WeekOf].
package pageref

import "time"

// Kind names a page type.
type Kind string

const (
	KindKey          Kind = "key"
	KindFuture       Kind = "future"
	KindMonthly      Kind = "monthly"
	KindMonthlyTasks Kind = "monthly-tasks"
	KindWeekly       Kind = "weekly"
	KindDaily        Kind = "daily"
	KindCollection   Kind = "collection"
	KindIndex        Kind = "index"
)

// Kinds lists every page kind in document section order.
var Kinds = []Kind{
	KindIndex, KindKey, KindFuture, KindMonthly, KindMonthlyTasks,
	KindWeekly, KindDaily, KindCollection,
}

// Ref is a reference to one physical page.
type Ref interface {
	Kind() Kind
	Label() string
	Page() int

	// moved returns a copy of the reference with its page index offset by delta.
	moved(delta int) Ref
}

// Base holds the fields common to every reference.
type Base struct {
	Name  string // display label
	Index int    // physical page index
}

// Label returns the display label.
func (b Base) Label() string { return b.Name }

// Page returns the physical page index.
func (b Base) Page() int { return b.Index }

// Key references the bullet legend page.
type Key struct{ Base }

// Future references one page of the future log.
type Future struct {
	Base
	Part   int         // zero-based page within the future log
	Months []YearMonth // months drawn on this page
}

// Monthly references a monthly calendar page. A month whose day rows do not
// fit one page spans several calendar pages; Part numbers them.
type Monthly struct {
	Base
	Month YearMonth
	Part  int
	Parts int
}

// MonthlyTasks references the task list of a month. When Combined is true
// it shares the physical page of the month's first calendar page.
type MonthlyTasks struct {
	Base
	Month    YearMonth
	Combined bool
}

// Weekly references a weekly review page.
type Weekly struct {
	Base
	Start time.Time // Sunday the week starts on
	Week  WeekKey
	Month YearMonth // month of the first planner day inside the week
}

// Daily references a daily log page.
type Daily struct {
	Base
	Date  time.Time
	Day   DateKey
	Month YearMonth
	Week  WeekKey
}

// Collection references a free-form collection page.
type Collection struct {
	Base
	Number int // one-based
}

// Index references one page of the index.
type Index struct {
	Base
	Part int
}

func (Key) Kind() Kind          { return KindKey }
func (Future) Kind() Kind       { return KindFuture }
func (Monthly) Kind() Kind      { return KindMonthly }
func (MonthlyTasks) Kind() Kind { return KindMonthlyTasks }
func (Weekly) Kind() Kind       { return KindWeekly }
func (Daily) Kind() Kind        { return KindDaily }
func (Collection) Kind() Kind   { return KindCollection }
func (Index) Kind() Kind        { return KindIndex }

func (r Key) moved(d int) Ref          { r.Index += d; return r }
func (r Future) moved(d int) Ref       { r.Index += d; return r }
func (r Monthly) moved(d int) Ref      { r.Index += d; return r }
func (r MonthlyTasks) moved(d int) Ref { r.Index += d; return r }
func (r Weekly) moved(d int) Ref       { r.Index += d; return r }
func (r Daily) moved(d int) Ref        { r.Index += d; return r }
func (r Collection) moved(d int) Ref   { r.Index += d; return r }
func (r Index) moved(d int) Ref        { r.Index += d; return r }

// Shift returns a new slice in which every reference's page index is offset
// by delta. The input is not modified.
func Shift(refs []Ref, delta int) []Ref {
	out := make([]Ref, len(refs))
	for i, r := range refs {
		out[i] = r.moved(delta)
	}
	return out
}

// MonthOf returns the month key a reference belongs to, if it has one.
func MonthOf(r Ref) (YearMonth, bool) {
	switch v := r.(type) {
	case Monthly:
		return v.Month, v.Month != ""
	case MonthlyTasks:
		return v.Month, v.Month != ""
	case Weekly:
		return v.Month, v.Month != ""
	case Daily:
		return v.Month, v.Month != ""
	}
	return "", false
}

// WeekOfRef returns the week key a reference belongs to, if it has one.
func WeekOfRef(r Ref) (WeekKey, bool) {
	switch v := r.(type) {
	case Weekly:
		return v.Week, !v.Week.IsZero()
	case Daily:
		return v.Week, !v.Week.IsZero()
	}
	return WeekKey{}, false
}

// Target names a page semantically, before physical indices are known.
// Section layouts attach targets to drawn regions; the registry resolves
// them in the link pass.
type Target struct {
	Kind    Kind
	Key     string // date key, month key or week key, depending on Kind
	Ordinal int    // position for list-valued kinds (future log, collections)
}

// DailyTarget targets the daily page of t.
func DailyTarget(t time.Time) Target {
	return Target{Kind: KindDaily, Key: string(DateKeyOf(t))}
}

// MonthlyTarget targets the canonical calendar page of m.
func MonthlyTarget(m YearMonth) Target {
	return Target{Kind: KindMonthly, Key: string(m)}
}

// WeeklyTarget targets the weekly page of w.
func WeeklyTarget(w WeekKey) Target {
	return Target{Kind: KindWeekly, Key: w.String()}
}
