// Package query implements the free-text filter language used to narrow
// down vault records: name terms, #tag, .property, @date, folder:, ext:,
// and has:task clauses with optional AND/OR connectors.
package query

// FilterKind identifies the type of a parsed clause.
type FilterKind int

// Clause kinds.
const (
	KindName FilterKind = iota
	KindTag
	KindProperty
	KindDate
	KindFolder
	KindExtension
	KindTask
)

// DateField selects which timestamp a date clause compares against.
type DateField int

// Date targets.
const (
	FieldModified DateField = iota
	FieldCreated
)

// RelKeyword is a relative date keyword, resolved against "now" each time
// the predicate is evaluated.
type RelKeyword int

// Relative date keywords.
const (
	RelNone RelKeyword = iota
	RelToday
	RelYesterday
	RelLast7d
	RelLast30d
	RelThisWeek
	RelThisMonth
)

// Filter is one atomic query clause. Which fields are meaningful depends
// on Kind:
//
//   - KindName: Text is the substring to match against the display name.
//   - KindTag: Text is the case-folded tag path; "" means "has any tag".
//   - KindProperty: Key is the case-folded property key; Value/HasValue
//     carry the optional equality test.
//   - KindDate: Field plus either Rel or the resolved [Start, End]
//     millisecond range (inclusive both ends).
//   - KindFolder: Text is the folder needle; Anchored requires exact
//     path equality instead of substring containment.
//   - KindExtension: Text is the extension without the dot, case-folded.
//   - KindTask: no payload.
//
// Negated inverts the clause result and is never nested.
type Filter struct {
	Kind     FilterKind
	Negated  bool
	Text     string
	Key      string
	Value    string
	HasValue bool
	Field    DateField
	Rel      RelKeyword
	Start    int64
	End      int64
	Anchored bool
}

// Predicate is the parsed form of a whole query: an OR across groups,
// an implicit AND within each group. The grammar has no parentheses, so
// this flat two-level shape is fully general.
type Predicate struct {
	Groups [][]Filter
}

// IsEmpty reports whether the predicate has no clauses at all. An empty
// predicate matches every record.
func (p *Predicate) IsEmpty() bool {
	for _, g := range p.Groups {
		if len(g) > 0 {
			return false
		}
	}
	return true
}
