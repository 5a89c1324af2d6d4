package query

import (
	"strings"
	"time"

	"github.com/starford/raido/internal/models"
)

// Evaluator applies predicates to vault records. It is pure: no state is
// mutated, so one Evaluator may be shared across goroutines.
type Evaluator struct {
	// Now is the time source used to resolve relative date keywords
	// (mockable for testing).
	Now func() time.Time
	// MatchAliases extends name-term matching to frontmatter aliases.
	MatchAliases bool
}

// NewEvaluator creates an Evaluator with default settings.
func NewEvaluator() *Evaluator {
	return &Evaluator{Now: time.Now}
}

// Matches evaluates a predicate against a record using a default
// evaluator.
func Matches(pred *Predicate, rec *models.NoteRecord) bool {
	return NewEvaluator().Matches(pred, rec)
}

// Matches reports whether the record satisfies the predicate. An empty
// predicate matches everything.
func (e *Evaluator) Matches(pred *Predicate, rec *models.NoteRecord) bool {
	if pred == nil || pred.IsEmpty() {
		return true
	}
	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}
	for _, group := range pred.Groups {
		if e.matchGroup(group, rec, now) {
			return true
		}
	}
	return false
}

func (e *Evaluator) matchGroup(group []Filter, rec *models.NoteRecord, now time.Time) bool {
	for _, f := range group {
		if e.matchFilter(f, rec, now) == f.Negated {
			return false
		}
	}
	return true
}

// matchFilter evaluates one clause, ignoring negation (the caller XORs).
func (e *Evaluator) matchFilter(f Filter, rec *models.NoteRecord, now time.Time) bool {
	switch f.Kind {
	case KindName:
		needle := strings.ToLower(f.Text)
		if strings.Contains(strings.ToLower(rec.DisplayName()), needle) {
			return true
		}
		if e.MatchAliases {
			for _, a := range rec.Aliases {
				if strings.Contains(strings.ToLower(a), needle) {
					return true
				}
			}
		}
		return false

	case KindTag:
		if f.Text == "" {
			return len(rec.Tags) > 0
		}
		for _, tag := range rec.Tags {
			low := strings.ToLower(tag)
			if low == f.Text || strings.HasPrefix(low, f.Text+"/") {
				return true
			}
		}
		return false

	case KindProperty:
		prop, ok := rec.Property(f.Key)
		if !ok {
			return false
		}
		if !f.HasValue {
			for _, v := range prop.Values {
				if strings.TrimSpace(v) != "" {
					return true
				}
			}
			return false
		}
		for _, v := range prop.Values {
			if strings.ToLower(v) == f.Value {
				return true
			}
		}
		// List values also match against their joined representation.
		if len(prop.Values) > 1 {
			return strings.ToLower(strings.Join(prop.Values, ", ")) == f.Value
		}
		return false

	case KindDate:
		t := rec.Modified
		if f.Field == FieldCreated {
			t = rec.Created
		}
		start, end := f.Start, f.End
		if f.Rel != RelNone {
			start, end = resolveRel(f.Rel, now)
		}
		return t >= start && t <= end

	case KindFolder:
		folder := rec.Folder()
		if f.Anchored {
			return strings.EqualFold(folder, f.Text)
		}
		return strings.Contains(strings.ToLower(folder), strings.ToLower(f.Text))

	case KindExtension:
		return strings.EqualFold(rec.Extension, f.Text)

	case KindTask:
		return rec.OpenTasks > 0
	}
	return false
}
