// Package sorting produces deterministic total orders over vault records:
// locale-aware natural comparison (digit runs compare numerically) with
// explicit tie-break chains so repeated sorts always agree.
package sorting

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// One collator per process: building a collation table is expensive and
// collators are not safe for concurrent use, so access is serialised.
var (
	collatorMu sync.Mutex
	collator   = newCollator(language.Und)
)

func newCollator(tag language.Tag) *collate.Collator {
	return collate.New(tag, collate.Numeric, collate.IgnoreCase)
}

// SetLocale rebuilds the process collator for the given BCP-47 tag.
// Intended to be called once at startup from configuration.
func SetLocale(tag string) error {
	parsed, err := language.Parse(tag)
	if err != nil {
		return err
	}
	collatorMu.Lock()
	collator = newCollator(parsed)
	collatorMu.Unlock()
	return nil
}

// Natural compares two strings case-insensitively with embedded digit
// sequences compared numerically, so "file2" orders before "file10".
// Numerically-equal-but-textually-different strings ("1" vs "01")
// compare equal here; callers add their own disambiguation.
func Natural(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}
