package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateOrder disambiguates numeric dates with separators (7/2/2026) where
// the day/month order depends on locale convention.
type DateOrder int

// Numeric date orders.
const (
	OrderDMY DateOrder = iota
	OrderMDY
)

// period is an inclusive [start, end] range in epoch milliseconds.
type period struct {
	start, end int64
}

var (
	yearRe    = regexp.MustCompile(`^\d{4}$`)
	monthRe   = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	monthCRe  = regexp.MustCompile(`^(\d{4})(\d{2})$`)
	weekRe    = regexp.MustCompile(`^(\d{4})-[Ww](\d{1,2})$`)
	quarterRe = regexp.MustCompile(`^(\d{4})-[Qq]([1-4])$`)
	dayRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
	dayCRe    = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	numericRe = regexp.MustCompile(`^(\d{1,4})[./-](\d{1,2})[./-](\d{1,4})$`)
)

// relKeywords maps the bare relative date keywords.
var relKeywords = map[string]RelKeyword{
	"today":     RelToday,
	"yesterday": RelYesterday,
	"last7d":    RelLast7d,
	"last30d":   RelLast30d,
	"thisweek":  RelThisWeek,
	"thismonth": RelThisMonth,
}

// parseDateClause parses the body of an @date token (after the @). The
// body may start with c: or m: to target the created or modified
// timestamp; the default target comes from the parser configuration.
func (p *Parser) parseDateClause(body string) (Filter, bool) {
	f := Filter{Kind: KindDate, Field: p.DefaultDateField}
	switch {
	case strings.HasPrefix(body, "c:"):
		f.Field = FieldCreated
		body = body[2:]
	case strings.HasPrefix(body, "m:"):
		f.Field = FieldModified
		body = body[2:]
	}
	if body == "" {
		return Filter{}, false
	}

	if rel, ok := relKeywords[strings.ToLower(body)]; ok {
		f.Rel = rel
		return f, true
	}

	if left, right, found := strings.Cut(body, ".."); found {
		if left == "" && right == "" {
			return Filter{}, false
		}
		f.Start, f.End = math.MinInt64, math.MaxInt64
		if left != "" {
			pl, ok := p.parsePeriod(left)
			if !ok {
				return Filter{}, false
			}
			f.Start = pl.start
		}
		if right != "" {
			pr, ok := p.parsePeriod(right)
			if !ok {
				return Filter{}, false
			}
			f.End = pr.end
		}
		return f, true
	}

	pp, ok := p.parsePeriod(body)
	if !ok {
		return Filter{}, false
	}
	f.Start, f.End = pp.start, pp.end
	return f, true
}

// parsePeriod resolves one absolute date expression to its inclusive
// millisecond range in local time.
func (p *Parser) parsePeriod(s string) (period, bool) {
	switch {
	case yearRe.MatchString(s):
		y := atoi(s)
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, time.Local)
		return spanUntil(start, start.AddDate(1, 0, 0)), true

	case monthRe.MatchString(s) || monthCRe.MatchString(s):
		var m []string
		if monthRe.MatchString(s) {
			m = monthRe.FindStringSubmatch(s)
		} else {
			m = monthCRe.FindStringSubmatch(s)
		}
		y, mo := atoi(m[1]), atoi(m[2])
		if mo < 1 || mo > 12 {
			return period{}, false
		}
		start := time.Date(y, time.Month(mo), 1, 0, 0, 0, 0, time.Local)
		return spanUntil(start, start.AddDate(0, 1, 0)), true

	case weekRe.MatchString(s):
		m := weekRe.FindStringSubmatch(s)
		y, w := atoi(m[1]), atoi(m[2])
		start, ok := isoWeekStart(y, w)
		if !ok {
			return period{}, false
		}
		return spanUntil(start, start.AddDate(0, 0, 7)), true

	case quarterRe.MatchString(s):
		m := quarterRe.FindStringSubmatch(s)
		y, q := atoi(m[1]), atoi(m[2])
		start := time.Date(y, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.Local)
		return spanUntil(start, start.AddDate(0, 3, 0)), true

	case dayRe.MatchString(s) || dayCRe.MatchString(s):
		var m []string
		if dayRe.MatchString(s) {
			m = dayRe.FindStringSubmatch(s)
		} else {
			m = dayCRe.FindStringSubmatch(s)
		}
		return dayPeriod(atoi(m[1]), atoi(m[2]), atoi(m[3]))

	case numericRe.MatchString(s):
		m := numericRe.FindStringSubmatch(s)
		a, b, c := m[1], m[2], m[3]
		if len(a) == 4 {
			// Year first is unambiguous: Y/M/D.
			return dayPeriod(atoi(a), atoi(b), atoi(c))
		}
		if len(c) != 4 {
			return period{}, false
		}
		if p.DateOrder == OrderMDY {
			return dayPeriod(atoi(c), atoi(a), atoi(b))
		}
		return dayPeriod(atoi(c), atoi(b), atoi(a))
	}
	return period{}, false
}

// dayPeriod returns the range of one calendar day, rejecting dates that
// time.Date would normalise (e.g. February 30th).
func dayPeriod(y, mo, d int) (period, bool) {
	if mo < 1 || mo > 12 || d < 1 || d > 31 {
		return period{}, false
	}
	start := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.Local)
	if start.Year() != y || start.Month() != time.Month(mo) || start.Day() != d {
		return period{}, false
	}
	return spanUntil(start, start.AddDate(0, 0, 1)), true
}

// isoWeekStart returns the Monday starting ISO week w of year y.
func isoWeekStart(y, w int) (time.Time, bool) {
	if w < 1 || w > 53 {
		return time.Time{}, false
	}
	jan4 := time.Date(y, time.January, 4, 0, 0, 0, 0, time.Local)
	wd := int(jan4.Weekday())
	if wd == 0 {
		wd = 7 // Sunday
	}
	monday := jan4.AddDate(0, 0, 1-wd)
	start := monday.AddDate(0, 0, (w-1)*7)
	if iy, iw := start.ISOWeek(); iy != y || iw != w {
		return time.Time{}, false
	}
	return start, true
}

// spanUntil builds the inclusive period from start up to (but excluding)
// next.
func spanUntil(start, next time.Time) period {
	return period{start: start.UnixMilli(), end: next.UnixMilli() - 1}
}

// resolveRel resolves a relative keyword to its inclusive millisecond
// range anchored at now. Days begin at local midnight.
func resolveRel(rel RelKeyword, now time.Time) (int64, int64) {
	day := func(t time.Time) (time.Time, time.Time) {
		start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		return start, start.AddDate(0, 0, 1)
	}
	switch rel {
	case RelToday:
		s, n := day(now)
		return s.UnixMilli(), n.UnixMilli() - 1
	case RelYesterday:
		s, n := day(now.AddDate(0, 0, -1))
		return s.UnixMilli(), n.UnixMilli() - 1
	case RelLast7d:
		s, _ := day(now.AddDate(0, 0, -6))
		_, n := day(now)
		return s.UnixMilli(), n.UnixMilli() - 1
	case RelLast30d:
		s, _ := day(now.AddDate(0, 0, -29))
		_, n := day(now)
		return s.UnixMilli(), n.UnixMilli() - 1
	case RelThisWeek:
		y, w := now.ISOWeek()
		if start, ok := isoWeekStart(y, w); ok {
			return start.UnixMilli(), start.AddDate(0, 0, 7).UnixMilli() - 1
		}
		s, n := day(now)
		return s.UnixMilli(), n.UnixMilli() - 1
	case RelThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start.UnixMilli(), start.AddDate(0, 1, 0).UnixMilli() - 1
	}
	return math.MinInt64, math.MaxInt64
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
