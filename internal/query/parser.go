package query

import (
	"strings"
)

// Parser holds configuration for query parsing.
type Parser struct {
	// DefaultDateField is the timestamp an unprefixed @date clause
	// targets. Date clauses can override it with c: or m:.
	DefaultDateField DateField
	// DateOrder disambiguates numeric dates like 7/2/2026.
	DateOrder DateOrder
}

// NewParser creates a Parser with default settings.
func NewParser() *Parser {
	return &Parser{DefaultDateField: FieldModified, DateOrder: OrderDMY}
}

// Parse is a convenience function that parses using default settings.
func Parse(raw string) *Predicate {
	return NewParser().Parse(raw)
}

// item is the pass-1 classification of one token: either a filter or a
// literal AND/OR whose role is decided in pass 2.
type item struct {
	filter    Filter
	connector string // "AND" or "OR"; "" for filters
}

// Parse converts a raw query string into a Predicate. It never fails:
// tokens that look like a filter but do not parse degrade to name terms,
// and an empty query yields a predicate that matches everything.
//
// AND/OR are boolean connectors only when every other token is a tag or
// property filter; in any other query they are searched as literal words.
// This mirrors the documented help text: `#work OR ext:md` looks for the
// word "OR" in names because ext: disqualifies connector mode.
func (p *Parser) Parse(raw string) *Predicate {
	tokens := tokenize(raw)

	// Pass 1: classify tokens without deciding the AND/OR role.
	items := make([]item, 0, len(tokens))
	pure := true
	hasConnector := false
	for _, tok := range tokens {
		if tok == "AND" || tok == "OR" {
			items = append(items, item{connector: tok})
			hasConnector = true
			continue
		}
		f := p.classify(tok)
		if f.Kind != KindTag && f.Kind != KindProperty {
			pure = false
		}
		items = append(items, item{filter: f})
	}

	// Pass 2: resolve connectors against the aggregate token-type set.
	pred := &Predicate{}
	if pure && hasConnector {
		var group []Filter
		for _, it := range items {
			switch it.connector {
			case "OR":
				if len(group) > 0 {
					pred.Groups = append(pred.Groups, group)
					group = nil
				}
			case "AND":
				// Implicit between consecutive filters anyway.
			default:
				group = append(group, it.filter)
			}
		}
		if len(group) > 0 {
			pred.Groups = append(pred.Groups, group)
		}
		return pred
	}

	var group []Filter
	for _, it := range items {
		if it.connector != "" {
			group = append(group, Filter{Kind: KindName, Text: it.connector})
			continue
		}
		group = append(group, it.filter)
	}
	if len(group) > 0 {
		pred.Groups = append(pred.Groups, group)
	}
	return pred
}

// classify parses a single non-connector token into a Filter.
func (p *Parser) classify(tok string) Filter {
	neg := false
	body := tok
	if len(body) > 1 && body[0] == '-' {
		neg = true
		body = body[1:]
	}

	switch {
	case strings.HasPrefix(body, "#"):
		return Filter{Kind: KindTag, Negated: neg, Text: strings.ToLower(body[1:])}

	case strings.HasPrefix(body, ".") && len(body) > 1:
		if f, ok := parseProperty(body[1:]); ok {
			f.Negated = neg
			return f
		}
		return nameTerm(tok)

	case strings.HasPrefix(body, "@") && len(body) > 1:
		if f, ok := p.parseDateClause(body[1:]); ok {
			f.Negated = neg
			return f
		}
		return nameTerm(tok)

	case strings.HasPrefix(body, "folder:"):
		rest := unquote(body[len("folder:"):])
		if rest == "" {
			return nameTerm(tok)
		}
		if strings.HasPrefix(rest, "/") {
			return Filter{Kind: KindFolder, Negated: neg, Text: strings.Trim(rest, "/"), Anchored: true}
		}
		return Filter{Kind: KindFolder, Negated: neg, Text: rest}

	case strings.HasPrefix(body, "ext:"):
		rest := strings.TrimPrefix(unquote(body[len("ext:"):]), ".")
		if rest == "" {
			return nameTerm(tok)
		}
		return Filter{Kind: KindExtension, Negated: neg, Text: strings.ToLower(rest)}

	case strings.EqualFold(body, "has:task"):
		return Filter{Kind: KindTask, Negated: neg}

	default:
		return Filter{Kind: KindName, Negated: neg, Text: unquote(body)}
	}
}

// nameTerm is the fallback for tokens whose filter body does not parse:
// the token is searched literally, exactly as typed.
func nameTerm(tok string) Filter {
	return Filter{Kind: KindName, Text: tok}
}

// parseProperty parses the body of a .key or .key=value clause. Keys and
// values containing whitespace arrive double-quoted.
func parseProperty(body string) (Filter, bool) {
	key, rest, ok := cutSegment(body)
	if !ok || key == "" {
		return Filter{}, false
	}
	f := Filter{Kind: KindProperty, Key: strings.ToLower(key)}
	if rest == "" {
		return f, true
	}
	if !strings.HasPrefix(rest, "=") {
		return Filter{}, false
	}
	f.HasValue = true
	f.Value = strings.ToLower(unquote(rest[1:]))
	return f, true
}

// cutSegment reads a possibly-quoted segment from the front of s and
// returns it together with the remainder. Unquoted segments end at the
// first '='.
func cutSegment(s string) (seg, rest string, ok bool) {
	if strings.HasPrefix(s, `"`) {
		end := strings.Index(s[1:], `"`)
		if end < 0 {
			return "", "", false
		}
		return s[1 : 1+end], s[end+2:], true
	}
	if i := strings.Index(s, "="); i >= 0 {
		return s[:i], s[i:], true
	}
	return s, "", true
}

// tokenize splits a query on whitespace, keeping double-quoted segments
// inside a single token (quotes included, stripped later per clause).
func tokenize(raw string) []string {
	var tokens []string
	var cur strings.Builder
	inQuotes := false

	for _, r := range raw {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case (r == ' ' || r == '\t' || r == '\n' || r == '\r') && !inQuotes:
			if cur.Len() > 0 {
				tokens = append(tokens, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

// unquote removes surrounding double quotes from a string if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
