// Package parser extracts frontmatter properties, tags, aliases, and
// open-task counts from Markdown content.
package parser

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/raido/internal/models"
)

var (
	tagRe  = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)
	taskRe = regexp.MustCompile(`(?m)^\s*[-*] \[ \] `)
)

// Result holds the output of parsing a Markdown file.
type Result struct {
	Properties map[string]models.Property
	Body       string
	Tags       []string
	Aliases    []string
	Title      string
	OpenTasks  int
	Created    *time.Time
}

// Parse extracts metadata from raw Markdown bytes. Invalid frontmatter is
// never an error: the whole content becomes body and metadata stays empty.
func Parse(data []byte) (*Result, error) {
	fm, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, err
	}

	return &Result{
		Properties: flattenProperties(fm),
		Body:       body,
		Tags:       extractTags(body, fm),
		Aliases:    stringList(fm["aliases"]),
		Title:      deriveTitle(fm, body),
		OpenTasks:  len(taskRe.FindAllStringIndex(body, -1)),
		Created:    extractCreated(fm),
	}, nil
}

// splitFrontmatter separates YAML frontmatter (between leading --- delimiters)
// from the Markdown body. If no frontmatter is found the entire content is body.
func splitFrontmatter(data []byte) (map[string]interface{}, string, error) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")

	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, string(data), nil
	}

	// Find end delimiter.
	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		// No closing delimiter: treat everything as body.
		return nil, string(data), nil
	}

	yamlBlock := rest[:idx]
	// Body starts after closing delimiter line.
	afterDelim := rest[idx+1+len(delim):]
	body := strings.TrimLeft(string(afterDelim), "\n\r")

	var fm map[string]interface{}
	if err := yaml.Unmarshal(yamlBlock, &fm); err != nil {
		// Invalid YAML: return body only, no error.
		return nil, string(data), nil
	}

	return fm, body, nil
}

// flattenProperties converts every frontmatter entry into a Property with
// string values. Map keys are case-folded; the Property keeps the casing
// as written. Nested maps are skipped.
func flattenProperties(fm map[string]interface{}) map[string]models.Property {
	if len(fm) == 0 {
		return nil
	}
	out := make(map[string]models.Property, len(fm))
	for key, raw := range fm {
		values := flattenValue(raw)
		if values == nil {
			continue
		}
		out[strings.ToLower(key)] = models.Property{Key: key, Values: values}
	}
	return out
}

// flattenValue renders a scalar or list-of-scalars frontmatter value as
// strings. nil for values that cannot be represented (nested maps).
func flattenValue(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return []string{""}
	case string:
		return []string{v}
	case bool, int, int64, uint64, float64:
		return []string{fmt.Sprintf("%v", v)}
	case time.Time:
		return []string{v.Format("2006-01-02")}
	case []interface{}:
		var out []string
		for _, item := range v {
			if s := flattenValue(item); len(s) == 1 {
				out = append(out, s[0])
			}
		}
		if out == nil {
			out = []string{}
		}
		return out
	default:
		return nil
	}
}

// extractTags collects #tags from body and from frontmatter "tags" field.
func extractTags(body string, fm map[string]interface{}) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(t string) {
		t = strings.TrimSpace(strings.TrimPrefix(t, "#"))
		if t == "" {
			return
		}
		low := strings.ToLower(t)
		if _, dup := seen[low]; dup {
			return
		}
		seen[low] = struct{}{}
		out = append(out, t)
	}

	if fm != nil {
		for _, t := range stringList(fm["tags"]) {
			add(t)
		}
	}
	for _, m := range tagRe.FindAllStringSubmatch(body, -1) {
		add(m[1])
	}
	return out
}

// stringList coerces a frontmatter value into a list of strings: a bare
// string counts as a one-element list.
func stringList(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		return []string{v}
	case []interface{}:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// deriveTitle returns the frontmatter "title" if present, otherwise the first
// H1 heading, otherwise empty string.
func deriveTitle(fm map[string]interface{}, body string) string {
	if fm != nil {
		if t, ok := fm["title"]; ok {
			if s, ok := t.(string); ok && s != "" {
				return s
			}
		}
	}
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") {
			return strings.TrimSpace(trimmed[2:])
		}
	}
	return ""
}

// extractCreated reads an optional "created" frontmatter date. YAML may
// already have decoded it as a timestamp; otherwise common layouts are
// tried.
func extractCreated(fm map[string]interface{}) *time.Time {
	raw, ok := fm["created"]
	if !ok {
		return nil
	}
	switch v := raw.(type) {
	case time.Time:
		return &v
	case string:
		for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339} {
			if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
				return &t
			}
		}
	}
	return nil
}
