package query

import (
	"testing"
	"time"

	"github.com/starford/raido/internal/models"
)

func testRecord() *models.NoteRecord {
	return &models.NoteRecord{
		Path:      "projects/alpha/plan.md",
		Basename:  "plan",
		Extension: "md",
		Title:     "Alpha Plan",
		Aliases:   []string{"Roadmap"},
		Tags:      []string{"Work/Projects", "planning"},
		Properties: map[string]models.Property{
			"status":   {Key: "Status", Values: []string{"Active"}},
			"reviewer": {Key: "reviewer", Values: []string{"Ann", "Ben"}},
			"draft":    {Key: "draft", Values: []string{""}},
		},
		OpenTasks: 2,
		Created:   time.Date(2026, time.August, 1, 10, 0, 0, 0, time.Local).UnixMilli(),
		Modified:  time.Date(2026, time.August, 29, 10, 0, 0, 0, time.Local).UnixMilli(),
	}
}

func evalAt(t *testing.T, raw string, rec *models.NoteRecord) bool {
	t.Helper()
	e := NewEvaluator()
	e.Now = func() time.Time {
		return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.Local)
	}
	return e.Matches(Parse(raw), rec)
}

func TestMatches_EmptyPredicate(t *testing.T) {
	rec := testRecord()
	if !Matches(nil, rec) {
		t.Error("nil predicate should match")
	}
	if !Matches(Parse(""), rec) {
		t.Error("empty query should match")
	}
}

func TestMatches_NameSubstring(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "alpha", rec) {
		t.Error("case-insensitive substring of the title should match")
	}
	if evalAt(t, "beta", rec) {
		t.Error("unrelated term matched")
	}
}

func TestMatches_NameFallsBackToBasename(t *testing.T) {
	rec := testRecord()
	rec.Title = ""
	if !evalAt(t, "plan", rec) {
		t.Error("basename should match when there is no title")
	}
}

func TestMatches_Aliases(t *testing.T) {
	rec := testRecord()
	e := NewEvaluator()
	e.MatchAliases = true
	if !e.Matches(Parse("roadmap"), rec) {
		t.Error("alias should match when enabled")
	}
	e.MatchAliases = false
	if e.Matches(Parse("roadmap"), rec) {
		t.Error("alias matched while disabled")
	}
}

func TestMatches_TagDescendants(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "#work", rec) {
		t.Error("#work should match descendant tag work/projects")
	}
	if !evalAt(t, "#work/projects", rec) {
		t.Error("exact tag should match")
	}
	if evalAt(t, "#workshop", rec) {
		t.Error("#workshop must not match work/projects")
	}
	if evalAt(t, "#plan", rec) {
		t.Error("#plan must not match the prefix of planning")
	}
}

func TestMatches_AnyTag(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "#", rec) {
		t.Error("bare # should match a tagged record")
	}
	rec.Tags = nil
	if evalAt(t, "#", rec) {
		t.Error("bare # matched an untagged record")
	}
}

func TestMatches_PropertyPresence(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, ".status", rec) {
		t.Error(".status should match")
	}
	if evalAt(t, ".missing", rec) {
		t.Error(".missing matched")
	}
	// Present but blank counts as absent for presence checks.
	if evalAt(t, ".draft", rec) {
		t.Error(".draft with a blank value matched")
	}
}

func TestMatches_PropertyEquality(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, ".status=active", rec) {
		t.Error("equality should be case-insensitive")
	}
	if evalAt(t, ".status=done", rec) {
		t.Error("wrong value matched")
	}
	// Any element of a list value matches.
	if !evalAt(t, ".reviewer=ben", rec) {
		t.Error("list element should match")
	}
	// So does the joined representation.
	if !evalAt(t, `.reviewer="ann, ben"`, rec) {
		t.Error("joined list representation should match")
	}
}

func TestMatches_DateBoundariesInclusive(t *testing.T) {
	rec := testRecord()
	rec.Modified = time.Date(2026, time.August, 29, 0, 0, 0, 0, time.Local).UnixMilli()
	if !evalAt(t, "@2026-08-29", rec) {
		t.Error("exact midnight should be inside the day")
	}
	rec.Modified = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.Local).UnixMilli() - 1
	if !evalAt(t, "@2026-08-29", rec) {
		t.Error("last millisecond of the day should be inside")
	}
	if evalAt(t, "@2026-08-28", rec) {
		t.Error("neighbouring day matched")
	}
}

func TestMatches_RelativeDate(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "@last7d", rec) {
		t.Error("modified yesterday should fall inside last7d")
	}
	if evalAt(t, "@today", rec) {
		t.Error("modified yesterday matched @today")
	}
	if !evalAt(t, "@c:thismonth", rec) {
		t.Error("created Aug 1 should fall inside thismonth")
	}
}

func TestMatches_Folder(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "folder:alpha", rec) {
		t.Error("substring folder match failed")
	}
	if !evalAt(t, "folder:/projects/alpha", rec) {
		t.Error("anchored folder match failed")
	}
	if evalAt(t, "folder:/alpha", rec) {
		t.Error("anchored match must be exact, not a suffix")
	}
	if evalAt(t, "folder:beta", rec) {
		t.Error("unrelated folder matched")
	}
}

func TestMatches_RootFolder(t *testing.T) {
	rec := testRecord()
	rec.Path = "plan.md"
	if evalAt(t, "folder:projects", rec) {
		t.Error("root-level record matched a folder filter")
	}
}

func TestMatches_ExtensionAndTask(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "ext:md", rec) {
		t.Error("ext:md should match")
	}
	if evalAt(t, "ext:pdf", rec) {
		t.Error("ext:pdf matched")
	}
	if !evalAt(t, "has:task", rec) {
		t.Error("has:task should match open tasks")
	}
	rec.OpenTasks = 0
	if evalAt(t, "has:task", rec) {
		t.Error("has:task matched with no open tasks")
	}
}

func TestMatches_Negation(t *testing.T) {
	rec := testRecord()
	if evalAt(t, "-#work", rec) {
		t.Error("negated matching tag should exclude")
	}
	if !evalAt(t, "-#archive", rec) {
		t.Error("negated absent tag should include")
	}
	if !evalAt(t, "alpha -ext:pdf", rec) {
		t.Error("combined positive and negative clauses failed")
	}
}

func TestMatches_ORGroups(t *testing.T) {
	rec := testRecord()
	if !evalAt(t, "#archive OR .status=active", rec) {
		t.Error("second OR branch should match")
	}
	if evalAt(t, "#archive OR .status=done", rec) {
		t.Error("neither branch should match")
	}
}

func TestMatches_LiteralORNotFound(t *testing.T) {
	// Impure query: OR is a literal word and this record's name lacks it.
	rec := testRecord()
	if evalAt(t, "#work OR ext:md", rec) {
		t.Error("literal OR should fail against a name without it")
	}
	rec.Title = "Alpha OR Beta"
	if !evalAt(t, "#work OR ext:md", rec) {
		t.Error("literal OR should match a name containing it")
	}
}
