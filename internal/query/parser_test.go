package query

import (
	"testing"
	"time"
)

func single(t *testing.T, pred *Predicate) Filter {
	t.Helper()
	if len(pred.Groups) != 1 || len(pred.Groups[0]) != 1 {
		t.Fatalf("expected a single clause, got %+v", pred.Groups)
	}
	return pred.Groups[0][0]
}

func TestParse_EmptyQuery(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		pred := Parse(raw)
		if !pred.IsEmpty() {
			t.Errorf("Parse(%q) not empty: %+v", raw, pred.Groups)
		}
	}
}

func TestParse_NameTerms(t *testing.T) {
	pred := Parse("meeting notes")
	if len(pred.Groups) != 1 || len(pred.Groups[0]) != 2 {
		t.Fatalf("groups = %+v", pred.Groups)
	}
	for i, want := range []string{"meeting", "notes"} {
		f := pred.Groups[0][i]
		if f.Kind != KindName || f.Text != want {
			t.Errorf("clause %d = %+v, want name %q", i, f, want)
		}
	}
}

func TestParse_QuotedNameTerm(t *testing.T) {
	f := single(t, Parse(`"meeting notes"`))
	if f.Kind != KindName || f.Text != "meeting notes" {
		t.Errorf("clause = %+v, want name %q", f, "meeting notes")
	}
}

func TestParse_Tag(t *testing.T) {
	f := single(t, Parse("#Work/Projects"))
	if f.Kind != KindTag || f.Text != "work/projects" {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_BareHashMeansAnyTag(t *testing.T) {
	f := single(t, Parse("#"))
	if f.Kind != KindTag || f.Text != "" {
		t.Errorf("clause = %+v, want empty tag clause", f)
	}
}

func TestParse_Negation(t *testing.T) {
	f := single(t, Parse("-#archive"))
	if f.Kind != KindTag || !f.Negated || f.Text != "archive" {
		t.Errorf("clause = %+v", f)
	}

	f = single(t, Parse("-draft"))
	if f.Kind != KindName || !f.Negated || f.Text != "draft" {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_BareDashIsName(t *testing.T) {
	f := single(t, Parse("-"))
	if f.Kind != KindName || f.Negated || f.Text != "-" {
		t.Errorf("clause = %+v, want literal dash name term", f)
	}
}

func TestParse_PropertyPresence(t *testing.T) {
	f := single(t, Parse(".Status"))
	if f.Kind != KindProperty || f.Key != "status" || f.HasValue {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_PropertyEquality(t *testing.T) {
	f := single(t, Parse(".status=Active"))
	if f.Kind != KindProperty || f.Key != "status" || !f.HasValue || f.Value != "active" {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_PropertyQuoted(t *testing.T) {
	f := single(t, Parse(`."due date"="next week"`))
	if f.Kind != KindProperty || f.Key != "due date" || !f.HasValue || f.Value != "next week" {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_PropertyMalformedFallsBack(t *testing.T) {
	// An unterminated quote cannot parse as a property; the whole token
	// degrades to a literal name term, exactly as typed.
	f := single(t, Parse(`."status`))
	if f.Kind != KindName || f.Text != `."status` {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_Folder(t *testing.T) {
	f := single(t, Parse("folder:projects"))
	if f.Kind != KindFolder || f.Text != "projects" || f.Anchored {
		t.Errorf("clause = %+v", f)
	}

	f = single(t, Parse("folder:/projects/work/"))
	if f.Kind != KindFolder || f.Text != "projects/work" || !f.Anchored {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_Extension(t *testing.T) {
	f := single(t, Parse("ext:.MD"))
	if f.Kind != KindExtension || f.Text != "md" {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_HasTask(t *testing.T) {
	f := single(t, Parse("HAS:TASK"))
	if f.Kind != KindTask {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_EmptyOperatorBodiesFallBack(t *testing.T) {
	for _, raw := range []string{"folder:", "ext:", "ext:."} {
		f := single(t, Parse(raw))
		if f.Kind != KindName || f.Text != raw {
			t.Errorf("Parse(%q) = %+v, want literal name term", raw, f)
		}
	}
}

func TestParse_PureTagOR(t *testing.T) {
	pred := Parse("#work OR #personal")
	if len(pred.Groups) != 2 {
		t.Fatalf("groups = %+v, want 2 OR groups", pred.Groups)
	}
	if pred.Groups[0][0].Text != "work" || pred.Groups[1][0].Text != "personal" {
		t.Errorf("groups = %+v", pred.Groups)
	}
}

func TestParse_PureMixedConnectors(t *testing.T) {
	pred := Parse("#work AND .status=active OR #personal")
	if len(pred.Groups) != 2 {
		t.Fatalf("groups = %+v", pred.Groups)
	}
	if len(pred.Groups[0]) != 2 || len(pred.Groups[1]) != 1 {
		t.Errorf("group sizes = %d/%d, want 2/1", len(pred.Groups[0]), len(pred.Groups[1]))
	}
}

func TestParse_ImpureORIsLiteral(t *testing.T) {
	// ext: disqualifies connector mode, so OR is searched as a word.
	pred := Parse("#work OR ext:md")
	if len(pred.Groups) != 1 {
		t.Fatalf("groups = %+v, want a single AND group", pred.Groups)
	}
	g := pred.Groups[0]
	if len(g) != 3 {
		t.Fatalf("group = %+v, want 3 clauses", g)
	}
	if g[1].Kind != KindName || g[1].Text != "OR" {
		t.Errorf("middle clause = %+v, want literal OR name term", g[1])
	}
}

func TestParse_LowercaseOrIsAlwaysLiteral(t *testing.T) {
	pred := Parse("#work or #personal")
	if len(pred.Groups) != 1 || len(pred.Groups[0]) != 3 {
		t.Fatalf("groups = %+v", pred.Groups)
	}
	if pred.Groups[0][1].Kind != KindName || pred.Groups[0][1].Text != "or" {
		t.Errorf("middle clause = %+v", pred.Groups[0][1])
	}
}

func TestParse_DanglingConnectorsDropped(t *testing.T) {
	pred := Parse("OR #work OR")
	if len(pred.Groups) != 1 || len(pred.Groups[0]) != 1 {
		t.Fatalf("groups = %+v", pred.Groups)
	}
	if pred.Groups[0][0].Text != "work" {
		t.Errorf("clause = %+v", pred.Groups[0][0])
	}
}

func TestParse_DefaultDateFieldConfigurable(t *testing.T) {
	p := NewParser()
	p.DefaultDateField = FieldCreated
	pred := p.Parse("@today")
	f := single(t, pred)
	if f.Kind != KindDate || f.Field != FieldCreated || f.Rel != RelToday {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_DateFieldPrefixOverrides(t *testing.T) {
	f := single(t, Parse("@c:2024"))
	if f.Kind != KindDate || f.Field != FieldCreated {
		t.Errorf("clause = %+v", f)
	}
	f = single(t, Parse("@m:today"))
	if f.Kind != KindDate || f.Field != FieldModified || f.Rel != RelToday {
		t.Errorf("clause = %+v", f)
	}
}

func TestParse_BadDateFallsBack(t *testing.T) {
	for _, raw := range []string{"@someday", "@2024-13", "@c:", "@2024-02-30"} {
		f := single(t, Parse(raw))
		if f.Kind != KindName || f.Text != raw {
			t.Errorf("Parse(%q) = %+v, want literal name term", raw, f)
		}
	}
}

func TestParse_NeverPanics(t *testing.T) {
	inputs := []string{
		`"`, `"""`, "-", "--", "#", ".", "@", ".=", `.""=""`,
		"folder://", "@..", "@2024..", "@..2024", "ext:..", "-@x..y",
		"AND OR AND", `."unclosed`,
	}
	for _, raw := range inputs {
		pred := Parse(raw)
		if pred == nil {
			t.Errorf("Parse(%q) returned nil", raw)
		}
	}
}

func TestParse_OpenRange(t *testing.T) {
	f := single(t, Parse("@2024-01-15.."))
	if f.Kind != KindDate {
		t.Fatalf("clause = %+v", f)
	}
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.Local).UnixMilli()
	if f.Start != start {
		t.Errorf("start = %d, want %d", f.Start, start)
	}
	if f.End <= start {
		t.Errorf("end = %d, want open upper bound", f.End)
	}
}
