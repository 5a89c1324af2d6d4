package sorting

import (
	"testing"

	"github.com/starford/raido/internal/models"
)

func titled(path, title string) models.NoteRecord {
	base, ext := models.SplitName(path)
	return models.NoteRecord{Path: path, Basename: base, Extension: ext, Title: title}
}

func paths(records []models.NoteRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Path
	}
	return out
}

func assertOrder(t *testing.T, records []models.NoteRecord, want ...string) {
	t.Helper()
	got := paths(records)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNatural_NumericRuns(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"file2", "file10", -1},
		{"file10", "file2", 1},
		{"File2", "file2", 0},
		{"a", "b", -1},
		{"note1", "note01", 0},
	}
	for _, c := range cases {
		got := Natural(c.a, c.b)
		if got < 0 {
			got = -1
		} else if got > 0 {
			got = 1
		}
		if got != c.want {
			t.Errorf("Natural(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestSetLocale_InvalidTag(t *testing.T) {
	if err := SetLocale("not a tag!"); err == nil {
		t.Error("expected error for malformed BCP-47 tag")
	}
	// Restore the neutral collator for the rest of the suite.
	if err := SetLocale("und"); err != nil {
		t.Fatalf("SetLocale(und): %v", err)
	}
}

func TestSort_TitleNatural(t *testing.T) {
	records := []models.NoteRecord{
		titled("a.md", "file10"),
		titled("b.md", "file2"),
		titled("c.md", "chapter"),
	}
	Sort(records, Spec{Option: TitleAsc})
	assertOrder(t, records, "c.md", "b.md", "a.md")

	Sort(records, Spec{Option: TitleDesc})
	assertOrder(t, records, "a.md", "b.md", "c.md")
}

func TestSort_ShorterStringBreaksNaturalTie(t *testing.T) {
	records := []models.NoteRecord{
		titled("a.md", "note01"),
		titled("b.md", "note1"),
	}
	Sort(records, Spec{Option: TitleAsc})
	assertOrder(t, records, "b.md", "a.md")

	// Descending inverts the length tie-break too.
	Sort(records, Spec{Option: TitleDesc})
	assertOrder(t, records, "a.md", "b.md")
}

func TestSort_PathSettlesExactTies(t *testing.T) {
	records := []models.NoteRecord{
		titled("z/same.md", "Same"),
		titled("a/same.md", "Same"),
	}
	Sort(records, Spec{Option: TitleAsc})
	assertOrder(t, records, "a/same.md", "z/same.md")

	// The path tie-break is ascending regardless of direction.
	Sort(records, Spec{Option: TitleDesc})
	assertOrder(t, records, "a/same.md", "z/same.md")
}

func TestSort_TitleFallsBackToBasename(t *testing.T) {
	records := []models.NoteRecord{
		titled("zeta.md", ""),
		titled("alpha.md", ""),
	}
	Sort(records, Spec{Option: TitleAsc})
	assertOrder(t, records, "alpha.md", "zeta.md")
}

func TestSort_Timestamps(t *testing.T) {
	records := []models.NoteRecord{
		{Path: "old.md", Modified: 100, Created: 300},
		{Path: "new.md", Modified: 200, Created: 100},
	}
	Sort(records, Spec{Option: ModifiedDesc})
	assertOrder(t, records, "new.md", "old.md")

	Sort(records, Spec{Option: CreatedAsc})
	assertOrder(t, records, "new.md", "old.md")

	Sort(records, Spec{Option: CreatedDesc})
	assertOrder(t, records, "old.md", "new.md")
}

func TestSort_Filename(t *testing.T) {
	records := []models.NoteRecord{
		titled("file10.md", "AAA"),
		titled("file2.md", "ZZZ"),
	}
	Sort(records, Spec{Option: FilenameAsc})
	assertOrder(t, records, "file2.md", "file10.md")
}

func withProp(path, key, value string) models.NoteRecord {
	r := titled(path, "")
	if value != "" {
		r.Properties = map[string]models.Property{
			key: {Key: key, Values: []string{value}},
		}
	}
	return r
}

func TestSort_PropertyPresenceDominatesDirection(t *testing.T) {
	records := []models.NoteRecord{
		withProp("none.md", "priority", ""),
		withProp("high.md", "priority", "9"),
		withProp("low.md", "priority", "2"),
	}
	Sort(records, Spec{Option: PropertyAsc, PropertyKey: "priority"})
	assertOrder(t, records, "low.md", "high.md", "none.md")

	// Descending flips the value order, but valueless records stay last.
	Sort(records, Spec{Option: PropertyDesc, PropertyKey: "priority"})
	assertOrder(t, records, "high.md", "low.md", "none.md")
}

func TestSort_PropertySecondaryKey(t *testing.T) {
	a := withProp("a.md", "status", "open")
	a.Modified = 100
	b := withProp("b.md", "status", "open")
	b.Modified = 200

	records := []models.NoteRecord{a, b}
	Sort(records, Spec{Option: PropertyAsc, PropertyKey: "status", Secondary: KeyModified})
	assertOrder(t, records, "a.md", "b.md")

	Sort(records, Spec{Option: PropertyDesc, PropertyKey: "status", Secondary: KeyModified})
	assertOrder(t, records, "b.md", "a.md")
}

func TestSort_PropertyTitleBreaksSecondaryTie(t *testing.T) {
	a := withProp("x.md", "status", "open")
	a.Modified = 100
	a.Title = "Beta"
	b := withProp("y.md", "status", "open")
	b.Modified = 100
	b.Title = "Alpha"

	records := []models.NoteRecord{a, b}
	Sort(records, Spec{Option: PropertyAsc, PropertyKey: "status", Secondary: KeyModified})
	assertOrder(t, records, "y.md", "x.md")
}

func TestSort_Idempotent(t *testing.T) {
	records := []models.NoteRecord{
		titled("b.md", "note01"),
		titled("a.md", "note1"),
		titled("c.md", "note1"),
	}
	spec := Spec{Option: TitleAsc}
	Sort(records, spec)
	first := paths(records)
	Sort(records, spec)
	second := paths(records)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order changed on re-sort: %v then %v", first, second)
		}
	}
}

func TestSpec_Validate(t *testing.T) {
	if err := (Spec{Option: ModifiedDesc}).Validate(); err != nil {
		t.Errorf("valid spec rejected: %v", err)
	}
	if err := (Spec{Option: "alphabetical"}).Validate(); err == nil {
		t.Error("unknown option accepted")
	}
	if err := (Spec{Option: PropertyAsc}).Validate(); err == nil {
		t.Error("property mode without a key accepted")
	}
	if err := (Spec{Option: PropertyAsc, PropertyKey: "status"}).Validate(); err != nil {
		t.Errorf("property spec rejected: %v", err)
	}
	if err := (Spec{Option: TitleAsc, Secondary: "path"}).Validate(); err == nil {
		t.Error("unknown secondary key accepted")
	}
}
