package sorting

import (
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/raido/internal/models"
)

// Option names a sort mode.
type Option string

// Sort modes.
const (
	ModifiedDesc Option = "modified-desc"
	ModifiedAsc  Option = "modified-asc"
	CreatedDesc  Option = "created-desc"
	CreatedAsc   Option = "created-asc"
	TitleAsc     Option = "title-asc"
	TitleDesc    Option = "title-desc"
	FilenameAsc  Option = "filename-asc"
	FilenameDesc Option = "filename-desc"
	PropertyAsc  Option = "property-asc"
	PropertyDesc Option = "property-desc"
)

// Key names a secondary sort key used when primary values tie.
type Key string

// Secondary keys.
const (
	KeyTitle    Key = "title"
	KeyFilename Key = "filename"
	KeyCreated  Key = "created"
	KeyModified Key = "modified"
)

// Spec describes one sort invocation. PropertyKey is required for the
// property modes; Secondary defaults to title when empty.
type Spec struct {
	Option      Option `yaml:"option" json:"option"`
	PropertyKey string `yaml:"property_key" json:"property_key,omitempty"`
	Secondary   Key    `yaml:"secondary" json:"secondary,omitempty"`
}

// DefaultSpec returns the out-of-the-box sort order.
func DefaultSpec() Spec {
	return Spec{Option: ModifiedDesc, Secondary: KeyTitle}
}

// Validate validates the spec.
func (s Spec) Validate() error {
	isProperty := s.Option == PropertyAsc || s.Option == PropertyDesc
	return validation.ValidateStruct(&s,
		validation.Field(&s.Option, validation.Required, validation.In(
			ModifiedDesc, ModifiedAsc, CreatedDesc, CreatedAsc,
			TitleAsc, TitleDesc, FilenameAsc, FilenameDesc,
			PropertyAsc, PropertyDesc,
		)),
		validation.Field(&s.PropertyKey, validation.When(isProperty, validation.Required)),
		validation.Field(&s.Secondary, validation.In(KeyTitle, KeyFilename, KeyCreated, KeyModified)),
	)
}

// Sort orders records in place according to the spec. The order is total:
// every comparator chain ends in an ascending path comparison, so sorting
// an already-sorted slice is a no-op.
func Sort(records []models.NoteRecord, spec Spec) {
	cmp := comparator(spec)
	sort.Slice(records, func(i, j int) bool {
		return cmp(&records[i], &records[j]) < 0
	})
}

func comparator(spec Spec) func(a, b *models.NoteRecord) int {
	dir := 1
	if strings.HasSuffix(string(spec.Option), "-desc") {
		dir = -1
	}

	switch spec.Option {
	case CreatedAsc, CreatedDesc:
		return timeComparator(func(r *models.NoteRecord) int64 { return r.Created }, dir)
	case TitleAsc, TitleDesc:
		return textComparator((*models.NoteRecord).DisplayName, dir)
	case FilenameAsc, FilenameDesc:
		return textComparator(func(r *models.NoteRecord) string { return r.Basename }, dir)
	case PropertyAsc, PropertyDesc:
		return propertyComparator(spec, dir)
	default:
		return timeComparator(func(r *models.NoteRecord) int64 { return r.Modified }, dir)
	}
}

func timeComparator(sel func(*models.NoteRecord) int64, dir int) func(a, b *models.NoteRecord) int {
	return func(a, b *models.NoteRecord) int {
		if c := cmpInt64(sel(a), sel(b)); c != 0 {
			return dir * c
		}
		return strings.Compare(a.Path, b.Path)
	}
}

// textComparator orders by natural comparison of the selected name. On an
// exact natural tie the shorter string wins ("file1" before "file001"),
// restoring determinism for numerically-equal names; the path settles the
// rest.
func textComparator(sel func(*models.NoteRecord) string, dir int) func(a, b *models.NoteRecord) int {
	return func(a, b *models.NoteRecord) int {
		if c := nameCompare(sel(a), sel(b)); c != 0 {
			return dir * c
		}
		return strings.Compare(a.Path, b.Path)
	}
}

// propertyComparator orders by a frontmatter property value. Records with
// a value always sort before records without one, regardless of
// direction; the secondary key, a title comparison, and finally the path
// settle ties.
func propertyComparator(spec Spec, dir int) func(a, b *models.NoteRecord) int {
	return func(a, b *models.NoteRecord) int {
		va, vb := propertyValue(a, spec.PropertyKey), propertyValue(b, spec.PropertyKey)
		if (va != "") != (vb != "") {
			if va != "" {
				return -1
			}
			return 1
		}
		if va != "" {
			if c := Natural(va, vb); c != 0 {
				return dir * c
			}
		}
		if c := secondaryCompare(a, b, spec.Secondary); c != 0 {
			return dir * c
		}
		if spec.Secondary != KeyTitle && spec.Secondary != "" {
			if c := nameCompare(a.DisplayName(), b.DisplayName()); c != 0 {
				return dir * c
			}
		}
		return strings.Compare(a.Path, b.Path)
	}
}

func secondaryCompare(a, b *models.NoteRecord, key Key) int {
	switch key {
	case KeyFilename:
		return nameCompare(a.Basename, b.Basename)
	case KeyCreated:
		return cmpInt64(a.Created, b.Created)
	case KeyModified:
		return cmpInt64(a.Modified, b.Modified)
	default:
		return nameCompare(a.DisplayName(), b.DisplayName())
	}
}

// nameCompare is natural comparison with the shorter-string tie-break.
func nameCompare(a, b string) int {
	if c := Natural(a, b); c != 0 {
		return c
	}
	return cmpInt64(int64(len(a)), int64(len(b)))
}

// propertyValue flattens a property to a single comparison string;
// list values join with ", ". Missing or blank properties yield "".
func propertyValue(r *models.NoteRecord, key string) string {
	prop, ok := r.Property(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(strings.Join(prop.Values, ", "))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
