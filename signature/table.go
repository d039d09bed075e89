package signature

import (
	"fmt"
	"strings"
	"sync"
)

// MaxHeaderSize is the number of leading bytes the sniffer looks at.
// Longer headers are truncated before matching.
const MaxHeaderSize = 512

// Category groups rules that are tried together. Categories are tried in
// the order they are declared.
type Category int

const (
	Images Category = iota
	Media
	Fonts
	Archives
	Text
	Unknown
	Misc

	numCategories
)

var categoryNames = [numCategories]string{
	Images:   "images",
	Media:    "media",
	Fonts:    "fonts",
	Archives: "archives",
	Text:     "text",
	Unknown:  "unknown",
	Misc:     "misc",
}

// Categories returns every category in matching order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// String returns the lower-case category name.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	return c >= 0 && c < numCategories
}

// ParseCategory returns the category with the given name, ignoring case.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown rule category %q", name)
}

// Table holds validated rules per category. A Table is immutable once built
// and safe for concurrent use.
type Table struct {
	rules [numCategories][]Rule
}

// NewTable validates rules and builds a table from them. Rules keep their
// order within each category.
func NewTable(rules map[Category][]Rule) (*Table, error) {
	t := &Table{}
	for c, list := range rules {
		if !c.Valid() {
			return nil, fmt.Errorf("unknown rule category %d", int(c))
		}
		copied := make([]Rule, len(list))
		for i, r := range list {
			if err := r.Validate(); err != nil {
				return nil, &RuleError{Category: c.String(), Index: i, Type: r.Type, Err: unwrapRuleError(err)}
			}
			copied[i] = cloneRule(r)
		}
		t.rules[c] = copied
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
func MustTable(rules map[Category][]Rule) *Table {
	t, err := NewTable(rules)
	if err != nil {
		panic(err)
	}
	return t
}

// Rules returns the rules of category c in matching order. The returned
// slice must not be modified.
func (t *Table) Rules(c Category) []Rule {
	if t == nil || !c.Valid() {
		return nil
	}
	return t.rules[c]
}

// Len returns the total number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := 0
	for _, list := range t.rules {
		n += len(list)
	}
	return n
}

// match returns the type of the first rule in c that matches header.
func (t *Table) match(c Category, header []byte) (string, bool) {
	for _, r := range t.Rules(c) {
		if r.Match(header) {
			return r.Type, true
		}
	}
	return "", false
}

var (
	defaultTable     *Table
	defaultTableOnce sync.Once
)

// DefaultTable returns the built-in rule table.
func DefaultTable() *Table {
	defaultTableOnce.Do(func() {
		defaultTable = MustTable(defaultRules())
	})
	return defaultTable
}

func cloneRule(r Rule) Rule {
	r.Pattern = append([]byte(nil), r.Pattern...)
	r.Mask = append([]byte(nil), r.Mask...)
	if r.Trailer != nil {
		r.Trailer = append([]byte(nil), r.Trailer...)
	}
	return r
}

func unwrapRuleError(err error) error {
	if re, ok := err.(*RuleError); ok {
		return re.Err
	}
	return err
}
