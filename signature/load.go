package signature

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidHex is returned when a byte field of a rule file is not valid hex.
var ErrInvalidHex = errors.New("invalid hex byte string")

// tableFile is the on-disk form of a Table. Byte fields are hex strings;
// spaces between bytes are allowed.
type tableFile struct {
	Images   []ruleSpec `yaml:"images,omitempty"`
	Media    []ruleSpec `yaml:"media,omitempty"`
	Fonts    []ruleSpec `yaml:"fonts,omitempty"`
	Archives []ruleSpec `yaml:"archives,omitempty"`
	Text     []ruleSpec `yaml:"text,omitempty"`
	Unknown  []ruleSpec `yaml:"unknown,omitempty"`
	Misc     []ruleSpec `yaml:"misc,omitempty"`
}

type ruleSpec struct {
	Type        string `yaml:"type"`
	Pattern     string `yaml:"pattern"`
	Mask        string `yaml:"mask,omitempty"`
	Ignore      string `yaml:"ignore,omitempty"`
	Terminators string `yaml:"terminators,omitempty"`
	Trailer     string `yaml:"trailer,omitempty"`
}

func (f *tableFile) categories() map[Category]*[]ruleSpec {
	return map[Category]*[]ruleSpec{
		Images:   &f.Images,
		Media:    &f.Media,
		Fonts:    &f.Fonts,
		Archives: &f.Archives,
		Text:     &f.Text,
		Unknown:  &f.Unknown,
		Misc:     &f.Misc,
	}
}

// LoadTable reads a YAML rule file and builds a validated Table from it.
// The file replaces the built-in rules entirely; categories it does not
// list are empty. A missing mask means every pattern bit is significant.
func LoadTable(r io.Reader) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f tableFile
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return NewTable(nil)
		}
		return nil, fmt.Errorf("decode rule file: %w", err)
	}

	rules := make(map[Category][]Rule)
	for c, specs := range f.categories() {
		for i, spec := range *specs {
			rule, err := spec.rule()
			if err != nil {
				return nil, &RuleError{Category: c.String(), Index: i, Type: spec.Type, Err: unwrapRuleError(err)}
			}
			rules[c] = append(rules[c], rule)
		}
	}
	return NewTable(rules)
}

// LoadTableFile is LoadTable for a file on disk.
func LoadTableFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := LoadTable(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// EncodeTable writes t in the format read by LoadTable.
func EncodeTable(w io.Writer, t *Table) error {
	var f tableFile
	for c, specs := range f.categories() {
		for _, r := range t.Rules(c) {
			*specs = append(*specs, specFromRule(r))
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encode rule file: %w", err)
	}
	return enc.Close()
}

func (s ruleSpec) rule() (Rule, error) {
	pattern, err := decodeHex("pattern", s.Pattern)
	if err != nil {
		return Rule{}, err
	}
	mask, err := decodeHex("mask", s.Mask)
	if err != nil {
		return Rule{}, err
	}
	if s.Mask == "" {
		mask = []byte(fullMask(len(pattern)))
	}
	ignore, err := decodeHex("ignore", s.Ignore)
	if err != nil {
		return Rule{}, err
	}
	terminators, err := decodeHex("terminators", s.Terminators)
	if err != nil {
		return Rule{}, err
	}
	trailer, err := decodeHex("trailer", s.Trailer)
	if err != nil {
		return Rule{}, err
	}

	r := Rule{
		Type:        s.Type,
		Pattern:     pattern,
		Mask:        mask,
		Ignore:      NewByteSet(string(ignore)),
		Terminators: NewByteSet(string(terminators)),
		Trailer:     trailer,
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

func specFromRule(r Rule) ruleSpec {
	return ruleSpec{
		Type:        r.Type,
		Pattern:     hex.EncodeToString(r.Pattern),
		Mask:        hex.EncodeToString(r.Mask),
		Ignore:      hex.EncodeToString(r.Ignore.Bytes()),
		Terminators: hex.EncodeToString(r.Terminators.Bytes()),
		Trailer:     hex.EncodeToString(r.Trailer),
	}
}

func decodeHex(field, s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(strings.Join(strings.Fields(s), ""))
	if err != nil {
		return nil, fmt.Errorf("%w in %s: %v", ErrInvalidHex, field, err)
	}
	return b, nil
}
