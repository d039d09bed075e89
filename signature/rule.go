package signature

import (
	"errors"
	"fmt"
)

// Rule validation errors
var (
	ErrEmptyPattern      = errors.New("pattern and mask must not be empty")
	ErrPatternMaskLength = errors.New("pattern and mask lengths differ")
	ErrTrailerWithoutSet = errors.New("trailer mask requires a terminator set")
	ErrMissingType       = errors.New("rule has no result type")
)

// Byte classes shared by the built-in rules.
const (
	whitespaceBytes     = "\x09\x0A\x0C\x0D\x20"
	tagTerminatingBytes = "\x20\x3E"
)

var (
	// Whitespace is the set of bytes an HTML or XML rule may skip before its pattern.
	Whitespace = NewByteSet(whitespaceBytes)

	// TagTerminators is the set of bytes allowed right after an HTML tag name.
	TagTerminators = NewByteSet(tagTerminatingBytes)
)

// ByteSet is a membership set over the 256 byte values.
// The zero value is the empty set.
type ByteSet struct {
	members [256]bool
	size    int
}

// NewByteSet returns a set containing every byte of s.
func NewByteSet(s string) ByteSet {
	var set ByteSet
	for i := 0; i < len(s); i++ {
		if !set.members[s[i]] {
			set.members[s[i]] = true
			set.size++
		}
	}
	return set
}

// Has reports whether b is a member of the set.
func (s ByteSet) Has(b byte) bool {
	return s.members[b]
}

// Empty reports whether the set has no members.
func (s ByteSet) Empty() bool {
	return s.size == 0
}

// Len returns the number of members.
func (s ByteSet) Len() int {
	return s.size
}

// Bytes returns the members in ascending order.
func (s ByteSet) Bytes() []byte {
	out := make([]byte, 0, s.size)
	for b := 0; b < len(s.members); b++ {
		if s.members[b] {
			out = append(out, byte(b))
		}
	}
	return out
}

// Rule maps a masked byte pattern to a result type.
//
// Pattern and Mask always have the same length. HTML rules additionally carry
// a Trailer mask and a Terminators set: every header byte following the
// pattern, masked by the matching Trailer byte, must belong to Terminators.
type Rule struct {
	// Type is the result reported when the rule matches.
	Type string

	// Pattern is compared against the masked header bytes.
	Pattern []byte

	// Mask is ANDed with each header byte before comparison.
	Mask []byte

	// Ignore lists bytes that may be skipped before the pattern starts.
	Ignore ByteSet

	// Terminators lists the bytes accepted after the pattern (HTML rules only).
	Terminators ByteSet

	// Trailer masks the bytes checked against Terminators.
	Trailer []byte
}

// NewRule builds and validates a plain masked rule.
func NewRule(typ string, pattern, mask []byte, ignore ByteSet) (Rule, error) {
	r := Rule{Type: typ, Pattern: pattern, Mask: mask, Ignore: ignore}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// NewHTMLRule builds and validates a tag rule. The mask may be longer than
// the pattern; the extra bytes mask the positions that must hold a member of
// terminators.
func NewHTMLRule(typ string, pattern, mask []byte, ignore, terminators ByteSet) (Rule, error) {
	if len(mask) < len(pattern) {
		return Rule{}, &RuleError{
			Type: typ,
			Err:  fmt.Errorf("%w: pattern has %d bytes, mask has %d", ErrPatternMaskLength, len(pattern), len(mask)),
		}
	}
	r := Rule{
		Type:        typ,
		Pattern:     pattern,
		Mask:        mask[:len(pattern):len(pattern)],
		Ignore:      ignore,
		Terminators: terminators,
	}
	if len(mask) > len(pattern) {
		r.Trailer = mask[len(pattern):]
	}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// IsHTML reports whether the rule uses tag-terminator matching.
func (r Rule) IsHTML() bool {
	return !r.Terminators.Empty()
}

// Validate checks the structural invariants of the rule.
func (r Rule) Validate() error {
	if r.Type == "" {
		return &RuleError{Type: r.Type, Err: ErrMissingType}
	}
	if len(r.Pattern) == 0 || len(r.Mask) == 0 {
		return &RuleError{Type: r.Type, Err: ErrEmptyPattern}
	}
	if len(r.Pattern) != len(r.Mask) {
		return &RuleError{
			Type: r.Type,
			Err:  fmt.Errorf("%w: pattern has %d bytes, mask has %d", ErrPatternMaskLength, len(r.Pattern), len(r.Mask)),
		}
	}
	if len(r.Trailer) > 0 && r.Terminators.Empty() {
		return &RuleError{Type: r.Type, Err: ErrTrailerWithoutSet}
	}
	return nil
}

// Match reports whether the rule matches header. HTML rules are matched with
// MatchHTMLPattern semantics, all others with MatchPattern semantics.
func (r Rule) Match(header []byte) bool {
	if r.IsHTML() {
		return matchMasked(header, r.Pattern, r.Mask, r.Trailer, r.Ignore, r.Terminators)
	}
	return matchMasked(header, r.Pattern, r.Mask, nil, r.Ignore, ByteSet{})
}

// RuleError records a rule that failed validation.
type RuleError struct {
	// Category and Index locate the rule inside a table; Category is empty
	// when the rule was validated on its own.
	Category string
	Index    int
	Type     string
	Err      error
}

// Error implements the error interface
func (e *RuleError) Error() string {
	if e.Category != "" {
		return fmt.Sprintf("invalid %s rule #%d (%q): %v", e.Category, e.Index, e.Type, e.Err)
	}
	return fmt.Sprintf("invalid rule %q: %v", e.Type, e.Err)
}

// Unwrap returns the underlying error
func (e *RuleError) Unwrap() error {
	return e.Err
}

// IsRuleError reports whether err is a rule validation failure.
func IsRuleError(err error) bool {
	var ruleErr *RuleError
	return errors.As(err, &ruleErr)
}

// exact builds a rule whose mask keeps every bit of the pattern.
func exact(typ, pattern string) Rule {
	return masked(typ, pattern, fullMask(len(pattern)))
}

func masked(typ, pattern, mask string) Rule {
	return Rule{Type: typ, Pattern: []byte(pattern), Mask: []byte(mask)}
}

// html builds a tag rule: whitespace may precede it and one tag-terminating
// byte must follow it.
func html(pattern, mask string) Rule {
	return Rule{
		Type:        TypeHTML,
		Pattern:     []byte(pattern),
		Mask:        []byte(mask),
		Ignore:      Whitespace,
		Terminators: TagTerminators,
		Trailer:     []byte{0xFF},
	}
}

func fullMask(n int) string {
	mask := make([]byte, n)
	for i := range mask {
		mask[i] = 0xFF
	}
	return string(mask)
}
