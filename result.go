package filesniff

import (
	"io"
	"sync"

	"github.com/gobwas/glob"

	"github.com/gobeaver/filesniff/signature"
)

// EmptyResource is the type reported for a source with no bytes. It is not
// a MIME type.
const EmptyResource = signature.TypeEmpty

// Result is a resolved classification. It is computed once and never
// changes; every query is a lookup.
type Result struct {
	typ   string
	stage string
	caps  signature.Capability
}

// Classify sniffs header against the built-in signature table.
func Classify(header []byte) *Result {
	return ClassifyWith(header, nil)
}

// ClassifyWith sniffs header against table. A nil table means the built-in
// one.
func ClassifyWith(header []byte, table *signature.Table) *Result {
	return newResult(signature.Sniff(header, table))
}

// DetectFile classifies the file at path.
func DetectFile(path string) (*Result, error) {
	header, err := ReadFileHeader(path)
	if err != nil {
		return nil, err
	}
	return Classify(header), nil
}

// DetectReader classifies an open stream. The stream's cursor is left where
// it was.
func DetectReader(rs io.ReadSeeker) (*Result, error) {
	header, err := ReadHeaderAt(rs)
	if err != nil {
		return nil, err
	}
	return Classify(header), nil
}

func newResult(m signature.Match) *Result {
	return &Result{
		typ:   m.Type,
		stage: m.Stage,
		caps:  signature.Capabilities(m.Type),
	}
}

// Type returns the detected MIME type, or EmptyResource.
func (r *Result) Type() string {
	return r.typ
}

// Stage returns the name of the pipeline stage that produced the type.
func (r *Result) Stage() string {
	return r.stage
}

// String implements fmt.Stringer
func (r *Result) String() string {
	return r.typ
}

// IsEmpty reports whether the source had no bytes.
func (r *Result) IsEmpty() bool {
	return r.caps.Has(signature.CapEmpty)
}

// IsText reports whether the type is plain text or PostScript.
func (r *Result) IsText() bool {
	return r.caps.Has(signature.CapText)
}

// IsFont reports whether the type is a font format.
func (r *Result) IsFont() bool {
	return r.caps.Has(signature.CapFont)
}

// IsZip reports whether the type is zip or a "+zip" structured type.
func (r *Result) IsZip() bool {
	return r.caps.Has(signature.CapZip)
}

// IsArchive reports whether the type is a zip, gzip or rar archive.
func (r *Result) IsArchive() bool {
	return r.caps.Has(signature.CapArchive)
}

// IsScriptable reports whether the type can carry scripts: HTML, PDF and
// PostScript.
func (r *Result) IsScriptable() bool {
	return r.caps.Has(signature.CapScriptable)
}

// Matches reports whether the type matches any of the glob patterns, such as
// "image/*" or "*/*+zip". Patterns that do not compile never match.
func (r *Result) Matches(patterns ...string) bool {
	for _, p := range patterns {
		g, err := compileTypeGlob(p)
		if err != nil {
			continue
		}
		if g.Match(r.typ) {
			return true
		}
	}
	return false
}

var typeGlobs sync.Map // pattern -> glob.Glob

func compileTypeGlob(pattern string) (glob.Glob, error) {
	if g, ok := typeGlobs.Load(pattern); ok {
		return g.(glob.Glob), nil
	}
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, err
	}
	typeGlobs.Store(pattern, g)
	return g, nil
}
