package signature

// Stage is one step of the sniffing pipeline. Sniff returns the detected
// type and true when the stage claims the header.
type Stage struct {
	Name  string
	Sniff func(header []byte, t *Table) (string, bool)
}

// Stage names, in pipeline order.
const (
	StageEmpty    = "empty"
	StageImages   = "images"
	StageMedia    = "media"
	StageFonts    = "fonts"
	StageArchives = "archives"
	StageText     = "text"
	StageUnknown  = "unknown"
	StageMisc     = "misc"
	StageFallback = "fallback"
)

// Match is the outcome of a pipeline run.
type Match struct {
	// Type is the canonical MIME type, or TypeEmpty for an empty header.
	Type string

	// Stage names the stage that produced Type.
	Stage string
}

var stages = []Stage{
	{Name: StageEmpty, Sniff: sniffEmpty},
	{Name: StageImages, Sniff: sniffCategory(Images)},
	{Name: StageMedia, Sniff: sniffMedia},
	{Name: StageFonts, Sniff: sniffCategory(Fonts)},
	{Name: StageArchives, Sniff: sniffCategory(Archives)},
	{Name: StageText, Sniff: sniffText},
	{Name: StageUnknown, Sniff: sniffCategory(Unknown)},
	{Name: StageMisc, Sniff: sniffCategory(Misc)},
}

// Stages returns the pipeline stages in evaluation order, without the
// fallback.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages)
	return out
}

// StageNames returns the names of every stage a Match can report.
func StageNames() []string {
	names := make([]string, 0, len(stages)+1)
	for _, s := range stages {
		names = append(names, s.Name)
	}
	return append(names, StageFallback)
}

// Sniff classifies header against t, or against DefaultTable when t is nil.
// Only the first MaxHeaderSize bytes are inspected. Sniff always returns a
// result: headers no stage claims are reported as TypeOctetStream.
func Sniff(header []byte, t *Table) Match {
	if t == nil {
		t = DefaultTable()
	}
	if len(header) > MaxHeaderSize {
		header = header[:MaxHeaderSize]
	}
	for _, s := range stages {
		if typ, ok := s.Sniff(header, t); ok {
			return Match{Type: Canonical(typ), Stage: s.Name}
		}
	}
	return Match{Type: TypeOctetStream, Stage: StageFallback}
}

func sniffEmpty(header []byte, _ *Table) (string, bool) {
	if len(header) == 0 {
		return TypeEmpty, true
	}
	return "", false
}

func sniffCategory(c Category) func([]byte, *Table) (string, bool) {
	return func(header []byte, t *Table) (string, bool) {
		return t.match(c, header)
	}
}

func sniffMedia(header []byte, t *Table) (string, bool) {
	if typ, ok := t.match(Media, header); ok {
		return typ, true
	}
	if MatchMP4(header) {
		return TypeMP4, true
	}
	return "", false
}

// sniffText rejects a structural text match when the header holds binary
// bytes. The veto looks at the whole header, so once it fires no text rule
// can match and the pipeline moves on.
func sniffText(header []byte, t *Table) (string, bool) {
	for _, r := range t.Rules(Text) {
		if !r.Match(header) {
			continue
		}
		if HasBinaryData(header) {
			continue
		}
		return r.Type, true
	}
	return "", false
}
