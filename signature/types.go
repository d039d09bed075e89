package signature

import "strings"

// Result types reported by the built-in table.
const (
	TypeEmpty       = "inode/x-empty"
	TypeOctetStream = "application/octet-stream"
	TypeMSDownload  = "application/x-msdownload"

	TypeIcon = "image/x-icon"
	TypeBMP  = "image/bmp"
	TypeGIF  = "image/gif"
	TypeWebP = "image/webp"
	TypePNG  = "image/png"
	TypeJPEG = "image/jpeg"
	TypePSD  = "application/psd"

	TypeWebM = "video/webm"
	TypeAU   = "audio/basic"
	TypeAIFF = "audio/aiff"
	TypeMP3  = "audio/mpeg"
	TypeOgg  = "application/ogg"
	TypeMIDI = "audio/midi"
	TypeAVI  = "video/avi"
	TypeWAVE = "audio/wave"
	TypeMP4  = "video/mp4"

	TypeEOT   = "application/vnd.ms-fontobject"
	TypeTTF   = "application/font-ttf"
	TypeOFF   = "application/font-off"
	TypeTTC   = "application/x-font-truetype-collection"
	TypeWOFF  = "application/font-woff"
	TypeGZIP  = "application/x-gzip"
	TypeZIP   = "application/zip"
	TypeRAR   = "application/x-rar-compressed"
	TypePS    = "application/postscript"
	TypePlain = "text/plain"
	TypeHTML  = "text/html"
	TypeXML   = "text/xml"
	TypePDF   = "application/pdf"
)

// Labels reported by the misc category. They are not MIME types and never
// leave this package: Canonical maps them to registered types.
const (
	labelWindowsExecutable = "WINDOWS EXECUTABLE"
	labelExecLinkable      = "EXEC_LINKABLE"
)

var canonicalTypes = map[string]string{
	labelWindowsExecutable: TypeMSDownload,
	labelExecLinkable:      TypeOctetStream,
}

// Canonical maps internal labels to the MIME type reported to callers.
// Any other type is returned unchanged.
func Canonical(typ string) string {
	if mapped, ok := canonicalTypes[typ]; ok {
		return mapped
	}
	return typ
}

// Capability is a set of traits attached to a result type.
type Capability uint8

const (
	CapEmpty Capability = 1 << iota
	CapText
	CapFont
	CapZip
	CapArchive
	CapScriptable
)

// Has reports whether every trait in f is present.
func (c Capability) Has(f Capability) bool {
	return c&f == f
}

var capabilities = map[string]Capability{
	TypeEmpty: CapEmpty,

	TypePlain: CapText,
	TypePS:    CapText | CapScriptable,

	TypeTTF:                       CapFont,
	"application/font-cff":        CapFont,
	"application/font-otf":        CapFont,
	TypeOFF:                       CapFont,
	"application/font-sntf":       CapFont,
	"application/vnd.ms-opentype": CapFont,
	TypeWOFF:                      CapFont,
	TypeEOT:                       CapFont,
	TypeTTC:                       CapFont,

	TypeZIP:  CapZip | CapArchive,
	TypeRAR:  CapArchive,
	TypeGZIP: CapArchive,

	TypeHTML: CapScriptable,
	TypePDF:  CapScriptable,
}

// Capabilities returns the traits of typ. Any type with a "+zip" structured
// suffix is a zip as well.
func Capabilities(typ string) Capability {
	c := capabilities[typ]
	if strings.HasSuffix(typ, "+zip") {
		c |= CapZip
	}
	return c
}
