package signature

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffSamples(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		stage  string
	}{
		// images
		{"windows icon", "\x00\x00\x01\x00", TypeIcon, StageImages},
		{"windows cursor", "\x00\x00\x02\x00", TypeIcon, StageImages},
		{"bitmap", "BM", TypeBMP, StageImages},
		{"gif87a", "GIF87a", TypeGIF, StageImages},
		{"gif89a", "GIF89a", TypeGIF, StageImages},
		{"webp", "RIFF\x00\x00\x00\x00WEBPVP", TypeWebP, StageImages},
		{"png", "\x89PNG\x0D\x0A\x1A\x0A", TypePNG, StageImages},
		{"jpeg", "\xFF\xD8\xFF", TypeJPEG, StageImages},
		{"photoshop", "8BPS", TypePSD, StageImages},

		// media
		{"webm", "\x1A\x45\xDF\xA3", TypeWebM, StageMedia},
		{"basic audio", ".snd", TypeAU, StageMedia},
		{"aiff", "FORM\x00\x00\x00\x00AIFF", TypeAIFF, StageMedia},
		{"mp3", "\xFF\xFB", TypeMP3, StageMedia},
		{"mp3 id3", "ID3", TypeMP3, StageMedia},
		{"ogg", "OggS\x00", TypeOgg, StageMedia},
		{"midi", "MThd\x00\x00\x00\x06", TypeMIDI, StageMedia},
		{"avi", "RIFF\x00\x00\x00\x00AVI\x20", TypeAVI, StageMedia},
		{"wave", "RIFF\x00\x00\x00\x00WAVE", TypeWAVE, StageMedia},
		{"wave with size", "RIFF\x24\x08\x00\x00WAVEfmt ", TypeWAVE, StageMedia},
		{
			"mp4",
			"\x00\x00\x00\x18ftypisom\x00\x00\x02\x00isommp41",
			TypeMP4, StageMedia,
		},

		// fonts
		{"embedded opentype", strings.Repeat("\x00", 34) + "LP", TypeEOT, StageFonts},
		{"truetype", "\x00\x01\x00\x00", TypeTTF, StageFonts},
		{"opentype", "OTTO", TypeOFF, StageFonts},
		{"truetype collection", "ttcf", TypeTTC, StageFonts},
		{"woff", "wOFF", TypeWOFF, StageFonts},

		// archives
		{"gzip", "\x1F\x8B\x08", TypeGZIP, StageArchives},
		{"zip", "PK\x03\x04", TypeZIP, StageArchives},
		{"rar", "Rar \x1A\x07\x00", TypeRAR, StageArchives},

		// text
		{"postscript", "%!PS-Adobe", TypePS, StageText},
		{"utf16 little endian bom", "\xFF\xFE", TypePlain, StageText},
		{"utf16 big endian bom", "\xFE\xFF", TypePlain, StageText},
		{"utf8 bom", "\xEF\xBB\xBF", TypePlain, StageText},
		{"utf8 bom with text", "\xEF\xBB\xBFhello\r\n\tworld", TypePlain, StageText},

		// executables
		{"windows executable", "MZ", TypeMSDownload, StageMisc},
		{"elf", "\x7FELF", TypeOctetStream, StageMisc},

		// markup and documents
		{"pdf", "%PDF", TypePDF, StageUnknown},
		{"doctype", "<!DOCTYPE html>", TypeHTML, StageUnknown},
		{"html tag", "<html>", TypeHTML, StageUnknown},
		{"head tag", "<head>", TypeHTML, StageUnknown},
		{"script tag", "<script>", TypeHTML, StageUnknown},
		{"iframe tag", "<iframe>", TypeHTML, StageUnknown},
		{"h1 tag", "<h1>", TypeHTML, StageUnknown},
		{"div tag", "<div>", TypeHTML, StageUnknown},
		{"font tag", "<font>", TypeHTML, StageUnknown},
		{"table tag", "<table>", TypeHTML, StageUnknown},
		{"a tag", "<a>", TypeHTML, StageUnknown},
		{"style tag", "<style>", TypeHTML, StageUnknown},
		{"title tag", "<title>", TypeHTML, StageUnknown},
		{"b tag", "<b>", TypeHTML, StageUnknown},
		{"body tag", "<body>", TypeHTML, StageUnknown},
		{"br tag", "<br>", TypeHTML, StageUnknown},
		{"p tag", "<p>", TypeHTML, StageUnknown},
		{"comment", "<!-- ", TypeHTML, StageUnknown},
		{"xml", "<?xml", TypeXML, StageUnknown},
		{"indented html", "\n\t  <HTML lang=\"en\">", TypeHTML, StageUnknown},
		{"indented xml", "\r\n<?xml version=\"1.0\"?>", TypeXML, StageUnknown},
		{"mixed case doctype", "<!doctype HTML >", TypeHTML, StageUnknown},

		// fallback
		{"incrementing bytes", "\x00\x01\x02\x03\x04\x05\x06\x07\x08\x09", TypeOctetStream, StageFallback},
		{"plain ascii", "just some words", TypeOctetStream, StageFallback},
		{"unterminated tag", "<htmlx>", TypeOctetStream, StageFallback},
		{"pdf after whitespace", " %PDF", TypeOctetStream, StageFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Sniff([]byte(tt.header), nil)
			assert.Equal(t, tt.want, m.Type)
			assert.Equal(t, tt.stage, m.Stage)
		})
	}
}

func TestSniffEmpty(t *testing.T) {
	for _, header := range [][]byte{nil, {}} {
		m := Sniff(header, nil)
		assert.Equal(t, TypeEmpty, m.Type)
		assert.Equal(t, StageEmpty, m.Stage)
	}
}

func TestSniffTextVeto(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"utf8 bom with nul", "\xEF\xBB\xBFhello\x00world"},
		{"utf16 le text", "\xFF\xFEh\x00i\x00"},
		{"utf16 be text", "\xFE\xFF\x00h\x00i"},
		{"postscript with control byte", "%!PS-Adobe-3.0\n\x01"},
		{"control byte near the end of the prefix", "\xEF\xBB\xBF" + strings.Repeat("a", 400) + "\x1c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Sniff([]byte(tt.header), nil)
			assert.NotEqual(t, TypePlain, m.Type)
			assert.NotEqual(t, TypePS, m.Type)
			assert.Equal(t, TypeOctetStream, m.Type)
			assert.Equal(t, StageFallback, m.Stage)
		})
	}

	t.Run("control byte past the prefix is not seen", func(t *testing.T) {
		header := "\xEF\xBB\xBF" + strings.Repeat("a", MaxHeaderSize) + "\x00"
		m := Sniff([]byte(header), nil)
		assert.Equal(t, TypePlain, m.Type)
	})
}

func TestSniffMP4RejectsMalformedBoxes(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"size not multiple of four", "\x00\x00\x00\x15ftypmp42\x00\x00\x00\x00mp41\x00"},
		{"size exceeds header", "\x00\x00\x00\x40ftypmp42\x00\x00\x00\x00mp41"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, TypeMP4, Sniff([]byte(tt.header), nil).Type)
		})
	}
}

func TestSniffOnlyReadsPrefix(t *testing.T) {
	t.Run("signature inside prefix", func(t *testing.T) {
		header := append([]byte("\x89PNG\x0D\x0A\x1A\x0A"), bytes.Repeat([]byte{0xAB}, 4096)...)
		assert.Equal(t, TypePNG, Sniff(header, nil).Type)
	})

	t.Run("tag straddling the prefix boundary", func(t *testing.T) {
		header := strings.Repeat(" ", MaxHeaderSize-1) + "<html>"
		assert.Equal(t, TypeOctetStream, Sniff([]byte(header), nil).Type)
	})
}

func TestSniffIsDeterministic(t *testing.T) {
	header := []byte("<!DOCTYPE html><html></html>")
	first := Sniff(header, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Sniff(header, nil))
	}
}

func TestSniffOrder(t *testing.T) {
	t.Run("earlier category wins", func(t *testing.T) {
		// A RIFF header naming WEBP is claimed by images before media sees it.
		m := Sniff([]byte("RIFF\x00\x00\x00\x00WEBPVP8 "), nil)
		assert.Equal(t, TypeWebP, m.Type)
	})

	t.Run("earlier rule wins within a category", func(t *testing.T) {
		table := MustTable(map[Category][]Rule{
			Misc: {
				exact("application/x-first", "AB"),
				exact("application/x-second", "ABC"),
			},
		})
		m := Sniff([]byte("ABCD"), table)
		assert.Equal(t, "application/x-first", m.Type)
		assert.Equal(t, StageMisc, m.Stage)
	})

	t.Run("custom table falls back", func(t *testing.T) {
		table := MustTable(nil)
		m := Sniff([]byte("\x89PNG\x0D\x0A\x1A\x0A"), table)
		assert.Equal(t, TypeOctetStream, m.Type)
		assert.Equal(t, StageFallback, m.Stage)
	})

	t.Run("mp4 scanner runs with an empty media category", func(t *testing.T) {
		table := MustTable(nil)
		m := Sniff([]byte("\x00\x00\x00\x14ftypmp42\x00\x00\x00\x00mp41"), table)
		assert.Equal(t, TypeMP4, m.Type)
	})
}

func TestStageNames(t *testing.T) {
	assert.Equal(t, []string{
		StageEmpty, StageImages, StageMedia, StageFonts, StageArchives,
		StageText, StageUnknown, StageMisc, StageFallback,
	}, StageNames())

	stages := Stages()
	require.Len(t, stages, 8)
	stages[0].Name = "changed"
	assert.Equal(t, StageEmpty, Stages()[0].Name)
}

func TestCanonical(t *testing.T) {
	assert.Equal(t, TypeMSDownload, Canonical("WINDOWS EXECUTABLE"))
	assert.Equal(t, TypeOctetStream, Canonical("EXEC_LINKABLE"))
	assert.Equal(t, TypePNG, Canonical(TypePNG))
}

func TestCapabilities(t *testing.T) {
	tests := []struct {
		typ  string
		want Capability
	}{
		{TypeEmpty, CapEmpty},
		{TypePlain, CapText},
		{TypePS, CapText | CapScriptable},
		{TypeHTML, CapScriptable},
		{TypePDF, CapScriptable},
		{TypeZIP, CapZip | CapArchive},
		{TypeRAR, CapArchive},
		{TypeGZIP, CapArchive},
		{TypeWOFF, CapFont},
		{TypeEOT, CapFont},
		{TypeTTF, CapFont},
		{"application/vnd.ms-opentype", CapFont},
		{"application/vnd.etsy.app+zip", CapZip},
		{TypePNG, 0},
		{TypeOctetStream, 0},
		{TypeXML, 0},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, tt.want, Capabilities(tt.typ))
		})
	}

	assert.True(t, (CapText | CapScriptable).Has(CapText))
	assert.False(t, CapText.Has(CapText|CapScriptable))
}
