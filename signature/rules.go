package signature

import "strings"

// defaultRules returns the built-in rule set. Order matters within each
// category: the first matching rule wins.
func defaultRules() map[Category][]Rule {
	return map[Category][]Rule{
		Images: {
			exact(TypeIcon, "\x00\x00\x01\x00"),
			exact(TypeIcon, "\x00\x00\x02\x00"), // cursor
			exact(TypeBMP, "BM"),
			exact(TypeGIF, "GIF87a"),
			exact(TypeGIF, "GIF89a"),
			masked(TypeWebP, "RIFF\x00\x00\x00\x00WEBPVP", "\xFF\xFF\xFF\xFF\x00\x00\x00\x00\xFF\xFF\xFF\xFF\xFF\xFF"),
			exact(TypePNG, "\x89PNG\x0D\x0A\x1A\x0A"),
			exact(TypeJPEG, "\xFF\xD8\xFF"),
			exact(TypePSD, "8BPS"),
		},
		Media: {
			exact(TypeWebM, "\x1A\x45\xDF\xA3"),
			exact(TypeAU, ".snd"),
			masked(TypeAIFF, "FORM\x00\x00\x00\x00AIFF", "\xFF\xFF\xFF\xFF\x00\x00\x00\x00\xFF\xFF\xFF\xFF"),
			exact(TypeMP3, "\xFF\xFB"),
			exact(TypeMP3, "ID3"),
			exact(TypeOgg, "OggS\x00"),
			exact(TypeMIDI, "MThd\x00\x00\x00\x06"),
			masked(TypeAVI, "RIFF\x00\x00\x00\x00AVI ", "\xFF\xFF\xFF\xFF\x00\x00\x00\x00\xFF\xFF\xFF\xFF"),
			masked(TypeWAVE, "RIFF\x00\x00\x00\x00WAVE", "\xFF\xFF\xFF\xFF\x00\x00\x00\x00\xFF\xFF\xFF\xFF"),
		},
		Fonts: {
			// Embedded OpenType carries its magic at offset 34.
			masked(TypeEOT, strings.Repeat("\x00", 34)+"LP", strings.Repeat("\x00", 34)+"\xFF\xFF"),
			exact(TypeTTF, "\x00\x01\x00\x00"),
			exact(TypeOFF, "OTTO"),
			exact(TypeTTC, "ttcf"),
			exact(TypeWOFF, "wOFF"),
		},
		Archives: {
			exact(TypeGZIP, "\x1F\x8B\x08"),
			exact(TypeZIP, "PK\x03\x04"),
			exact(TypeRAR, "Rar \x1A\x07\x00"),
		},
		Text: {
			exact(TypePS, "%!PS-Adobe"),
			exact(TypePlain, "\xFF\xFE"),
			exact(TypePlain, "\xFE\xFF"),
			exact(TypePlain, "\xEF\xBB\xBF"),
		},
		Unknown: {
			html("<!DOCTYPE HTML", "\xFF\xFF\xDF\xDF\xDF\xDF\xDF\xDF\xDF\xFF\xDF\xDF\xDF\xDF"),
			html("<HTML", "\xFF\xDF\xDF\xDF\xDF"),
			html("<HEAD", "\xFF\xDF\xDF\xDF\xDF"),
			html("<SCRIPT", "\xFF\xDF\xDF\xDF\xDF\xDF\xDF"),
			html("<IFRAME", "\xFF\xDF\xDF\xDF\xDF\xDF\xDF"),
			html("<H1", "\xFF\xDF\xFF"),
			html("<DIV", "\xFF\xDF\xDF\xDF"),
			html("<FONT", "\xFF\xDF\xDF\xDF\xDF"),
			html("<TABLE", "\xFF\xDF\xDF\xDF\xDF\xDF"),
			html("<A", "\xFF\xDF"),
			html("<STYLE", "\xFF\xDF\xDF\xDF\xDF\xDF"),
			html("<TITLE", "\xFF\xDF\xDF\xDF\xDF\xDF"),
			html("<B", "\xFF\xDF"),
			html("<BODY", "\xFF\xDF\xDF\xDF\xDF"),
			html("<BR", "\xFF\xDF\xDF"),
			html("<P", "\xFF\xDF"),
			html("<!--", "\xFF\xFF\xFF\xFF"),
			{
				Type:    TypeXML,
				Pattern: []byte("<?xml"),
				Mask:    []byte("\xFF\xFF\xFF\xFF\xFF"),
				Ignore:  Whitespace,
			},
			exact(TypePDF, "%PDF"),
		},
		Misc: {
			exact(labelWindowsExecutable, "MZ"),
			exact(labelExecLinkable, "\x7FELF"),
		},
	}
}
