package signature

import (
	"bytes"
	"encoding/binary"
)

var (
	ftypBox  = []byte("ftyp")
	mp4Brand = []byte("mp4")
)

// MatchMP4 reports whether header starts with an ISO base media "ftyp" box
// that names an MP4 brand, either as the major brand or as one of the
// compatible brands listed after the minor version.
func MatchMP4(header []byte) bool {
	if len(header) < 12 {
		return false
	}

	boxSize := binary.BigEndian.Uint32(header[0:4])
	if uint64(len(header)) < uint64(boxSize) || boxSize%4 != 0 {
		return false
	}

	if !bytes.Equal(header[4:8], ftypBox) {
		return false
	}

	if bytes.Equal(header[8:11], mp4Brand) {
		return true
	}

	// Compatible brands start after the 4-byte minor version.
	for i := 16; i < int(boxSize) && i+len(mp4Brand) <= len(header); i += 4 {
		if bytes.Equal(header[i:i+len(mp4Brand)], mp4Brand) {
			return true
		}
	}
	return false
}
