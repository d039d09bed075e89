package signature

// binaryBytes are control bytes that do not occur in text. Tab, line feed,
// form feed and carriage return are excluded, as is ESC (0x1B).
var binaryBytes = NewByteSet(
	"\x00\x01\x02\x03\x04\x05\x06\x07\x08" +
		"\x0B" +
		"\x0E\x0F\x10\x11\x12\x13\x14\x15\x16\x17\x18\x19\x1A" +
		"\x1C\x1D\x1E\x1F",
)

// HasBinaryData reports whether header contains a byte that marks it as
// binary content.
func HasBinaryData(header []byte) bool {
	for _, b := range header {
		if binaryBytes.Has(b) {
			return true
		}
	}
	return false
}
