package signature

// MatchPattern reports whether header matches pattern under mask, starting at
// the first header byte that is not a member of ignore.
//
// An empty pattern or mask never matches, and neither does a header that is
// too short to hold the whole mask after the skipped prefix.
func MatchPattern(header, pattern, mask []byte, ignore ByteSet) bool {
	return matchMasked(header, pattern, mask, nil, ignore, ByteSet{})
}

// MatchHTMLPattern is MatchPattern for tag rules. The mask is longer than the
// pattern; every byte past the pattern, masked by the remaining mask bytes,
// must be a member of terminators. With no terminators it behaves like
// MatchPattern over the pattern-length part of the mask.
func MatchHTMLPattern(header, pattern, mask []byte, ignore, terminators ByteSet) bool {
	if len(mask) < len(pattern) {
		return false
	}
	return matchMasked(header, pattern, mask[:len(pattern)], mask[len(pattern):], ignore, terminators)
}

func matchMasked(header, pattern, mask, trailer []byte, ignore, terminators ByteSet) bool {
	if len(pattern) == 0 || len(mask) == 0 || len(pattern) != len(mask) {
		return false
	}

	s := 0
	if !ignore.Empty() {
		for s < len(header) && ignore.Has(header[s]) {
			s++
		}
	}

	// The trailing bytes take part in the length check even when there is
	// no terminator set to compare them against.
	if len(header)-s < len(mask)+len(trailer) {
		return false
	}

	for i, p := range pattern {
		if header[s+i]&mask[i] != p {
			return false
		}
	}

	if terminators.Empty() {
		return true
	}

	s += len(pattern)
	for i, m := range trailer {
		if !terminators.Has(header[s+i] & m) {
			return false
		}
	}
	return true
}
