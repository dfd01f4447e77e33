package bitpack

// ByteLen returns the number of bytes needed to hold count values of the
// given bit width.
func ByteLen(count, width int) int {
	return (count*width + 7) / 8
}

// Extract performs an O(1) random-access read of the width-bit value at
// the given index within a buffer produced by Writer (values packed
// back-to-back, MSB first, no padding between them). It does not require
// scanning from the start of the buffer, unlike Reader, which is why the
// fast-field value codec and the multivalued offset index use it directly
// instead of a sequential Reader.
func Extract(data []byte, width, index int) uint64 {
	if width == 0 {
		return 0
	}

	bitPos := index * width
	bytePos := bitPos / 8
	bitOffset := uint(bitPos % 8)

	// Load up to 16 bytes starting at bytePos into two left-aligned 64-bit
	// words so that bitOffset+width (at most 7+64=71 bits) always fits.
	var hi, lo uint64
	for i := 0; i < 8; i++ {
		if bytePos+i < len(data) {
			hi |= uint64(data[bytePos+i]) << uint(56-8*i)
		}
	}
	for i := 0; i < 8; i++ {
		if bytePos+8+i < len(data) {
			lo |= uint64(data[bytePos+8+i]) << uint(56-8*i)
		}
	}

	if bitOffset == 0 {
		if width == 64 {
			return hi
		}

		return hi >> uint(64-width)
	}

	// Shift the combined 128-bit window (hi:lo) left by bitOffset bits;
	// since width <= 64, the result's top `width` bits land entirely
	// within the shifted high word.
	shiftedHi := (hi << bitOffset) | (lo >> (64 - bitOffset))
	if width == 64 {
		return shiftedHi
	}

	return shiftedHi >> uint(64-width)
}
