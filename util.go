package huffman

// isBit reports whether ch is one of the two characters of a bit string.
func isBit(ch byte) bool {
	return ch == '0' || ch == '1'
}

// IsBitString returns true iff every byte of s is '0' or '1'.
func IsBitString(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isBit(s[i]) {
			return false
		}
	}
	return true
}
