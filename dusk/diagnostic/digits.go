package diagnostic

var debruijn = [32]uint32{
	0, 9, 1, 10, 13, 21, 2, 29, 11, 14, 16, 18, 22, 25, 3, 30,
	8, 12, 20, 28, 15, 17, 24, 7, 19, 27, 23, 6, 26, 5, 4, 31,
}

var powersOf10 = [...]uint32{
	1, 10, 100, 1000, 10000, 100000, 1000000, 10000000, 100000000, 1000000000,
}

// log2 returns floor(log2(v)). v must not be zero.
func log2(v uint32) uint32 {
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	return debruijn[(v*0x07C4ACDD)>>27]
}

// log10 returns floor(log10(v)). v must not be zero.
func log10(v uint32) uint32 {
	// 1233/4096 approximates log10(2)
	t := (log2(v) + 1) * 1233 >> 12
	if v < powersOf10[t] {
		t--
	}
	return t
}

// Digits returns the number of decimal digits in a line number. Lines are
// numbered from 1; asking for line 0 is a programming error.
func Digits(line int) int {
	if line <= 0 || uint64(line) > 0xFFFFFFFF {
		panic("diagnostic: line number out of range")
	}
	return int(log10(uint32(line))) + 1
}
