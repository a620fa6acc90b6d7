package format

// Align8 returns n aligned up to the next 8-byte boundary.
// Records are 8-byte aligned so each one starts on a u64 boundary.
//
// Example:
//
//	Align8(1)  = 8
//	Align8(8)  = 8
//	Align8(9)  = 16
func Align8(n int) int {
	return (n + recordAlignmentMask) & ^recordAlignmentMask
}
