package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// PadOrTruncate fills dst with the leading samples of src and zeroes the
// remainder. The effective length is len(dst): longer sources are cut,
// shorter ones are zero-padded at the end. It returns the number of samples
// taken from src.
func PadOrTruncate(dst, src []float64) int {
	n := CopyInto(dst, src)
	Zero(dst[n:])
	return n
}

// KahanSum returns the compensated sum of data.
func KahanSum(data []float64) float64 {
	var sum, c float64
	for _, x := range data {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}
	return sum
}
