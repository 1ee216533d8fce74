package core

// ClampIndex limits i to the valid indices [0, n-1] of an n-element slice.
// n must be positive.
func ClampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
