package core

import "testing"

func TestClampIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-3, 10, 0},
		{0, 10, 0},
		{4, 10, 4},
		{9, 10, 9},
		{12, 10, 9},
		{5, 1, 0},
	}
	for _, tc := range tests {
		if got := ClampIndex(tc.i, tc.n); got != tc.want {
			t.Errorf("ClampIndex(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}
