package fib

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestN(t *testing.T) {
	cases := []struct {
		n    int
		want uint64
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{2, 1},
		{5, 5},
		{10, 55},
		{20, 6765},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, N(tc.n), "fib(%d)", tc.n)
	}
}
