package fib

// N returns the nth Fibonacci number using iteration. Non-positive n yields 0.
// Results are exact up to n=93; larger n wraps around uint64.
func N(n int) uint64 {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	var prev, curr uint64 = 0, 1
	for i := 2; i <= n; i++ {
		prev, curr = curr, prev+curr
	}
	return curr
}
