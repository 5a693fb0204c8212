package main

// largestFitting returns the largest n in [lo, hi] for which fits(n) holds,
// assuming fits is true up to some point and false after it. It returns
// lo-1 when even lo does not fit. fits is called O(log(hi-lo)) times.
func largestFitting(lo, hi int, fits func(n int) bool) int {
	best := lo - 1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		if fits(mid) {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}
