package plan

// bluesteinThreshold is the largest prime factor handled by the
// mixed-radix path. Lengths with a larger prime factor use Bluestein's
// chirp-z algorithm instead.
const bluesteinThreshold = 13

// factorize returns the prime factors of n in ascending order, with
// repetition. n must be >= 1; factorize(1) returns nil.
func factorize(n int) []int {
	var factors []int
	for n%2 == 0 {
		factors = append(factors, 2)
		n /= 2
	}
	for d := 3; d*d <= n; d += 2 {
		for n%d == 0 {
			factors = append(factors, d)
			n /= d
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// maxFactor returns the largest entry of a non-empty ascending factor
// chain, or 1 for an empty chain.
func maxFactor(factors []int) int {
	if len(factors) == 0 {
		return 1
	}
	return factors[len(factors)-1]
}

// smallestPrimeFactor returns the smallest prime factor of n >= 2.
func smallestPrimeFactor(n int) int {
	if n%2 == 0 {
		return 2
	}
	for d := 3; d*d <= n; d += 2 {
		if n%d == 0 {
			return d
		}
	}
	return n
}

// nextPowerOf2 returns the smallest power of two >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
