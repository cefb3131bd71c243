// Package matcher implements the repeated-suffix predicate used in the
// search hot path.
package matcher

// Match reports whether address ends in a run of one repeated hex digit at
// least minRun long. The run must end at the last character. On success it
// returns the digit and the full length of the run, which may exceed minRun.
//
// Match does not allocate.
func Match(address []byte, minRun int) (digit byte, run int, ok bool) {
	n := len(address)
	if minRun < 1 || minRun > n {
		return 0, 0, false
	}

	last := address[n-1]
	if !isHexDigit(last) {
		return 0, 0, false
	}

	run = 1
	for i := n - 2; i >= 0 && address[i] == last; i-- {
		run++
	}

	if run < minRun {
		return 0, 0, false
	}
	return last, run, true
}

// Matches is Match without the details
func Matches(address []byte, minRun int) bool {
	_, _, ok := Match(address, minRun)
	return ok
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}
