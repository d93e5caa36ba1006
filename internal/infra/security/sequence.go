package security

// maxRun is the run length at which a repetition or sequence rejects.
const maxRun = 3

// Alphabets for sequence detection. Sequences only continue within a single
// alphabet; a letter followed by a digit never extends a run.
const (
	alphabetNone = iota
	alphabetLower
	alphabetUpper
	alphabetDigit
)

func classify(r rune) (alphabet, pos, size int) {
	switch {
	case r >= 'a' && r <= 'z':
		return alphabetLower, int(r - 'a'), 26
	case r >= 'A' && r <= 'Z':
		return alphabetUpper, int(r - 'A'), 26
	case r >= '0' && r <= '9':
		return alphabetDigit, int(r - '0'), 10
	default:
		return alphabetNone, 0, 0
	}
}

// containsRun reports whether the string contains a run of length >= maxRun
// of identical characters, or of strictly ascending or descending characters
// within one alphabet with wraparound (z->a, 9->0 and the reverse).
//
// Single forward pass: three hypotheses (repetition, ascending, descending)
// are tracked simultaneously as run counters ending at the current character.
// A character can extend both the ascending and descending hypothesis started
// from the previous pair, so the counters are independent; a counter drops
// back to 1 the instant its relation breaks.
func containsRun(s string) bool {
	runes := []rune(s)
	if len(runes) < maxRun {
		return false
	}

	repeat, ascending, descending := 1, 1, 1
	prevAlphabet, prevPos, prevSize := classify(runes[0])

	for i := 1; i < len(runes); i++ {
		curAlphabet, curPos, curSize := classify(runes[i])

		if runes[i] == runes[i-1] {
			repeat++
		} else {
			repeat = 1
		}

		sameAlphabet := curAlphabet != alphabetNone && curAlphabet == prevAlphabet

		if sameAlphabet && curPos == (prevPos+1)%prevSize {
			ascending++
		} else {
			ascending = 1
		}

		if sameAlphabet && curPos == (prevPos-1+prevSize)%prevSize {
			descending++
		} else {
			descending = 1
		}

		if repeat >= maxRun || ascending >= maxRun || descending >= maxRun {
			return true
		}

		prevAlphabet, prevPos, prevSize = curAlphabet, curPos, curSize
	}

	return false
}
