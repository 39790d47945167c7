package scopes

// Matches reports whether a colon-segmented pattern matches a target path.
//
// Matching rules:
//   - a literal pattern segment must equal the target segment (case-insensitive)
//   - "*" matches exactly one non-empty target segment
//   - a trailing "**" matches the remainder of the target, any depth
//     including zero
//   - lengths must agree unless the pattern ends with "**"
//
// Both inputs are canonicalized before comparison, so raw strings are safe.
func Matches(pattern, target string) bool {
	_, ok := Specificity(pattern, target)
	return ok
}

// Specificity performs the same match as Matches and additionally returns
// the specificity score of a successful match: the number of literal
// (non-wildcard) pattern segments that matched. Higher scores denote more
// specific patterns and take precedence during evaluation.
func Specificity(pattern, target string) (int, bool) {
	patSegs := splitSegments(pattern)
	tgtSegs := splitSegments(target)

	if len(patSegs) == 0 || len(tgtSegs) == 0 {
		return 0, false
	}

	score := 0
	for i, seg := range patSegs {
		if seg == SubtreeWildcard {
			// Only legal as the final segment; a misplaced "**" never
			// survives canonical parsing, so treat it as non-matching here.
			if i != len(patSegs)-1 {
				return 0, false
			}
			return score, true
		}

		// Pattern is longer than the target.
		if i >= len(tgtSegs) {
			return 0, false
		}

		if seg == SegmentWildcard {
			continue
		}
		if seg != tgtSegs[i] {
			return 0, false
		}
		score++
	}

	// Pattern exhausted without a trailing "**": lengths must agree.
	if len(patSegs) != len(tgtSegs) {
		return 0, false
	}

	return score, true
}

// MatchesAny reports whether any directive in the list matches the target.
func MatchesAny(directives []Directive, target string) bool {
	for _, d := range directives {
		if d.Matches(target) {
			return true
		}
	}
	return false
}
