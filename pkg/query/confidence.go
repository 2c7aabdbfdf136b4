package query

// confidence scores how trustworthy an answer is, in [0,1].
//
// topScore is the best retrieval similarity for the question, citedOverlap is
// the fraction of context rows the answer actually cites, and formatValid
// reports whether every citation in the answer refers to a context row.
func confidence(topScore, citedOverlap float64, formatValid bool) float64 {
	score := 0.6*clamp01(topScore) + 0.3*clamp01(citedOverlap)
	if formatValid {
		score += 0.1
	}
	return clamp01(score)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
