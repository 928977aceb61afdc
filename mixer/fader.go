package mixer

// Step moves current toward target by at most delta
// Lands exactly on target once within delta; never crosses it
func Step(current, target, delta float64) float64 {
	if current < target {
		return min(current+delta, target)
	}
	return max(current-delta, target)
}
