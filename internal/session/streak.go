package session

// NextStreakMilestone returns the next streak milestone above current.
func NextStreakMilestone(current int) int {
	thresholds := []int{5, 10, 15, 20}
	for _, t := range thresholds {
		if t > current {
			return t
		}
	}
	// Beyond 20, every 5.
	return ((current / 5) + 1) * 5
}

// IsStreakMilestone reports whether reaching streak n is worth celebrating.
func IsStreakMilestone(n int) bool {
	return n > 0 && NextStreakMilestone(n-1) == n
}
