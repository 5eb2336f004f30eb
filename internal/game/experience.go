package game

// ExpPerLevel is the experience needed for each level past the first.
const ExpPerLevel = 1000

// LevelForExp returns the level a character with the given experience has.
func LevelForExp(experience int) int {
	if experience < 0 {
		return 1
	}
	return experience/ExpPerLevel + 1
}

// ExpForLevel returns the cumulative experience required to reach level.
func ExpForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * ExpPerLevel
}

// ExpToNextLevel returns the remaining experience needed to reach the next level.
func ExpToNextLevel(level, experience int) int {
	remaining := ExpForLevel(level+1) - experience
	if remaining < 0 {
		return 0
	}
	return remaining
}
