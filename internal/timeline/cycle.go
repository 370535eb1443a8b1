package timeline

// difficultyCycle is the repeating difficulty pattern for a batch.
// It is indexed by the problem's offset from the batch start, not by
// real weekday, so gaps between generation runs never shift the pattern.
var difficultyCycle = [7]Difficulty{
	Easy,
	Easy,
	Medium,
	Medium,
	Hard,
	Hard,
	Medium,
}

// DifficultyFor returns the difficulty for the problem at the given
// zero-based offset within a batch.
func DifficultyFor(offset int) Difficulty {
	if offset < 0 {
		offset = -offset
	}
	return difficultyCycle[offset%len(difficultyCycle)]
}
