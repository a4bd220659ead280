package services

// PlacementCorrect decides a round: inserting card into hand at index is
// correct iff the resulting sequence is non-decreasing by bad luck index
// end to end. Ties are allowed. Pure function, no side effects.
//
// index must be in [0, len(hand)]; callers validate before this point.
func PlacementCorrect(hand []HandCard, card HandCard, index int) bool {
	trial := make([]HandCard, 0, len(hand)+1)
	trial = append(trial, hand[:index]...)
	trial = append(trial, card)
	trial = append(trial, hand[index:]...)

	for i := 1; i < len(trial); i++ {
		if trial[i-1].BadLuckIndex > trial[i].BadLuckIndex {
			return false
		}
	}
	return true
}
