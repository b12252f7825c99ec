// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

// Tally returns the id of the proposal with the most votes. The scan only
// replaces the current best on a strictly greater count, so ties go to the
// lowest id. ok is false when there are no proposals.
func Tally(proposals []Proposal) (winner int, ok bool) {
	if len(proposals) == 0 {
		return 0, false
	}
	for i := 1; i < len(proposals); i++ {
		if proposals[i].VoteCount > proposals[winner].VoteCount {
			winner = i
		}
	}
	return proposals[winner].ID, true
}
