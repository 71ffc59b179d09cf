package game

import "fmt"

// Score computes the tile feedback for guess against secret.
//
// The two-pass rule keeps duplicate letters honest: a letter is never marked
// present/correct more times in total than it occurs in the secret.
//
//  1. Count every letter of the secret.
//  2. Mark exact positional matches correct, consuming their counts.
//  3. Mark remaining positions present while their letter's count holds out,
//     absent otherwise.
//
// Score is pure and deterministic. It is the single source of truth for
// feedback: candidate filtering and entropy scoring both call it rather than
// re-deriving the rule.
//
// A guess/secret length mismatch is a caller bug, not a game condition, so
// it panics rather than truncating or padding.
func Score(guess, secret string) Feedback {
	if len(guess) != len(secret) {
		panic(fmt.Sprintf("game: guess/secret length mismatch: %q (%d) vs %q (%d)",
			guess, len(guess), secret, len(secret)))
	}

	fb := make(Feedback, len(guess))
	var remaining [256]int
	for i := 0; i < len(secret); i++ {
		remaining[secret[i]]++
	}

	for i := 0; i < len(guess); i++ {
		if guess[i] == secret[i] {
			fb[i] = TileCorrect
			remaining[guess[i]]--
		}
	}

	for i := 0; i < len(guess); i++ {
		if fb[i] == TileCorrect {
			continue
		}
		if remaining[guess[i]] > 0 {
			fb[i] = TilePresent
			remaining[guess[i]]--
		} else {
			fb[i] = TileAbsent
		}
	}

	return fb
}
