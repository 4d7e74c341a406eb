package game

import (
	"math/rand"
	"slices"
	"unicode"

	"drawdash/internal"
)

// MaskWord returns the display form of word: letter runes are hidden as '_'
// unless their index is in revealed; spaces, hyphens and other non-letters
// always show through. The mask has the same rune length as the word.
func MaskWord(word string, revealed []int) string {
	runes := []rune(word)
	out := make([]rune, len(runes))
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r):
			out[i] = r
		case slices.Contains(revealed, i):
			out[i] = r
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

func isVowel(r rune) bool {
	switch unicode.ToLower(r) {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// pickRevealIndex selects the next letter index to expose as a hint.
// Preference order: consonants with unrevealed neighbors, any letter with
// unrevealed neighbors, any consonant, any letter. The bias keeps hints
// away from vowels and away from clusters of already-visible letters.
func pickRevealIndex(runes []rune, revealed []int) (int, bool) {
	set := make(map[int]bool, len(revealed))
	for _, i := range revealed {
		set[i] = true
	}

	var letters, freeLetters, consonants, freeConsonants []int
	for i, r := range runes {
		if !unicode.IsLetter(r) || set[i] {
			continue
		}
		free := !set[i-1] && !set[i+1]
		cons := !isVowel(r)
		letters = append(letters, i)
		if free {
			freeLetters = append(freeLetters, i)
		}
		if cons {
			consonants = append(consonants, i)
		}
		if cons && free {
			freeConsonants = append(freeConsonants, i)
		}
	}

	for _, pool := range [][]int{freeConsonants, freeLetters, consonants, letters} {
		if len(pool) > 0 {
			return pool[rand.Intn(len(pool))], true
		}
	}
	return 0, false
}

// maybeRevealLocked fires the timed hint schedule: one letter when exactly
// half the turn time remains and one at exactly a quarter, capped at
// MaxRevealsPerTurn per turn. A room whose timer skips the exact second
// (missed tick) forfeits that hint for the turn; that is intentional.
// Caller holds room.Mu. Returns true when a new letter became visible.
func maybeRevealLocked(room *internal.Room) bool {
	if room.Word == "" || room.WaitingForChoice ||
		len(room.RevealedIndices) >= internal.MaxRevealsPerTurn {
		return false
	}

	half := room.Settings.TurnSeconds / 2
	quarter := room.Settings.TurnSeconds / 4

	switch {
	case !room.Reveal50Done && room.TimeLeft == half:
		room.Reveal50Done = true
	case !room.Reveal25Done && room.TimeLeft == quarter:
		room.Reveal25Done = true
	default:
		return false
	}

	idx, ok := pickRevealIndex([]rune(room.Word), room.RevealedIndices)
	if !ok {
		return false
	}

	room.RevealedIndices = append(room.RevealedIndices, idx)
	slices.Sort(room.RevealedIndices)
	room.WordMask = MaskWord(room.Word, room.RevealedIndices)
	return true
}
