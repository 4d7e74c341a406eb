package words

import (
	"errors"
	"math/rand"
)

// Bank is a fixed vocabulary the turn engine draws word choices from. It is
// immutable after construction, so it needs no locking.
type Bank struct {
	words []string
}

var ErrTooFewWords = errors.New("word bank needs at least 5 words")

func New(list []string) (*Bank, error) {
	if len(list) < 5 {
		return nil, ErrTooFewWords
	}
	words := make([]string, len(list))
	copy(words, list)
	return &Bank{words: words}, nil
}

func (b *Bank) Len() int {
	return len(b.words)
}

// Choices draws n distinct words uniformly at random, retrying duplicates.
// n is capped at the bank size.
func (b *Bank) Choices(n int) []string {
	if n > len(b.words) {
		n = len(b.words)
	}
	seen := make(map[string]bool, n)
	choices := make([]string, 0, n)
	for len(choices) < n {
		w := b.words[rand.Intn(len(b.words))]
		if seen[w] {
			continue
		}
		seen[w] = true
		choices = append(choices, w)
	}
	return choices
}

// Builtin returns the default vocabulary shipped with the server.
func Builtin() *Bank {
	bank, err := New(builtinWords)
	if err != nil {
		// builtinWords is a compile-time list well above the minimum.
		panic(err)
	}
	return bank
}

var builtinWords = []string{
	"apple", "banana", "cherry", "grape", "lemon", "mango", "peach",
	"airplane", "bicycle", "rocket", "sailboat", "submarine", "tractor",
	"train", "helicopter", "skateboard",
	"elephant", "giraffe", "penguin", "dolphin", "octopus", "kangaroo",
	"butterfly", "squirrel", "hedgehog", "flamingo", "jellyfish",
	"guitar", "piano", "violin", "trumpet", "drums",
	"castle", "lighthouse", "windmill", "bridge", "pyramid", "igloo",
	"volcano", "waterfall", "rainbow", "tornado", "glacier", "island",
	"telescope", "microscope", "compass", "anchor", "umbrella", "ladder",
	"scissors", "toothbrush", "backpack", "campfire", "snowman",
	"pirate", "wizard", "robot", "astronaut", "mermaid", "vampire",
	"ice cream", "hot dog", "french fries", "pancake", "popcorn",
	"sunflower", "cactus", "mushroom", "palm tree",
	"spider web", "treasure chest", "magic wand", "roller coaster",
	"fire truck", "traffic light", "shooting star",
}
