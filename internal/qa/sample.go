package qa

import "math/rand"

// Sample returns a seed-reproducible random subset of at most n items.
// The input slice is not modified.
func Sample(items []Item, n int, seed int64) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})

	if n < 0 {
		n = 0
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}
