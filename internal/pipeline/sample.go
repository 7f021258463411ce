package pipeline

import "math/rand"

// SampleIDs returns up to limit article ids drawn from 1..total,
// shuffled deterministically by seed. A limit of zero or less keeps all
// ids. The same seed always yields the same order.
func SampleIDs(total int64, seed int64, limit int) []int64 {
	ids := make([]int64, total)
	for i := range ids {
		ids[i] = int64(i) + 1
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(ids), func(i, j int) {
		ids[i], ids[j] = ids[j], ids[i]
	})

	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	return ids
}
