package utils

import (
	"math/rand"
)

// BatchSize draws a batch size uniformly from [1, rate] inclusive. Rates
// below 1 collapse to a single-ticket batch.
func BatchSize(rate int) int {
	if rate <= 1 {
		return 1
	}
	return 1 + rand.Intn(rate)
}
