package catalog

import (
	"fmt"
	"math/rand/v2"
)

// Sample draws n distinct rows without replacement. The draw is not seeded:
// two runs select different chips.
func (a *AGBM) Sample(n int) ([]AGBMRecord, error) {
	if n < 0 || n > len(a.Records) {
		return nil, fmt.Errorf("Sample: requested %d of %d rows", n, len(a.Records))
	}
	records := make([]AGBMRecord, 0, n)
	for _, i := range rand.Perm(len(a.Records))[:n] {
		records = append(records, a.Records[i])
	}
	return records, nil
}
