package rank

import (
	"sort"

	"github.com/fundscout/fundscout/internal/model"
)

// Rank drops opportunities below the trust threshold and sorts the rest
// descending by trust score. The sort is stable: equal scores keep their
// input order. The result is never nil.
func Rank(opps []model.Opportunity, threshold int) []model.Opportunity {
	ranked := make([]model.Opportunity, 0, len(opps))
	for _, opp := range opps {
		if opp.TrustScore >= threshold {
			ranked = append(ranked, opp)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TrustScore > ranked[j].TrustScore
	})

	return ranked
}
