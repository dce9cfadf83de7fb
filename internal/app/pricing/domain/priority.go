package domain

// PriorityIndex maps a price list to its rank. Rank 0 is the most preferred list.
type PriorityIndex map[string]int

// NewPriorityIndex builds the rank lookup from an ordered list of price lists.
// A list repeated later in the slice keeps its first (better) rank.
func NewPriorityIndex(priceLists []string) PriorityIndex {
	index := make(PriorityIndex, len(priceLists))
	for rank, list := range priceLists {
		if _, seen := index[list]; !seen {
			index[list] = rank
		}
	}
	return index
}

// Rank returns the rank of the price list and whether it takes part in the ranking.
func (pi PriorityIndex) Rank(priceList string) (int, bool) {
	rank, ok := pi[priceList]
	return rank, ok
}

// selectByPriority picks the candidate whose price list ranks best.
// Candidates outside the index are skipped; with indexedOnly, so are non-sellable prices.
// Equal ranks fall back to the natural price key ordering.
func (pi PriorityIndex) selectByPriority(candidates []*Price, indexedOnly bool) *Price {
	var (
		best     *Price
		bestRank int
	)
	for _, p := range candidates {
		if indexedOnly && !p.Indexed() {
			continue
		}
		rank, ok := pi.Rank(p.PriceList())
		if !ok {
			continue
		}
		if best == nil || rank < bestRank || (rank == bestRank && p.Key().Compare(best.Key()) < 0) {
			best, bestRank = p, rank
		}
	}
	return best
}
