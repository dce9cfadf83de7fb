package domain

import "slices"

// InnerRecordGroups partitions prices by inner record id.
// Prices without an inner record fall into group NoInnerRecord.
type InnerRecordGroups map[int][]*Price

// GroupByInnerRecord partitions prices preserving their relative order within each group.
func GroupByInnerRecord(prices []*Price) InnerRecordGroups {
	groups := make(InnerRecordGroups)
	for _, p := range prices {
		groups[p.InnerRecordID()] = append(groups[p.InnerRecordID()], p)
	}
	return groups
}

// Keys returns the group keys in ascending order.
func (g InnerRecordGroups) Keys() []int {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// representatives selects at most one price per group, in ascending group order.
func (g InnerRecordGroups) representatives(priority PriorityIndex, indexedOnly bool) []*Price {
	out := make([]*Price, 0, len(g))
	for _, id := range g.Keys() {
		if p := priority.selectByPriority(g[id], indexedOnly); p != nil {
			out = append(out, p)
		}
	}
	return out
}
