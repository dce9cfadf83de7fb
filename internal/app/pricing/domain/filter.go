package domain

import "time"

// FilterCandidates keeps the prices that exist, are priced in currency and are valid at moment.
// A nil moment keeps prices regardless of their validity. The input slice is not modified.
func FilterCandidates(prices []*Price, currency string, moment *time.Time) []*Price {
	out := make([]*Price, 0, len(prices))
	for _, p := range prices {
		if p == nil || p.Dropped() {
			continue
		}
		if p.Currency() != currency {
			continue
		}
		if !p.ValidAt(moment) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// restrictToInnerRecords keeps prices whose inner record id is in ids.
func restrictToInnerRecords(prices []*Price, ids map[int]struct{}) []*Price {
	out := make([]*Price, 0, len(prices))
	for _, p := range prices {
		if _, ok := ids[p.InnerRecordID()]; ok {
			out = append(out, p)
		}
	}
	return out
}
