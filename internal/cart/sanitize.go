package cart

// Sanitize validates items loaded from persistence. Persisted data is
// untrusted: entries may be malformed, duplicated, or carry out-of-range
// numbers. Entries without a product ID or price reference are dropped,
// quantities are clamped into [1, MaxQuantity], negative prices are
// zeroed, and duplicates are merged by product ID with their quantities
// summed (then clamped). Insertion order of first occurrence is kept.
func Sanitize(items []Item) []Item {
	var out []Item
	index := make(map[string]int)

	for _, item := range items {
		if item.ProductID == "" || item.StripePriceID == "" {
			continue
		}
		if item.Price < 0 {
			item.Price = 0
		}
		item.Quantity = clampQuantity(item.Quantity)

		if i, ok := index[item.ProductID]; ok {
			merged := out[i].Quantity + item.Quantity
			out[i].Quantity = clampQuantity(merged)
			continue
		}

		index[item.ProductID] = len(out)
		out = append(out, item)
	}

	return out
}
