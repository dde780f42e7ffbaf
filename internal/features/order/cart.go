package order

// Cart is the client-held multiset of product ids: a product appearing N
// times means quantity N. The browser owns it; the server only ever sees it
// as a checkout request value.
type Cart []string

type CartLine struct {
	ProductID string
	Quantity  int64
}

// Lines collapses the multiset into one line per distinct product id,
// preserving first-seen order so line items come out in the order the
// customer added them.
func (c Cart) Lines() []CartLine {
	counts := make(map[string]int64, len(c))
	var ordered []string

	for _, productID := range c {
		if _, seen := counts[productID]; !seen {
			ordered = append(ordered, productID)
		}
		counts[productID]++
	}

	lines := make([]CartLine, 0, len(ordered))
	for _, productID := range ordered {
		lines = append(lines, CartLine{
			ProductID: productID,
			Quantity:  counts[productID],
		})
	}

	return lines
}
