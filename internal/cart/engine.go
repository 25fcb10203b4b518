package cart

// MaxQuantity caps how many units of a single product a cart may hold.
const MaxQuantity = 10

// Item is one cart line. Identity is ProductID; the remaining fields are
// denormalized from the product at add time so the cart can render
// without a content-store round trip.
type Item struct {
	ProductID     string  `json:"productId"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Price         float64 `json:"price"`
	StripePriceID string  `json:"stripePriceId"`
	ImageURL      string  `json:"imageUrl"`
	Quantity      int     `json:"quantity"`
	InStock       bool    `json:"inStock"`
}

// State is the full cart state machine state. Hydrated gates persistence:
// a write must never happen before a load attempt has completed, or a
// fresh process would erase a previously persisted cart.
type State struct {
	Items    []Item `json:"items"`
	IsOpen   bool   `json:"isOpen"`
	Hydrated bool   `json:"hydrated"`
}

type ActionType string

const (
	ActionAddItem        ActionType = "ADD_ITEM"
	ActionRemoveItem     ActionType = "REMOVE_ITEM"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionClearCart      ActionType = "CLEAR_CART"
	ActionOpenCart       ActionType = "OPEN_CART"
	ActionCloseCart      ActionType = "CLOSE_CART"
	ActionHydrate        ActionType = "HYDRATE"
)

// Action carries one state transition. Item is used by ADD_ITEM (its
// Quantity is ignored), ProductID by REMOVE_ITEM and UPDATE_QUANTITY,
// Quantity by UPDATE_QUANTITY, Items by HYDRATE.
type Action struct {
	Type      ActionType
	Item      Item
	ProductID string
	Quantity  int
	Items     []Item
}

// Reduce applies a single action to a state snapshot and returns the next
// state. It never mutates its input; callers hold the only reference to
// the returned slice.
func Reduce(state State, action Action) State {
	switch action.Type {
	case ActionAddItem:
		for i, existing := range state.Items {
			if existing.ProductID != action.Item.ProductID {
				continue
			}
			items := copyItems(state.Items)
			// Refresh denormalized fields from the new payload; a cart
			// restored from a previous session may carry stale ones.
			updated := action.Item
			updated.Quantity = clampQuantity(existing.Quantity + 1)
			items[i] = updated
			state.Items = items
			return state
		}
		added := action.Item
		added.Quantity = 1
		state.Items = append(copyItems(state.Items), added)
		return state

	case ActionRemoveItem:
		state.Items = withoutProduct(state.Items, action.ProductID)
		return state

	case ActionUpdateQuantity:
		if action.Quantity <= 0 {
			state.Items = withoutProduct(state.Items, action.ProductID)
			return state
		}
		items := copyItems(state.Items)
		for i := range items {
			if items[i].ProductID == action.ProductID {
				items[i].Quantity = clampQuantity(action.Quantity)
			}
		}
		state.Items = items
		return state

	case ActionClearCart:
		state.Items = nil
		return state

	case ActionOpenCart:
		state.IsOpen = true
		return state

	case ActionCloseCart:
		state.IsOpen = false
		return state

	case ActionHydrate:
		state.Items = action.Items
		state.Hydrated = true
		return state
	}

	return state
}

// ItemCount is the live sum of quantities; it is always derived, never
// cached alongside the items.
func (s State) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal is the live sum of price times quantity over current items.
func (s State) Subtotal() float64 {
	total := 0.0
	for _, item := range s.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

func clampQuantity(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	if q < 1 {
		return 1
	}
	return q
}

func copyItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

func withoutProduct(items []Item, productID string) []Item {
	var out []Item
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}
