package cart

import (
	"context"
	"errors"
	"log"
)

// Service runs the cart state machine against persisted state. Every
// operation loads a consistent snapshot, hydrates it, applies the
// action(s), and persists the result. Persistence is best effort: the
// in-memory result is returned to the caller even when the store write
// fails, so a degraded store never blocks shopping.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// load attempts to read the persisted cart and always returns a hydrated
// state. Missing carts and corrupted payloads both hydrate to empty;
// whatever comes back from storage is sanitized before use.
func (s *Service) load(ctx context.Context, cartID string) State {
	items, err := s.store.Load(ctx, cartID)
	if err != nil && !errors.Is(err, ErrCartNotFound) {
		log.Printf("cart load error for %s: %v", cartID, err)
		items = nil
	}
	return Reduce(State{}, Action{Type: ActionHydrate, Items: Sanitize(items)})
}

// persist writes the item list back. Hydrated must be true by
// construction here; the check guards against future call paths that
// skip load.
func (s *Service) persist(ctx context.Context, cartID string, state State) {
	if !state.Hydrated {
		log.Printf("refusing to persist unhydrated cart %s", cartID)
		return
	}
	if err := s.store.Save(ctx, cartID, state.Items); err != nil {
		log.Printf("cart save error for %s: %v", cartID, err)
	}
}

func (s *Service) Get(ctx context.Context, cartID string) State {
	return s.load(ctx, cartID)
}

// AddItem adds one unit of the product and opens the cart drawer, which
// is how the storefront surfaces the add.
func (s *Service) AddItem(ctx context.Context, cartID string, item Item) State {
	state := s.load(ctx, cartID)
	state = Reduce(state, Action{Type: ActionAddItem, Item: item})
	state = Reduce(state, Action{Type: ActionOpenCart})
	s.persist(ctx, cartID, state)
	return state
}

func (s *Service) RemoveItem(ctx context.Context, cartID, productID string) State {
	state := s.load(ctx, cartID)
	state = Reduce(state, Action{Type: ActionRemoveItem, ProductID: productID})
	s.persist(ctx, cartID, state)
	return state
}

func (s *Service) UpdateQuantity(ctx context.Context, cartID, productID string, quantity int) State {
	state := s.load(ctx, cartID)
	state = Reduce(state, Action{Type: ActionUpdateQuantity, ProductID: productID, Quantity: quantity})
	s.persist(ctx, cartID, state)
	return state
}

// Clear empties the cart. Called once per order, when the checkout
// session is confirmed paid.
func (s *Service) Clear(ctx context.Context, cartID string) State {
	state := s.load(ctx, cartID)
	state = Reduce(state, Action{Type: ActionClearCart})
	if err := s.store.Delete(ctx, cartID); err != nil {
		log.Printf("cart delete error for %s: %v", cartID, err)
	}
	return state
}

// Open and Close toggle the drawer flag on the returned snapshot only.
// The flag is per-session UI state; storage holds just the items, so a
// later load reports the drawer closed.
func (s *Service) Open(ctx context.Context, cartID string) State {
	state := s.load(ctx, cartID)
	return Reduce(state, Action{Type: ActionOpenCart})
}

func (s *Service) Close(ctx context.Context, cartID string) State {
	state := s.load(ctx, cartID)
	return Reduce(state, Action{Type: ActionCloseCart})
}
