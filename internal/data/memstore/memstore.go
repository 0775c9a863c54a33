// Package memstore implements the repository interfaces in process memory.
// It backs STORAGE=memory and the test suites, and keeps the same contracts
// as the postgres repositories: active-only user lookups, one cart per user,
// one line per product, item operations scoped to their cart.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"furniture-store/internal/data/entity"
	"furniture-store/internal/data/repository"

	"github.com/google/uuid"
)

type cartState struct {
	mu    sync.Mutex
	cart  entity.Cart
	items map[uuid.UUID]*entity.CartItem
}

// Store holds all tables. mu guards the maps; each cart has its own lock for
// item mutations so carts never contend with each other.
type Store struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]*entity.User
	carts   map[uuid.UUID]*cartState // by user id
	byID    map[uuid.UUID]*cartState // by cart id
	revoked map[string]entity.RevokedToken

	// FailWith, when set, is consulted before every write; a non-nil error
	// aborts the operation before anything is mutated.
	FailWith func(op string) error

	Now func() time.Time
}

func New() *Store {
	return &Store{
		users:   make(map[uuid.UUID]*entity.User),
		carts:   make(map[uuid.UUID]*cartState),
		byID:    make(map[uuid.UUID]*cartState),
		revoked: make(map[string]entity.RevokedToken),
		Now:     time.Now,
	}
}

// NewRepository wires a fresh Store into the repository bundle.
func NewRepository() *repository.Repository {
	return New().Repository()
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:       userRepo{s},
		Cart:       cartRepo{s},
		CartItem:   cartItemRepo{s},
		Revocation: revocationRepo{s},
		Health:     s,
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) check(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &repository.StorageError{Op: op, Err: err}
	}
	if s.FailWith != nil {
		if err := s.FailWith(op); err != nil {
			return &repository.StorageError{Op: op, Err: err}
		}
	}
	return nil
}

func (s *Store) now() time.Time {
	return s.Now().UTC()
}

// ==================== USERS ====================

type userRepo struct{ s *Store }

func (r userRepo) Create(ctx context.Context, user *entity.User) error {
	if err := r.s.check(ctx, "create user"); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.IsActive && user.IsActive && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r userRepo) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, &repository.StorageError{Op: "find user", Err: err}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.IsActive && match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, nil
}

func (r userRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.ID == id })
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.Email == email })
}

func (r userRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.Username == username })
}

func (r userRepo) UpdateProfile(ctx context.Context, user *entity.User) error {
	if err := r.s.check(ctx, "update user"); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[user.ID]
	if !ok || !current.IsActive {
		return repository.ErrNotFound
	}
	for id, u := range r.s.users {
		if id != user.ID && u.IsActive && u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	current.Email = user.Email
	current.FirstName = user.FirstName
	current.LastName = user.LastName
	current.Phone = user.Phone
	current.Address = user.Address
	current.UpdatedAt = user.UpdatedAt
	return nil
}

func (r userRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := r.s.check(ctx, "deactivate user"); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.users[id]
	if !ok || !current.IsActive {
		return repository.ErrNotFound
	}
	current.IsActive = false
	current.UpdatedAt = r.s.now()

	if state, ok := r.s.carts[id]; ok {
		state.mu.Lock()
		state.items = make(map[uuid.UUID]*entity.CartItem)
		state.mu.Unlock()
	}
	return nil
}

// ==================== CARTS ====================

type cartRepo struct{ s *Store }

func (r cartRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	if err := r.s.check(ctx, "create cart"); err != nil {
		return nil, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if state, ok := r.s.carts[userID]; ok {
		cart := state.cart
		return &cart, nil
	}

	state := &cartState{
		cart: entity.Cart{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: r.s.now()},
			UserID:     userID,
		},
		items: make(map[uuid.UUID]*entity.CartItem),
	}
	r.s.carts[userID] = state
	r.s.byID[state.cart.ID] = state

	cart := state.cart
	return &cart, nil
}

func (r cartRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, &repository.StorageError{Op: "find cart", Err: err}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	state, ok := r.s.carts[userID]
	if !ok {
		return nil, nil
	}
	cart := state.cart
	return &cart, nil
}

// CartCount is used by tests to assert lazily created carts are unique.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// ==================== CART ITEMS ====================

type cartItemRepo struct{ s *Store }

// withCart runs fn holding the cart's own lock, the in-memory counterpart of
// SELECT ... FOR UPDATE on the cart row.
func (r cartItemRepo) withCart(ctx context.Context, op string, cartID uuid.UUID, fn func(state *cartState) error) error {
	r.s.mu.RLock()
	state, ok := r.s.byID[cartID]
	r.s.mu.RUnlock()
	if !ok {
		return repository.ErrNotFound
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if err := r.s.check(ctx, op); err != nil {
		return err
	}
	return fn(state)
}

func (r cartItemRepo) FindByCartID(ctx context.Context, cartID uuid.UUID) ([]*entity.CartItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, &repository.StorageError{Op: "find cart items", Err: err}
	}

	r.s.mu.RLock()
	state, ok := r.s.byID[cartID]
	r.s.mu.RUnlock()

	items := make([]*entity.CartItem, 0)
	if !ok {
		return items, nil
	}

	state.mu.Lock()
	for _, item := range state.items {
		copied := *item
		items = append(items, &copied)
	}
	state.mu.Unlock()

	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return strings.Compare(items[i].ID.String(), items[j].ID.String()) < 0
		}
		return items[i].CreatedAt.Before(items[j].CreatedAt)
	})
	return items, nil
}

func (r cartItemRepo) AddOrIncrement(ctx context.Context, cartID uuid.UUID, productID string, quantity int) (*entity.CartItem, error) {
	var result entity.CartItem

	err := r.withCart(ctx, "add cart item", cartID, func(state *cartState) error {
		now := r.s.now()
		for _, item := range state.items {
			if item.ProductID != productID {
				continue
			}
			if item.Quantity+quantity > repository.MaxItemQuantity {
				return repository.ErrQuantityLimit
			}
			item.Quantity += quantity
			item.UpdatedAt = now
			result = *item
			return nil
		}

		item := &entity.CartItem{
			Base:      entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		state.items[item.ID] = item
		result = *item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r cartItemRepo) SetQuantity(ctx context.Context, cartID, itemID uuid.UUID, quantity int) (*entity.CartItem, error) {
	var result *entity.CartItem

	err := r.withCart(ctx, "set cart item quantity", cartID, func(state *cartState) error {
		item, ok := state.items[itemID]
		if !ok {
			return nil
		}
		item.Quantity = quantity
		item.UpdatedAt = r.s.now()
		copied := *item
		result = &copied
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r cartItemRepo) Delete(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	var deleted bool

	err := r.withCart(ctx, "delete cart item", cartID, func(state *cartState) error {
		if _, ok := state.items[itemID]; ok {
			delete(state.items, itemID)
			deleted = true
		}
		return nil
	})
	return deleted, err
}

func (r cartItemRepo) DeleteByCartID(ctx context.Context, cartID uuid.UUID) (int64, error) {
	var removed int64

	err := r.withCart(ctx, "clear cart", cartID, func(state *cartState) error {
		removed = int64(len(state.items))
		state.items = make(map[uuid.UUID]*entity.CartItem)
		return nil
	})
	return removed, err
}

// ==================== REVOCATIONS ====================

type revocationRepo struct{ s *Store }

func (r revocationRepo) Revoke(ctx context.Context, token *entity.RevokedToken) error {
	if err := r.s.check(ctx, "revoke token"); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.revoked[token.TokenID]; !ok {
		r.s.revoked[token.TokenID] = *token
	}
	return nil
}

func (r revocationRepo) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, &repository.StorageError{Op: "check token revocation", Err: err}
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.revoked[tokenID]
	return ok, nil
}

func (r revocationRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	if err := r.s.check(ctx, "purge revoked tokens"); err != nil {
		return 0, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var purged int64
	for id, token := range r.s.revoked {
		if token.ExpiresAt.Before(now) {
			delete(r.s.revoked, id)
			purged++
		}
	}
	return purged, nil
}
