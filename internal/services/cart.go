package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"coffee-marketplace-client/internal/models"
	"coffee-marketplace-client/internal/storage"
)

// SyncState represents the lifecycle state of the cart synchronizer
type SyncState string

const (
	StateUninitialized SyncState = "UNINITIALIZED"
	StateLoading       SyncState = "LOADING"
	StateReady         SyncState = "READY"
)

// SubCallOp identifies one remote operation within a commit
type SubCallOp string

const (
	OpCreate SubCallOp = "create"
	OpUpdate SubCallOp = "update"
	OpDelete SubCallOp = "delete"
)

// SubCallResult is the outcome of one remote sub-call within a commit
type SubCallResult struct {
	Op        SubCallOp
	ProductID int
	RemoteID  int // backend line-item id; 0 when never assigned
	Err       error
}

// CommitResult reports the outcome of one commit-protocol invocation.
// Guest commits carry no sub-calls.
type CommitResult struct {
	CommitID string
	Calls    []SubCallResult
}

// Ok reports whether every sub-call succeeded
func (r *CommitResult) Ok() bool {
	for i := range r.Calls {
		if r.Calls[i].Err != nil {
			return false
		}
	}
	return true
}

// Failed returns the sub-calls that did not complete
func (r *CommitResult) Failed() []SubCallResult {
	var failed []SubCallResult
	for i := range r.Calls {
		if r.Calls[i].Err != nil {
			failed = append(failed, r.Calls[i])
		}
	}
	return failed
}

// CartSynchronizer owns the in-memory cart and reconciles it with its
// persistence target: durable local storage for guests, the remote cart
// API for authenticated sessions. All mutations compute a full next-item
// list and commit it atomically to memory and the chosen target.
//
// Commits are serialized: the mutex is held across the whole
// mutate-and-commit span, so remote effects of successive mutations
// cannot interleave.
type CartSynchronizer struct {
	mu      sync.Mutex
	store   LocalStorage
	gateway CartGateway
	session *models.Session
	items   []models.CartItem
	state   SyncState
	log     *logrus.Entry
}

// NewCartSynchronizer creates a cart synchronizer in the uninitialized state
func NewCartSynchronizer(store LocalStorage, gateway CartGateway) *CartSynchronizer {
	return &CartSynchronizer{
		store:   store,
		gateway: gateway,
		state:   StateUninitialized,
		log:     logrus.WithField("component", "cart"),
	}
}

// Load runs the initialization protocol for the given session (which may
// be nil for guests) and transitions the synchronizer to READY. Load never
// fails: any fetch or parse problem resolves to an empty cart.
func (c *CartSynchronizer) Load(ctx context.Context, session *models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = session
	c.state = StateLoading
	c.items = c.resolveItems(ctx)
	c.state = StateReady
}

// SetSession applies a session identity transition. On login the guest
// cart is merged into the authenticated cart before any other cart read;
// on logout the guest state is reloaded. A no-op when the identity did
// not actually transition.
func (c *CartSynchronizer) SetSession(ctx context.Context, session *models.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.session
	hadSession := prev.Valid()
	hasSession := session.Valid()
	c.session = session

	if hadSession == hasSession {
		return
	}

	c.state = StateLoading
	if hasSession {
		c.mergeGuestCart(ctx)
	}
	c.items = c.resolveItems(ctx)
	c.state = StateReady
}

// State returns the synchronizer lifecycle state
func (c *CartSynchronizer) State() SyncState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns a copy of the current cart item list
func (c *CartSynchronizer) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneItems(c.items)
}

// Total returns the sum of price × quantity over the current cart
func (c *CartSynchronizer) Total() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart := models.Cart{Items: c.items}
	return cart.Total()
}

// AddItem adds a product to the cart. Adding a product that is already
// present increments its quantity by one; otherwise the item is appended
// with quantity one.
func (c *CartSynchronizer) AddItem(ctx context.Context, item models.CartItem) (*CommitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := cloneItems(c.items)
	if idx := findProduct(next, item.ProductID); idx >= 0 {
		next[idx].Quantity++
	} else {
		item.Quantity = 1
		item.RemoteID = nil
		next = append(next, item)
	}
	return c.commit(ctx, next)
}

// RemoveItem removes the item with the given product id
func (c *CartSynchronizer) RemoveItem(ctx context.Context, productID int) (*CommitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(ctx, withoutProduct(c.items, productID))
}

// UpdateQuantity sets the quantity of the item with the given product id.
// A quantity below one removes the item.
func (c *CartSynchronizer) UpdateQuantity(ctx context.Context, productID, quantity int) (*CommitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity < 1 {
		return c.commit(ctx, withoutProduct(c.items, productID))
	}

	next := cloneItems(c.items)
	if idx := findProduct(next, productID); idx >= 0 {
		next[idx].Quantity = quantity
	}
	return c.commit(ctx, next)
}

// ClearCart empties the cart
func (c *CartSynchronizer) ClearCart(ctx context.Context) (*CommitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.commit(ctx, []models.CartItem{})
}

// resolveItems loads the cart from the persistence target implied by the
// current session. Failures resolve to an empty cart.
func (c *CartSynchronizer) resolveItems(ctx context.Context) []models.CartItem {
	if c.session.Valid() {
		items, err := c.gateway.FetchCart(ctx, c.session.Access)
		if err != nil {
			c.log.WithError(err).Warn("cart fetch failed, starting empty")
			return []models.CartItem{}
		}
		if items == nil {
			items = []models.CartItem{}
		}
		return items
	}

	data, ok, err := c.store.Get(storage.KeyGuestCart)
	if err != nil || !ok {
		return []models.CartItem{}
	}
	items, err := models.DecodeCartItems(data)
	if err != nil {
		c.log.WithError(err).Warn("stored guest cart is malformed, starting empty")
		return []models.CartItem{}
	}
	return items
}

// mergeGuestCart pushes a non-empty guest cart through the commit protocol
// as the authenticated user's new cart state. The guest cart key is only
// cleared when every item merged; failures are logged and swallowed so the
// cart stays usable.
func (c *CartSynchronizer) mergeGuestCart(ctx context.Context) {
	data, ok, err := c.store.Get(storage.KeyGuestCart)
	if err != nil || !ok {
		return
	}

	guestItems, err := models.DecodeCartItems(data)
	if err != nil {
		c.log.WithError(err).Warn("guest cart merge skipped: stored cart is malformed")
		return
	}
	if len(guestItems) == 0 {
		_ = c.store.Delete(storage.KeyGuestCart)
		return
	}

	// Guest items never carry remote ids, so the commit is all creates.
	for i := range guestItems {
		guestItems[i].RemoteID = nil
	}

	result, err := c.commit(ctx, guestItems)
	if err != nil {
		c.log.WithError(err).Warn("guest cart merge failed, keeping guest cart for retry")
		return
	}
	if !result.Ok() {
		c.log.WithField("failed_calls", len(result.Failed())).Warn("guest cart merge incomplete, keeping guest cart for retry")
		return
	}

	if err := c.store.Delete(storage.KeyGuestCart); err != nil {
		c.log.WithError(err).Warn("failed to clear merged guest cart")
		return
	}
	c.log.WithField("items", len(guestItems)).Info("guest cart merged into account")
}

// commit reconciles the next item list with the persistence target and
// swaps it into memory. Callers must hold the mutex.
func (c *CartSynchronizer) commit(ctx context.Context, next []models.CartItem) (*CommitResult, error) {
	if !c.session.Valid() {
		data, err := models.EncodeCartItems(next)
		if err != nil {
			return nil, errors.Wrap(err, "encode guest cart")
		}
		if err := c.store.Set(storage.KeyGuestCart, data); err != nil {
			return nil, err
		}
		c.items = next
		return &CommitResult{CommitID: uuid.NewString()}, nil
	}

	result := c.commitRemote(ctx, c.items, next)

	// Memory advances unconditionally; failed sub-calls are reported, not
	// rolled back. The server is reconciled on the next full load.
	c.items = next

	for _, failed := range result.Failed() {
		c.log.WithFields(logrus.Fields{
			"commit_id": result.CommitID,
			"op":        failed.Op,
			"product":   failed.ProductID,
		}).WithError(failed.Err).Warn("cart sub-call failed")
	}
	return result, nil
}

// subCall is one pending remote operation within a commit
type subCall struct {
	op        SubCallOp
	productID int
	remoteID  int
	quantity  int
	nextIdx   int // index into next, for attaching created remote ids
}

// commitRemote partitions next against prev into create/update/delete
// buckets and dispatches them concurrently. The commit is complete when
// every sub-call has settled, regardless of individual outcomes.
func (c *CartSynchronizer) commitRemote(ctx context.Context, prev, next []models.CartItem) *CommitResult {
	token := c.session.Access

	var subs []subCall
	for i := range next {
		if next[i].RemoteID == nil {
			subs = append(subs, subCall{
				op:        OpCreate,
				productID: next[i].ProductID,
				quantity:  next[i].Quantity,
				nextIdx:   i,
			})
		} else {
			subs = append(subs, subCall{
				op:        OpUpdate,
				productID: next[i].ProductID,
				remoteID:  *next[i].RemoteID,
				quantity:  next[i].Quantity,
			})
		}
	}
	for i := range prev {
		if prev[i].RemoteID != nil && findProduct(next, prev[i].ProductID) < 0 {
			subs = append(subs, subCall{
				op:        OpDelete,
				productID: prev[i].ProductID,
				remoteID:  *prev[i].RemoteID,
			})
		}
	}

	result := &CommitResult{
		CommitID: uuid.NewString(),
		Calls:    make([]SubCallResult, len(subs)),
	}

	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub subCall) {
			defer wg.Done()

			res := SubCallResult{Op: sub.op, ProductID: sub.productID, RemoteID: sub.remoteID}
			switch sub.op {
			case OpCreate:
				created, err := c.gateway.CreateCartItem(ctx, token, sub.productID, sub.quantity)
				if err != nil {
					res.Err = err
				} else if created.RemoteID != nil {
					res.RemoteID = *created.RemoteID
					next[sub.nextIdx].RemoteID = created.RemoteID
				}
			case OpUpdate:
				res.Err = c.gateway.UpdateCartItem(ctx, token, sub.remoteID, sub.quantity)
			case OpDelete:
				res.Err = c.gateway.DeleteCartItem(ctx, token, sub.remoteID)
			}
			result.Calls[i] = res
		}(i, sub)
	}
	wg.Wait()

	return result
}

func cloneItems(items []models.CartItem) []models.CartItem {
	next := make([]models.CartItem, len(items))
	copy(next, items)
	return next
}

func findProduct(items []models.CartItem, productID int) int {
	for i := range items {
		if items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func withoutProduct(items []models.CartItem, productID int) []models.CartItem {
	next := make([]models.CartItem, 0, len(items))
	for i := range items {
		if items[i].ProductID != productID {
			next = append(next, items[i])
		}
	}
	return next
}
