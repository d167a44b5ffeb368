package cart

import (
	"errors"
	"sync"

	"github.com/bwmarrin/snowflake"
	itemdomain "github.com/kiranapos/kirana/internal/item/domain"
	"go.uber.org/fx"
)

// ErrCartNotFound is returned for an unknown or already-finalized cart.
var ErrCartNotFound = errors.New("cart not found")

// Module provides the cart manager.
var Module = fx.Module("bill.cart",
	fx.Provide(NewManager),
)

// Manager keys in-progress carts by ID and serializes all access.
// Carts live in memory only; an unfinished cart does not survive a restart,
// matching the transient lifecycle of the create-bill screen.
type Manager struct {
	mu    sync.Mutex
	genID *snowflake.Node
	carts map[snowflake.ID]*Cart
}

func NewManager(genID *snowflake.Node) *Manager {
	return &Manager{
		genID: genID,
		carts: make(map[snowflake.ID]*Cart),
	}
}

// Create opens a new empty cart and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.genID.Generate()
	m.carts[id] = New()
	return id.String()
}

// Drop discards a cart (bill finalized or screen closed).
func (m *Manager) Drop(id string) {
	cartID, err := snowflake.ParseString(id)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
}

// Snapshot returns the current state of a cart.
func (m *Manager) Snapshot(id string) (State, error) {
	var state State
	err := m.with(id, func(c *Cart) error {
		state = c.Snapshot()
		return nil
	})
	return state, err
}

// AddItem adds an item to the cart and returns the new state.
func (m *Manager) AddItem(id string, item itemdomain.Item, quantity float64) (State, error) {
	return m.mutate(id, func(c *Cart) error {
		return c.AddItem(item, quantity)
	})
}

func (m *Manager) IncreaseQty(id string, index int) (State, error) {
	return m.mutate(id, func(c *Cart) error { return c.IncreaseQty(index) })
}

func (m *Manager) DecreaseQty(id string, index int) (State, error) {
	return m.mutate(id, func(c *Cart) error { return c.DecreaseQty(index) })
}

func (m *Manager) SetQty(id string, index int, quantity float64) (State, error) {
	return m.mutate(id, func(c *Cart) error { return c.SetQty(index, quantity) })
}

func (m *Manager) Remove(id string, index int) (State, error) {
	return m.mutate(id, func(c *Cart) error { return c.Remove(index) })
}

func (m *Manager) Clear(id string) (State, error) {
	return m.mutate(id, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

func (m *Manager) mutate(id string, fn func(*Cart) error) (State, error) {
	var state State
	err := m.with(id, func(c *Cart) error {
		if err := fn(c); err != nil {
			return err
		}
		state = c.Snapshot()
		return nil
	})
	return state, err
}

func (m *Manager) with(id string, fn func(*Cart) error) error {
	cartID, err := snowflake.ParseString(id)
	if err != nil {
		return ErrCartNotFound
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		return ErrCartNotFound
	}
	return fn(c)
}
