// Package client is the Go client for the order sync layer: a local order
// view kept consistent by a strict FIFO update queue and by broker events.
// The UI (guest page, kitchen board) can fire a second status change before
// the first response returns; the queue guarantees the first update's effect
// is fully applied before the second begins, whatever the network latency.
package client

import (
	"context"
	"sync"
	"time"

	"github.com/trygraphite/platter-sub000/entity"
	"github.com/trygraphite/platter-sub000/pkg/taskqueue"
	"github.com/trygraphite/platter-sub000/ws"
)

// Transport performs the network round trips. It is an external collaborator
// (HTTP or websocket RPC); implementations return the authoritative order the
// server persisted.
type Transport interface {
	SubmitItemStatus(ctx context.Context, orderID, itemID uint, status entity.Status) (*entity.Order, error)
	SubmitBulkStatus(ctx context.Context, orderID uint, status entity.Status, itemIDs []uint) (*entity.Order, error)
	SubmitOrderStatus(ctx context.Context, orderID uint, status entity.Status) (*entity.Order, error)
	FetchOrder(ctx context.Context, orderID uint) (*entity.Order, error)
}

// OrderClient tracks one order. Mutations go through the queue; broker
// events bypass it and always win, even while queued work is in flight —
// the broadcast stream is the single source of truth.
type OrderClient struct {
	orderID uint
	tr      Transport
	queue   *taskqueue.Queue

	mu    sync.RWMutex
	order *entity.Order
}

// New builds a client around an initial snapshot (fetched by the caller).
// taskTimeout bounds each queued update; a timed-out update surfaces its
// error and the queue moves on.
func New(snapshot *entity.Order, tr Transport, taskTimeout time.Duration) *OrderClient {
	return &OrderClient{
		orderID: snapshot.ID,
		tr:      tr,
		queue:   taskqueue.New(taskTimeout),
		order:   snapshot,
	}
}

// Order returns the current local view. nil after the order was deleted.
func (c *OrderClient) Order() *entity.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order
}

// UpdateItemStatus enqueues a single-item transition: optimistic local apply,
// then the round trip; the server's confirmation replaces the local view.
func (c *OrderClient) UpdateItemStatus(itemID uint, status entity.Status) <-chan error {
	return c.queue.Enqueue(func(ctx context.Context) error {
		c.applyOptimisticItem(itemID, status)
		confirmed, err := c.tr.SubmitItemStatus(ctx, c.orderID, itemID, status)
		if err != nil {
			return err
		}
		c.adopt(confirmed)
		return nil
	})
}

// UpdateBulkStatus enqueues a bulk transition over the given items (empty
// means all).
func (c *OrderClient) UpdateBulkStatus(status entity.Status, itemIDs []uint) <-chan error {
	return c.queue.Enqueue(func(ctx context.Context) error {
		confirmed, err := c.tr.SubmitBulkStatus(ctx, c.orderID, status, itemIDs)
		if err != nil {
			return err
		}
		c.adopt(confirmed)
		return nil
	})
}

// UpdateOrderStatus enqueues a whole-order transition.
func (c *OrderClient) UpdateOrderStatus(status entity.Status) <-chan error {
	return c.queue.Enqueue(func(ctx context.Context) error {
		confirmed, err := c.tr.SubmitOrderStatus(ctx, c.orderID, status)
		if err != nil {
			return err
		}
		c.adopt(confirmed)
		return nil
	})
}

// ApplyEvent feeds a broker event into the client. Broadcasts supersede any
// optimistic local state on arrival; cross-client conflicts resolve as
// last-broadcast-wins.
func (c *OrderClient) ApplyEvent(event string, order *entity.Order) {
	switch event {
	case ws.EventNewOrder, ws.EventOrderUpdate:
		if order != nil && order.ID == c.orderID {
			c.adopt(order)
		}
	case ws.EventOrderDeleted:
		c.mu.Lock()
		c.order = nil
		c.mu.Unlock()
	}
}

// Resync re-fetches the snapshot after a reconnect. Nothing was buffered for
// the dead session, so the fetch is the only way back to current state;
// incremental events apply normally afterwards.
func (c *OrderClient) Resync(ctx context.Context) error {
	order, err := c.tr.FetchOrder(ctx, c.orderID)
	if err != nil {
		return err
	}
	c.adopt(order)
	return nil
}

// Close drains and stops the update queue.
func (c *OrderClient) Close() {
	c.queue.Close()
}

func (c *OrderClient) adopt(order *entity.Order) {
	c.mu.Lock()
	c.order = order
	c.mu.Unlock()
}

func (c *OrderClient) applyOptimisticItem(itemID uint, status entity.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.order == nil {
		return
	}
	if item := c.order.ItemByID(itemID); item != nil {
		// best effort; an invalid local guess is corrected by the
		// confirmation or the next broadcast
		_ = item.Transition(status, time.Now())
		c.order.RecomputeTotal()
	}
}
