package entity

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to confirmed", StatusPending, StatusConfirmed, true},
		{"confirmed to preparing", StatusConfirmed, StatusPreparing, true},
		{"preparing to ready", StatusPreparing, StatusReady, true},
		{"ready to delivered", StatusReady, StatusDelivered, true},
		{"skip ahead allowed", StatusPending, StatusReady, true},
		{"same status is idempotent", StatusPreparing, StatusPreparing, true},
		{"cancel from pending", StatusPending, StatusCancelled, true},
		{"cancel from ready", StatusReady, StatusCancelled, true},
		{"backwards denied", StatusPreparing, StatusConfirmed, false},
		{"ready back to pending", StatusReady, StatusPending, false},
		{"delivered is terminal", StatusDelivered, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusConfirmed, false},
		{"cancelled stays cancelled", StatusCancelled, StatusCancelled, true},
		{"unknown status", StatusPending, Status("BOGUS"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CanTransition(tc.from, tc.to); got != tc.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestItemTransitionStampsTimestampOnce(t *testing.T) {
	item := &OrderItem{Status: StatusPending}

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	if err := item.Transition(StatusConfirmed, first); err != nil {
		t.Fatalf("transition to CONFIRMED: %v", err)
	}
	if item.ConfirmedAt == nil || !item.ConfirmedAt.Equal(first) {
		t.Fatalf("ConfirmedAt = %v, want %v", item.ConfirmedAt, first)
	}

	// re-applying the same status succeeds and keeps the original stamp
	later := first.Add(time.Hour)
	if err := item.Transition(StatusConfirmed, later); err != nil {
		t.Fatalf("idempotent re-apply: %v", err)
	}
	if !item.ConfirmedAt.Equal(first) {
		t.Errorf("ConfirmedAt overwritten to %v, want %v", item.ConfirmedAt, first)
	}
}

func TestItemTransitionInvalidLeavesStateUnchanged(t *testing.T) {
	item := &OrderItem{Status: StatusPreparing}
	if err := item.Transition(StatusConfirmed, time.Now()); err == nil {
		t.Fatal("expected error for backwards transition")
	}
	if item.Status != StatusPreparing {
		t.Errorf("status mutated to %s", item.Status)
	}
	if item.ConfirmedAt != nil {
		t.Error("timestamp stamped on failed transition")
	}
}

func TestItemCancelledIsTerminal(t *testing.T) {
	item := &OrderItem{Status: StatusPending}
	now := time.Now()
	if err := item.Transition(StatusCancelled, now); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := item.Transition(StatusDelivered, now); err == nil {
		t.Fatal("expected cancelled item to reject further transitions")
	}
}

func TestOrderSkipsReady(t *testing.T) {
	order := &Order{Status: StatusPreparing}
	if err := order.Transition(StatusReady, time.Now()); err == nil {
		t.Fatal("orders must not take READY")
	}
	if err := order.Transition(StatusDelivered, time.Now()); err != nil {
		t.Fatalf("preparing to delivered: %v", err)
	}
}

func TestOrderDeliveredRequiresSettledItems(t *testing.T) {
	order := &Order{
		Status: StatusPreparing,
		Items: []OrderItem{
			{Status: StatusDelivered},
			{Status: StatusPreparing},
		},
	}
	if err := order.Transition(StatusDelivered, time.Now()); err == nil {
		t.Fatal("order delivered while an item is still preparing")
	}

	order.Items[1].Status = StatusCancelled
	if err := order.Transition(StatusDelivered, time.Now()); err != nil {
		t.Fatalf("all items settled, transition should pass: %v", err)
	}
}

func TestForceStatusSkipsValidation(t *testing.T) {
	order := &Order{Status: StatusDelivered}
	now := time.Now()

	// bulk side effect may move the order record wherever the bulk action
	// pointed, validation or not
	order.ForceStatus(StatusPreparing, now)
	if order.Status != StatusPreparing {
		t.Errorf("status = %s, want PREPARING", order.Status)
	}
	if order.PreparingAt == nil {
		t.Error("PreparingAt not stamped")
	}

	// but never READY, and never garbage
	order.ForceStatus(StatusReady, now)
	if order.Status == StatusReady {
		t.Error("ForceStatus accepted READY")
	}
	order.ForceStatus(Status("BOGUS"), now)
	if order.Status == Status("BOGUS") {
		t.Error("ForceStatus accepted unknown status")
	}
}

func TestRecomputeTotal(t *testing.T) {
	order := &Order{
		Items: []OrderItem{
			{Quantity: 2, UnitPrice: 1500, Status: StatusPending},
			{Quantity: 1, UnitPrice: 1500, Status: StatusPending},
		},
	}
	order.RecomputeTotal()
	if order.TotalAmount != 4500 {
		t.Fatalf("total = %d, want 4500", order.TotalAmount)
	}

	// cancelling a quantity-1, price-1500 item drops the total to 3000
	if err := order.Items[1].Transition(StatusCancelled, time.Now()); err != nil {
		t.Fatalf("cancel item: %v", err)
	}
	order.RecomputeTotal()
	if order.TotalAmount != 3000 {
		t.Errorf("total after cancel = %d, want 3000", order.TotalAmount)
	}
}
