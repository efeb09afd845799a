package ws

import (
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/trygraphite/platter-sub000/entity"
)

// fakeSession records everything the hub delivers to it.
type fakeSession struct {
	id string

	mu     sync.Mutex
	events []recordedEvent
	fail   bool
}

type recordedEvent struct {
	Event   string
	Payload any
}

func (f *fakeSession) ID() string { return f.id }

func (f *fakeSession) Send(event string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errSendFailed
	}
	f.events = append(f.events, recordedEvent{event, payload})
	return nil
}

var errSendFailed = &sendError{}

type sendError struct{}

func (*sendError) Error() string { return "send failed" }

func (f *fakeSession) recorded() []recordedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedEvent, len(f.events))
	copy(out, f.events)
	return out
}

func testOrder(id, restaurantID uint) *entity.Order {
	return &entity.Order{Model: gorm.Model{ID: id}, RestaurantID: restaurantID, Status: entity.StatusPending}
}

func TestPublishReachesEverySubscriberExactlyOnce(t *testing.T) {
	hub := NewHub()
	a := &fakeSession{id: "a"}
	b := &fakeSession{id: "b"}
	hub.Join(a, RestaurantTopic(7))
	hub.Join(b, RestaurantTopic(7))

	hub.Publish(RestaurantTopic(7), EventOrderUpdate, testOrder(1, 7))

	for _, s := range []*fakeSession{a, b} {
		got := s.recorded()
		if len(got) != 1 {
			t.Fatalf("session %s received %d events, want 1", s.id, len(got))
		}
		if got[0].Event != EventOrderUpdate {
			t.Errorf("session %s event = %s", s.id, got[0].Event)
		}
	}
}

func TestPublishToEmptyTopicIsNoOp(t *testing.T) {
	hub := NewHub()
	// must not panic or error; subscribers may legitimately not exist yet
	hub.Publish(OrderTopic(42), EventOrderUpdate, testOrder(42, 1))
}

func TestLeaveStopsDelivery(t *testing.T) {
	hub := NewHub()
	s := &fakeSession{id: "s"}
	hub.Join(s, OrderTopic(1))
	hub.Leave(s, OrderTopic(1))

	hub.Publish(OrderTopic(1), EventOrderUpdate, testOrder(1, 1))
	if len(s.recorded()) != 0 {
		t.Error("left session still receiving")
	}
}

func TestPublishOrderFansOutToBothTopics(t *testing.T) {
	hub := NewHub()
	guest := &fakeSession{id: "guest"}
	staff := &fakeSession{id: "staff"}
	both := &fakeSession{id: "both"} // staff viewing list and detail at once

	hub.Join(guest, OrderTopic(5))
	hub.Join(staff, RestaurantTopic(3))
	hub.Join(both, OrderTopic(5))
	hub.Join(both, RestaurantTopic(3))

	hub.PublishOrder(EventOrderUpdate, testOrder(5, 3))

	if n := len(guest.recorded()); n != 1 {
		t.Errorf("guest got %d events, want 1", n)
	}
	if n := len(staff.recorded()); n != 1 {
		t.Errorf("staff got %d events, want 1", n)
	}
	// one delivery per topic joined, by design
	if n := len(both.recorded()); n != 2 {
		t.Errorf("dual-room session got %d events, want 2", n)
	}
}

func TestLeaveAllTearsDownEveryMembership(t *testing.T) {
	hub := NewHub()
	s := &fakeSession{id: "s"}
	hub.Join(s, OrderTopic(1))
	hub.Join(s, OrderTopic(2))
	hub.Join(s, RestaurantTopic(3))

	hub.LeaveAll(s)

	hub.Publish(OrderTopic(1), EventOrderUpdate, testOrder(1, 3))
	hub.Publish(OrderTopic(2), EventOrderUpdate, testOrder(2, 3))
	hub.Publish(RestaurantTopic(3), EventNewOrder, testOrder(9, 3))
	if len(s.recorded()) != 0 {
		t.Error("disconnected session still receiving")
	}
}

func TestDeadSessionDoesNotBreakFanOut(t *testing.T) {
	hub := NewHub()
	dead := &fakeSession{id: "dead", fail: true}
	live := &fakeSession{id: "live"}
	hub.Join(dead, RestaurantTopic(1))
	hub.Join(live, RestaurantTopic(1))

	// best-effort: the dead session's failure is not the publisher's concern
	hub.Publish(RestaurantTopic(1), EventOrderUpdate, testOrder(1, 1))
	if len(live.recorded()) != 1 {
		t.Error("live session missed the event")
	}
}

func TestPublishOrderDeletedPayload(t *testing.T) {
	hub := NewHub()
	s := &fakeSession{id: "s"}
	hub.Join(s, OrderTopic(8))

	hub.PublishOrderDeleted(8, 2)

	got := s.recorded()
	if len(got) != 1 || got[0].Event != EventOrderDeleted {
		t.Fatalf("recorded = %+v", got)
	}
	payload, ok := got[0].Payload.(map[string]any)
	if !ok {
		t.Fatalf("payload type %T", got[0].Payload)
	}
	if payload["id"] != uint(8) || payload["ownerId"] != uint(2) {
		t.Errorf("payload = %v", payload)
	}
}

func TestWaiterAlertGoesToRestaurantFeedOnly(t *testing.T) {
	hub := NewHub()
	staff := &fakeSession{id: "staff"}
	guest := &fakeSession{id: "guest"}
	hub.Join(staff, RestaurantTopic(4))
	hub.Join(guest, OrderTopic(1))

	hub.PublishWaiterAlert(4, "T2", "need cutlery")

	if len(guest.recorded()) != 0 {
		t.Error("waiter alert leaked to an order room")
	}
	got := staff.recorded()
	if len(got) != 1 || got[0].Event != EventWaiterAlert {
		t.Fatalf("recorded = %+v", got)
	}
	payload := got[0].Payload.(map[string]any)
	if payload["tableNumber"] != "T2" || payload["message"] != "need cutlery" {
		t.Errorf("payload = %v", payload)
	}
}

func TestConcurrentJoinLeavePublish(t *testing.T) {
	hub := NewHub()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s := &fakeSession{id: string(rune('a' + n))}
			for j := 0; j < 100; j++ {
				hub.Join(s, RestaurantTopic(1))
				hub.Publish(RestaurantTopic(1), EventOrderUpdate, testOrder(1, 1))
				hub.Leave(s, RestaurantTopic(1))
			}
		}(i)
	}
	wg.Wait()
}
