package cart

import "testing"

func TestBroker_DeliversOnlyToUser(t *testing.T) {
	b := NewBroker()
	a, cancelA := b.Subscribe("a")
	defer cancelA()
	other, cancelOther := b.Subscribe("b")
	defer cancelOther()

	b.Publish(Event{UserID: "a", Count: 1})

	if ev := <-a; ev.Count != 1 {
		t.Fatalf("expected count 1, got %d", ev.Count)
	}
	select {
	case ev := <-other:
		t.Fatalf("unexpected event for b: %+v", ev)
	default:
	}
}

func TestBroker_SlowSubscriberDropsEvents(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe("a")
	defer cancel()

	for i := 0; i < subscriberBuffer+5; i++ {
		b.Publish(Event{UserID: "a", Count: i})
	}

	if len(ch) != subscriberBuffer {
		t.Fatalf("expected %d buffered events, got %d", subscriberBuffer, len(ch))
	}
	if ev := <-ch; ev.Count != 0 {
		t.Fatalf("expected oldest event first, got %d", ev.Count)
	}
}

func TestBroker_CancelClosesAndUnsubscribes(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe("a")

	if b.Subscribers("a") != 1 {
		t.Fatalf("expected 1 subscriber")
	}

	cancel()
	cancel()

	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}
	if b.Subscribers("a") != 0 {
		t.Fatalf("expected subscriber to be removed")
	}

	// publishing after cancel must not panic
	b.Publish(Event{UserID: "a"})
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe("a")
	defer cancel()

	b.Close()
	if _, ok := <-ch; ok {
		t.Fatal("expected channel to be closed")
	}

	late, _ := b.Subscribe("a")
	if _, ok := <-late; ok {
		t.Fatal("expected late subscription to be closed")
	}
}
