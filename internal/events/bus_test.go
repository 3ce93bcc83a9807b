package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/roadrover/ivi-audio/internal/events"
	"github.com/roadrover/ivi-audio/internal/models"
)

func runBus(t *testing.T) *events.Bus {
	t.Helper()
	bus := events.NewBus()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go bus.Run(ctx)
	return bus
}

func syncBus(t *testing.T, bus *events.Bus) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := bus.Sync(ctx); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}

func TestBusDeliversInPostOrder(t *testing.T) {
	bus := runBus(t)

	var got []int
	bus.Handle(func(ev models.Event) {
		got = append(got, ev.(models.VolumeChanged).Value)
	})

	for i := 0; i < 100; i++ {
		bus.Post(models.VolumeChanged{ID: models.ParamVolumeMaster, Value: i})
	}
	syncBus(t, bus)

	if len(got) != 100 {
		t.Fatalf("delivered %d events, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("event %d has value %d: out of order", i, v)
		}
	}
}

func TestBusPostBeforeRun(t *testing.T) {
	bus := events.NewBus()
	var n int
	bus.Handle(func(models.Event) { n++ })
	bus.Post(models.MuteChanged{Mute: true})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go bus.Run(ctx)
	syncBus(t, bus)

	if n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
}

func TestBusHandlerRemove(t *testing.T) {
	bus := runBus(t)
	var n int
	remove := bus.Handle(func(models.Event) { n++ })

	bus.Post(models.SecondaryMuteChanged{Mute: true})
	syncBus(t, bus)
	remove()
	bus.Post(models.SecondaryMuteChanged{Mute: false})
	syncBus(t, bus)

	if n != 1 {
		t.Errorf("handler called %d times, want 1", n)
	}
}

func TestBusSubscribePublish(t *testing.T) {
	bus := runBus(t)
	ch := bus.Subscribe("test1")

	bus.Post(models.VolumeBar{ID: models.ParamVolumeMaster, Value: 3, Max: 40})

	select {
	case got := <-ch:
		bar, ok := got.(models.VolumeBar)
		if !ok || bar.Value != 3 {
			t.Errorf("got %#v, want VolumeBar with value 3", got)
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for event")
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := events.NewBus()
	ch := bus.Subscribe("test-unsub")

	bus.Unsubscribe("test-unsub")

	// Channel should be closed
	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to be closed after unsubscribe")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("timed out waiting for channel close")
	}
}

func TestBusResubscribeClosesPreviousChannel(t *testing.T) {
	bus := runBus(t)
	first := bus.Subscribe("dup")
	second := bus.Subscribe("dup")

	select {
	case _, ok := <-first:
		if ok {
			t.Error("first channel received a value, want closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Fatal("first channel not closed by second Subscribe")
	}

	bus.Post(models.MuteChanged{Mute: true})
	syncBus(t, bus)
	select {
	case ev := <-second:
		if ev.Kind() != models.KindMuteChanged {
			t.Errorf("second channel got %v", ev.Kind())
		}
	default:
		t.Fatal("second channel did not receive the event")
	}

	if n := bus.SubscriberCount(); n != 1 {
		t.Errorf("SubscriberCount = %d, want 1", n)
	}
	bus.Unsubscribe("dup")
	if _, ok := <-second; ok {
		t.Error("second channel still open after Unsubscribe")
	}
}

func TestBusSlowSubscriberDoesNotStallHandlers(t *testing.T) {
	bus := runBus(t)
	_ = bus.Subscribe("slow-reader")

	var n int
	bus.Handle(func(models.Event) { n++ })
	for i := 0; i < 50; i++ {
		bus.Post(models.VolumeChanged{Value: i})
	}
	syncBus(t, bus)

	if n != 50 {
		t.Errorf("handler saw %d events, want 50", n)
	}
	bus.Unsubscribe("slow-reader")
}

func TestBusSubscriberCount(t *testing.T) {
	bus := events.NewBus()
	if n := bus.SubscriberCount(); n != 0 {
		t.Errorf("expected 0 subscribers, got %d", n)
	}
	bus.Subscribe("s1")
	bus.Subscribe("s2")
	if n := bus.SubscriberCount(); n != 2 {
		t.Errorf("expected 2 subscribers, got %d", n)
	}
	bus.Unsubscribe("s1")
	if n := bus.SubscriberCount(); n != 1 {
		t.Errorf("expected 1 subscriber, got %d", n)
	}
}

func TestBusSyncHonoursContext(t *testing.T) {
	bus := events.NewBus() // not running
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := bus.Sync(ctx); err == nil {
		t.Error("Sync without a running bus should time out")
	}
}
