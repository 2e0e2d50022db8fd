package watch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierFanOut(t *testing.T) {
	notifier := NewNotifier()
	first, cancelFirst := notifier.Subscribe()
	second, cancelSecond := notifier.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	notifier.Notify()

	select {
	case <-first:
	default:
		t.Fatal("first subscriber did not receive a signal")
	}
	select {
	case <-second:
	default:
		t.Fatal("second subscriber did not receive a signal")
	}
}

func TestNotifierCoalescesPendingSignals(t *testing.T) {
	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe()
	defer cancel()

	// Repeated notifies with no reader must not block.
	notifier.Notify()
	notifier.Notify()
	notifier.Notify()

	<-ch
	select {
	case <-ch:
		t.Fatal("signals should coalesce into one pending entry")
	default:
	}
}

func TestNotifierCancelledSubscriberReceivesNothing(t *testing.T) {
	notifier := NewNotifier()
	ch, cancel := notifier.Subscribe()
	cancel()

	notifier.Notify()

	select {
	case _, ok := <-ch:
		require.False(t, ok, "cancelled subscriber must not receive signals")
	default:
	}
}

func TestNotifierNotifyWithoutSubscribers(t *testing.T) {
	notifier := NewNotifier()
	assert.NotPanics(t, notifier.Notify)
}
