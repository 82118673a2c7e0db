package console

import (
	"sync"
	"time"
)

// DefaultDismissDelay is how long a surfaced message stays before the bridge
// resets the owning store back to idle.
var DefaultDismissDelay = 4 * time.Second

// NotificationBridge translates terminal request status into a transient
// user-visible message. Each resolved request surfaces exactly once; after
// the dismiss delay the store is reset so the message cannot resurface on an
// unrelated re-read. A newer terminal status supersedes a pending dismissal
// rather than stacking behind it. The bridge never fires while a request is
// pending, and silent successes (empty message) surface nothing.
type NotificationBridge struct {
	mu     sync.Mutex
	source StatusSource
	sink   Notifier
	delay  time.Duration
	timer  *time.Timer
	seen   uint64
	logger Logger
}

type NotificationBridgeOption func(*NotificationBridge)

// WithDismissDelay overrides the auto-dismiss delay.
func WithDismissDelay(d time.Duration) NotificationBridgeOption {
	return func(b *NotificationBridge) {
		if d > 0 {
			b.delay = d
		}
	}
}

// WithBridgeLogger overrides the bridge logger.
func WithBridgeLogger(l Logger) NotificationBridgeOption {
	return func(b *NotificationBridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewNotificationBridge attaches a bridge to a store's status. The bridge
// subscribes to the store and needs no further wiring; call Close to detach
// its pending timer on teardown.
func NewNotificationBridge(source StatusSource, sink Notifier, opts ...NotificationBridgeOption) *NotificationBridge {
	if source == nil {
		panic("Missing status source in notification bridge...")
	}
	if sink == nil {
		panic("Missing notification sink in notification bridge...")
	}

	b := &NotificationBridge{
		source: source,
		sink:   sink,
		delay:  DefaultDismissDelay,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	source.OnChange(b.observe)
	return b
}

// observe runs on every store transition. The version counter debounces
// duplicate reads of the same terminal status.
func (b *NotificationBridge) observe() {
	version := b.source.StatusVersion()
	status := b.source.Status()
	if b.source.StatusVersion() != version {
		// A fold landed between the two reads. That fold triggers its own
		// observe pass with a consistent snapshot; this torn one is dropped.
		return
	}

	b.mu.Lock()

	if !status.Terminal() {
		// Idle or pending. An intervening reset cancels a scheduled
		// dismissal; pending leaves it alone until the fresh terminal
		// status arrives to supersede it.
		if status.Idle() {
			b.stopTimerLocked()
		}
		b.mu.Unlock()
		return
	}

	if version == b.seen {
		b.mu.Unlock()
		return
	}
	b.seen = version

	b.stopTimerLocked()

	if status.Message == "" {
		// Silent success, nothing to surface or dismiss.
		b.mu.Unlock()
		return
	}

	kind := NotificationSuccess
	if status.IsError {
		kind = NotificationError
	}
	message := status.Message

	b.timer = time.AfterFunc(b.delay, func() { b.dismiss(version) })
	b.mu.Unlock()

	b.logger.Debug("notify: %s %q", kind, message)
	b.sink.Notify(kind, message)
}

// dismiss resets the store only while the message it was scheduled for is
// still the current one. A timer that fires while a newer resolution is
// folding must not wipe the newer message; that resolution carries its own
// dismissal.
func (b *NotificationBridge) dismiss(version uint64) {
	b.mu.Lock()
	b.timer = nil
	b.mu.Unlock()

	if b.source.StatusVersion() != version {
		return
	}
	b.source.Reset()
}

// Close cancels any pending dismissal. The bridge stays subscribed but an
// already-scheduled reset will not fire after Close returns true.
func (b *NotificationBridge) Close() {
	b.mu.Lock()
	b.stopTimerLocked()
	b.mu.Unlock()
}

func (b *NotificationBridge) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}
