package console

import (
	"context"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// core is the shared request-lifecycle runner embedded by both session
// stores. Every intent goes through run: exactly one API call, whose terminal
// outcome is folded into the status together with any state mutation. The
// mutex covers status, the terminal version counter, and the embedding
// store's own state, so a fold lands atomically with its status flip.
//
// run imposes no sequencing between overlapping dispatches: the last write
// wins, which callers mitigate by disabling controls while IsLoading.
type core struct {
	mu       sync.Mutex
	status   RequestStatus
	version  uint64
	logger   Logger
	watchers []func()
}

// Status returns a snapshot of the current request status.
func (c *core) Status() RequestStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// StatusVersion returns a counter that increments on every terminal fold.
// Observers use it to tell a fresh resolution apart from a re-read of the
// same one.
func (c *core) StatusVersion() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Reset returns the status to idle without touching identity or roster
// state. Resetting an idle store is a no-op; Reset is idempotent.
func (c *core) Reset() {
	c.mu.Lock()
	changed := !c.status.Idle()
	c.status = RequestStatus{}
	c.mu.Unlock()
	if changed {
		c.changed()
	}
}

// OnChange registers fn to be invoked after every state transition. The
// callback runs outside the store lock and must not assume it is still
// observed by anyone; a store may resolve after its consumers are gone.
func (c *core) OnChange(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.watchers = append(c.watchers, fn)
	c.mu.Unlock()
}

// run performs a single request lifecycle for the named intent. call does
// the API round trip and returns an apply closure folding its value into the
// store; apply executes under the store lock right before the success status
// is published. On rejection nothing is applied and prior state stands.
func (c *core) run(ctx context.Context, intent, successMessage string, call func(ctx context.Context) (func(), error)) error {
	select {
	case <-ctx.Done():
		err := goerrors.Wrap(ctx.Err(), goerrors.CategoryOperation, "context cancelled before dispatch")
		c.fail(intent, err)
		return err
	default:
	}

	c.begin(intent)

	apply, err := call(ctx)
	if err != nil {
		c.fail(intent, err)
		return err
	}

	c.succeed(intent, successMessage, apply)
	return nil
}

func (c *core) begin(intent string) {
	c.mu.Lock()
	c.status = pendingStatus()
	c.mu.Unlock()
	c.log().Debug("%s: dispatched", intent)
	c.changed()
}

func (c *core) succeed(intent, message string, apply func()) {
	c.mu.Lock()
	if apply != nil {
		apply()
	}
	c.status = successStatus(message)
	c.version++
	c.mu.Unlock()
	c.log().Debug("%s: fulfilled", intent)
	c.changed()
}

func (c *core) fail(intent string, err error) {
	message := DisplayMessage(err)
	c.mu.Lock()
	c.status = errorStatus(message)
	c.version++
	c.mu.Unlock()
	c.log().Error("%s: rejected: %v", intent, err)
	c.changed()
}

func (c *core) changed() {
	c.mu.Lock()
	watchers := make([]func(), len(c.watchers))
	copy(watchers, c.watchers)
	c.mu.Unlock()
	for _, fn := range watchers {
		fn()
	}
}

func (c *core) log() Logger {
	if c.logger == nil {
		return defLogger{}
	}
	return c.logger
}
