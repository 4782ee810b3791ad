package notifier

import "sync"

// Notifier fans invalidation signals out to in-process observers. Delivery is
// at-least-once; callbacks must tolerate redundant invalidations and simply
// re-run the pipeline.
type Notifier struct {
	mu   sync.Mutex
	subs []func()
}

func New() *Notifier {
	return &Notifier{}
}

// OnInvalidate registers a callback fired on every invalidation signal.
func (n *Notifier) OnInvalidate(cb func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, cb)
}

// Invalidate signals all observers synchronously, in registration order.
func (n *Notifier) Invalidate() {
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, cb := range subs {
		cb()
	}
}
