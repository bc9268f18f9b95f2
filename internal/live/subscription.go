package live

import "sync"

// Subscription is a scoped handle for one hub registration: acquired on
// view entry, released exactly once on view exit. Release is idempotent and
// safe from multiple goroutines, so defers and explicit teardown paths can
// both call it.
type Subscription struct {
	once    sync.Once
	release func()
}

func newSubscription(release func()) *Subscription {
	return &Subscription{release: release}
}

func (s *Subscription) Release() {
	if s == nil {
		return
	}
	s.once.Do(s.release)
}
