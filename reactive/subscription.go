package reactive

import (
	"sync"

	"github.com/google/uuid"
)

// Subscription is a handle on a registered callback.
type Subscription struct {
	ID     uuid.UUID
	once   sync.Once
	cancel func()
}

func newSubscription(id uuid.UUID, cancel func()) *Subscription {
	return &Subscription{ID: id, cancel: cancel}
}

// Unsubscribe stops further deliveries. It is safe to call more than once,
// from any goroutine, including from inside the callback itself.
func (s *Subscription) Unsubscribe() {
	if s == nil {
		return
	}
	s.once.Do(s.cancel)
}
