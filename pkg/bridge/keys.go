package bridge

import (
	"errors"
	"sync"
)

// KeySource delivers global key presses. Listen registers fn and returns a
// function that unregisters it.
type KeySource interface {
	Listen(fn func(key string)) (stop func())
}

// Subscription is a scoped key listener. Close releases it; further
// key presses are no longer forwarded.
type Subscription interface {
	Close() error
}

type subscription struct {
	b    *Bridge
	once sync.Once
	stop func()
}

// Subscribe forwards key presses from src to the bridge as [KeyDown]
// events until the returned subscription or the bridge is closed.
func (b *Bridge) Subscribe(src KeySource) Subscription {
	s := &subscription{b: b}
	b.subsMu.Lock()
	b.subs[s] = struct{}{}
	b.subsMu.Unlock()

	s.stop = src.Listen(func(key string) {
		if _, err := b.Submit(KeyDown{Key: key}); err != nil && !errors.Is(err, ErrClosed) {
			b.logger.Debug("key event not applied", "key", key, "err", err)
		}
	})
	return s
}

func (s *subscription) Close() error {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
		s.b.subsMu.Lock()
		delete(s.b.subs, s)
		s.b.subsMu.Unlock()
	})
	return nil
}
