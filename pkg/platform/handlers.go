package platform

import "sync"

// handlerList is an ordered set of callbacks with stable removal.
type handlerList[F any] struct {
	mu      sync.RWMutex
	nextID  int
	entries []handlerEntry[F]
}

type handlerEntry[F any] struct {
	id int
	fn F
}

func (l *handlerList[F]) add(fn F) func() {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.entries = append(l.entries, handlerEntry[F]{id: id, fn: fn})
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			for i, e := range l.entries {
				if e.id == id {
					l.entries = append(l.entries[:i], l.entries[i+1:]...)
					return
				}
			}
		})
	}
}

func (l *handlerList[F]) snapshot() []F {
	l.mu.RLock()
	defer l.mu.RUnlock()
	fns := make([]F, len(l.entries))
	for i, e := range l.entries {
		fns[i] = e.fn
	}
	return fns
}

func (l *handlerList[F]) len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
