//go:build !tinygo

package hal

import (
	"context"
	"sync"
)

type hostKeyboard struct {
	ch chan Key

	mu      sync.Mutex
	pending []Key
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan Key, 64)}
}

// push queues a key; it drops the key if the queue is full.
func (k *hostKeyboard) push(key Key) {
	select {
	case k.ch <- key:
	default:
	}
}

func (k *hostKeyboard) ReadKey() (Key, bool, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.pending) > 0 {
		key := k.pending[0]
		k.pending = k.pending[1:]
		return key, true, nil
	}
	select {
	case key := <-k.ch:
		return key, true, nil
	default:
		return Key{}, false, nil
	}
}

func (k *hostKeyboard) WaitForKey(ctx context.Context) error {
	k.mu.Lock()
	if len(k.pending) > 0 {
		k.mu.Unlock()
		return nil
	}
	k.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case key := <-k.ch:
		k.mu.Lock()
		k.pending = append(k.pending, key)
		k.mu.Unlock()
		return nil
	}
}
