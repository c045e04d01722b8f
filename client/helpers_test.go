package client

import (
	"encoding/json"
	"sync"
	"testing"
)

// fakeSubscriber is an in-process Subscriber that tests drive by hand.
type fakeSubscriber struct {
	mu        sync.Mutex
	onChange  map[string]func(json.RawMessage)
	onError   map[string]func(error)
	cancelled map[string]int
}

func newFakeSubscriber() *fakeSubscriber {
	return &fakeSubscriber{
		onChange:  make(map[string]func(json.RawMessage)),
		onError:   make(map[string]func(error)),
		cancelled: make(map[string]int),
	}
}

func (f *fakeSubscriber) Subscribe(path string, onChange func(json.RawMessage), onError func(error)) (CancelFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange[path] = onChange
	f.onError[path] = onError
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.cancelled[path]++
	}, nil
}

// push delivers a value to the path's subscriber, JSON-encoded.
func (f *fakeSubscriber) push(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal push value: %v", err)
	}
	f.mu.Lock()
	fn := f.onChange[path]
	f.mu.Unlock()
	if fn == nil {
		t.Fatalf("no subscriber for path %s", path)
	}
	fn(data)
}

func (f *fakeSubscriber) fail(t *testing.T, path string, err error) {
	t.Helper()
	f.mu.Lock()
	fn := f.onError[path]
	f.mu.Unlock()
	if fn == nil {
		t.Fatalf("no subscriber for path %s", path)
	}
	fn(err)
}
