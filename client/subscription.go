package client

import "encoding/json"

// CancelFunc tears down a subscription. Idempotent; every subscriber must
// call it on teardown or the path keeps streaming.
type CancelFunc func()

// Subscriber delivers live document updates for logical paths. The first
// delivery after subscribing is the current snapshot; each one after that
// reflects a remote commit and carries the whole value at the path, so
// mirrors are replaced wholesale rather than patched. Deliveries for one
// path arrive in order. onError fires at most once per subscription and
// ends it; resubscribe to recover.
type Subscriber interface {
	Subscribe(path string, onChange func(data json.RawMessage), onError func(err error)) (CancelFunc, error)
}
