package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/coder/websocket"
)

// Frame types and actions on the subscribe socket. These mirror the
// server's realtime protocol.
const (
	frameSnapshot = "snapshot"
	frameChange   = "change"
	frameError    = "error"

	actionSubscribe   = "subscribe"
	actionUnsubscribe = "unsubscribe"
)

type clientFrame struct {
	Action string `json:"action"`
	Path   string `json:"path"`
}

type serverFrame struct {
	Path  string          `json:"path"`
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

type feedSub struct {
	onChange func(json.RawMessage)
	onError  func(error)
	errOnce  sync.Once
	done     bool
}

// Feed is the websocket Subscriber. One connection carries every
// subscription; a single read loop dispatches frames, which is what keeps
// per-path delivery in order on the client side too.
type Feed struct {
	wsURL   string
	session *SessionManager

	mu      sync.Mutex
	conn    *websocket.Conn
	subs    map[string][]*feedSub
	writeMu sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewFeed creates a feed for the server at baseURL. Connect must be called
// before Subscribe.
func NewFeed(baseURL string, session *SessionManager) *Feed {
	wsURL := strings.TrimRight(baseURL, "/")
	wsURL = strings.Replace(wsURL, "https://", "wss://", 1)
	wsURL = strings.Replace(wsURL, "http://", "ws://", 1)
	return &Feed{
		wsURL:   wsURL + apiPrefix + "/subscribe",
		session: session,
		subs:    make(map[string][]*feedSub),
	}
}

// Connect dials the subscribe socket with the session's bearer token and
// starts the read loop.
func (f *Feed) Connect(ctx context.Context) error {
	token, ok := f.session.Token()
	if !ok {
		return ErrUnauthenticated
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, _, err := websocket.Dial(ctx, f.wsURL, &websocket.DialOptions{
		HTTPHeader: header,
	})
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.conn = conn
	f.ctx, f.cancel = context.WithCancel(context.Background())
	f.mu.Unlock()

	go f.readLoop()
	return nil
}

// Close tears down the connection. Active subscriptions each get their
// onError once.
func (f *Feed) Close() {
	f.mu.Lock()
	conn := f.conn
	cancel := f.cancel
	f.conn = nil
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		_ = conn.Close(websocket.StatusNormalClosure, "client closed")
	}
	f.failAll(ErrNotConnected)
}

// Subscribe registers callbacks for a path. The snapshot arrives through
// onChange like any other delivery.
func (f *Feed) Subscribe(path string, onChange func(json.RawMessage), onError func(err error)) (CancelFunc, error) {
	f.mu.Lock()
	if f.conn == nil {
		f.mu.Unlock()
		return nil, ErrNotConnected
	}
	sub := &feedSub{onChange: onChange, onError: onError}
	f.subs[path] = append(f.subs[path], sub)
	ctx := f.ctx
	f.mu.Unlock()

	if err := f.writeFrame(ctx, clientFrame{Action: actionSubscribe, Path: path}); err != nil {
		f.remove(path, sub)
		return nil, err
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			if f.remove(path, sub) {
				// Last local subscriber for the path; stop the stream.
				_ = f.writeFrame(ctx, clientFrame{Action: actionUnsubscribe, Path: path})
			}
		})
	}
	return cancel, nil
}

func (f *Feed) writeFrame(ctx context.Context, frame clientFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	f.mu.Lock()
	conn := f.conn
	f.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	return conn.Write(ctx, websocket.MessageText, data)
}

// remove detaches a subscriber and reports whether it was the last one
// watching that path.
func (f *Feed) remove(path string, sub *feedSub) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	subs := f.subs[path]
	for i, s := range subs {
		if s == sub {
			s.done = true
			subs = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(f.subs, path)
		return true
	}
	f.subs[path] = subs
	return false
}

func (f *Feed) readLoop() {
	f.mu.Lock()
	conn := f.conn
	ctx := f.ctx
	f.mu.Unlock()
	if conn == nil {
		return
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			f.failAll(err)
			return
		}

		var frame serverFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			continue
		}
		f.dispatch(frame)
	}
}

func (f *Feed) dispatch(frame serverFrame) {
	f.mu.Lock()
	subs := append([]*feedSub(nil), f.subs[frame.Path]...)
	if frame.Type == frameError {
		// The server has dropped the path; mirror that locally.
		delete(f.subs, frame.Path)
	}
	f.mu.Unlock()

	for _, sub := range subs {
		switch frame.Type {
		case frameSnapshot, frameChange:
			sub.onChange(frame.Data)
		case frameError:
			f.failSub(sub, fmt.Errorf("subscription failed: %s", frame.Error))
		}
	}
}

func (f *Feed) failAll(err error) {
	f.mu.Lock()
	var all []*feedSub
	for path, subs := range f.subs {
		all = append(all, subs...)
		delete(f.subs, path)
	}
	f.mu.Unlock()

	for _, sub := range all {
		f.failSub(sub, err)
	}
}

func (f *Feed) failSub(sub *feedSub, err error) {
	sub.errOnce.Do(func() {
		if sub.onError != nil {
			sub.onError(err)
		}
	})
}
