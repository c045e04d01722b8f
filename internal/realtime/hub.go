package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/safebite/safebite/internal/docpath"
	"github.com/safebite/safebite/internal/middleware"
)

// Frame types sent to subscribers.
const (
	FrameSnapshot = "snapshot"
	FrameChange   = "change"
	FrameError    = "error"
)

// Client actions.
const (
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// ClientFrame is a control message from a subscriber connection.
type ClientFrame struct {
	Action string `json:"action"`
	Path   string `json:"path"`
}

// ServerFrame is one delivery to a subscriber. A snapshot arrives
// immediately after subscribing, a change per remote commit after that,
// and at most one error per subscription; an errored path must be
// resubscribed to recover.
type ServerFrame struct {
	Path  string      `json:"path"`
	Type  string      `json:"type"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

// Hub upgrades authenticated requests to websocket subscriber sessions.
type Hub struct {
	redis  *redis.Client
	source SnapshotSource
}

func NewHub(redisClient *redis.Client, source SnapshotSource) *Hub {
	return &Hub{redis: redisClient, source: source}
}

// Subscribe is the gin handler for GET /subscribe. Runs behind
// AuthMiddleware; the session is bound to the authenticated user and can
// only watch that user's partition plus the global collections.
func (h *Hub) Subscribe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatus(401)
		return
	}

	ws, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		log.Printf("Failed to accept websocket: %v", err)
		return
	}
	defer func() {
		_ = ws.Close(websocket.StatusNormalClosure, "session ended")
	}()

	h.session(c.Request.Context(), ws, userID.String())
}

// session runs the per-connection loop. One goroutine owns the Redis
// pubsub and all websocket writes, which is what guarantees strict
// per-path delivery order.
func (h *Hub) session(parent context.Context, ws *websocket.Conn, userID string) {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	pubsub := h.redis.Subscribe(ctx)
	defer func() {
		_ = pubsub.Close()
	}()
	msgs := pubsub.Channel()

	frames := make(chan ClientFrame)
	go func() {
		defer cancel()
		for {
			_, data, err := ws.Read(ctx)
			if err != nil {
				return
			}
			var frame ClientFrame
			if err := json.Unmarshal(data, &frame); err != nil {
				continue
			}
			select {
			case frames <- frame:
			case <-ctx.Done():
				return
			}
		}
	}()

	// channel name -> parsed ref for every active subscription.
	subs := make(map[string]docpath.Ref)

	for {
		select {
		case <-ctx.Done():
			return

		case frame := <-frames:
			switch frame.Action {
			case ActionSubscribe:
				if err := h.subscribePath(ctx, ws, pubsub, subs, userID, frame.Path); err != nil {
					return
				}
			case ActionUnsubscribe:
				// Idempotent: unknown paths are ignored.
				if _, ok := subs[channelFor(frame.Path)]; ok {
					_ = pubsub.Unsubscribe(ctx, channelFor(frame.Path))
					delete(subs, channelFor(frame.Path))
				}
			}

		case msg, ok := <-msgs:
			if !ok {
				return
			}
			ref, subscribed := subs[msg.Channel]
			if !subscribed {
				continue
			}
			data, err := h.source.Snapshot(ctx, ref)
			if err != nil {
				// One error per subscription, then the feed for this
				// path goes quiet until the client resubscribes.
				_ = pubsub.Unsubscribe(ctx, msg.Channel)
				delete(subs, msg.Channel)
				if writeErr := writeFrame(ctx, ws, ServerFrame{Path: ref.Path, Type: FrameError, Error: err.Error()}); writeErr != nil {
					return
				}
				continue
			}
			if err := writeFrame(ctx, ws, ServerFrame{Path: ref.Path, Type: FrameChange, Data: data}); err != nil {
				return
			}
		}
	}
}

func (h *Hub) subscribePath(ctx context.Context, ws *websocket.Conn, pubsub *redis.PubSub, subs map[string]docpath.Ref, userID, path string) error {
	ref, err := docpath.Parse(path)
	if err != nil {
		return writeFrame(ctx, ws, ServerFrame{Path: path, Type: FrameError, Error: err.Error()})
	}
	if ref.UserID != "" && ref.UserID != userID {
		return writeFrame(ctx, ws, ServerFrame{Path: path, Type: FrameError, Error: "permission denied"})
	}

	// Subscribe to the channel before reading the snapshot so no commit
	// lands between them unobserved.
	if _, ok := subs[channelFor(path)]; !ok {
		if err := pubsub.Subscribe(ctx, channelFor(path)); err != nil {
			return writeFrame(ctx, ws, ServerFrame{Path: path, Type: FrameError, Error: err.Error()})
		}
		subs[channelFor(path)] = ref
	}

	data, err := h.source.Snapshot(ctx, ref)
	if err != nil {
		_ = pubsub.Unsubscribe(ctx, channelFor(path))
		delete(subs, channelFor(path))
		return writeFrame(ctx, ws, ServerFrame{Path: path, Type: FrameError, Error: err.Error()})
	}

	return writeFrame(ctx, ws, ServerFrame{Path: path, Type: FrameSnapshot, Data: data})
}

func writeFrame(ctx context.Context, ws *websocket.Conn, frame ServerFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}
