package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
	"go.uber.org/zap"
)

type livePredictionRequest struct {
	SegmentID     int64  `json:"segment_id" validate:"required,min=1"`
	DepartureTime string `json:"departure_time" validate:"omitempty,max=5"`
	Weekday       string `json:"weekday" validate:"omitempty,max=16"`
}

// User. one websocket client subscribed to live segment predictions
type User struct {
	io   sync.Mutex
	conn io.ReadWriteCloser

	id  uint64
	hub *Hub
}

// readRequest. nil request for control frames
func (u *User) readRequest() (*livePredictionRequest, error) {
	u.io.Lock()
	defer u.io.Unlock()

	h, r, err := wsutil.NextReader(u.conn, ws.StateServerSide)
	if err != nil {
		return nil, err
	}
	if h.OpCode.IsControl() {
		return nil, wsutil.ControlFrameHandler(u.conn, ws.StateServerSide)(h, r)
	}

	req := &livePredictionRequest{}
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(req); err != nil {
		return nil, err
	}
	return req, nil
}

// LivePrediction. reads one request frame and answers it with a prediction frame.
// invalid requests and unknown segments are answered with an error frame and keep the connection open.
func (u *User) LivePrediction() error {
	req, err := u.readRequest()
	if err != nil {
		u.conn.Close()
		return err
	}

	if req == nil {
		return nil
	}

	if err := validateRequest(req); err != nil {
		return u.write(newErrorResponse(http.StatusBadRequest, err.Error()))
	}

	hour, weekday := parseDeparture(req.DepartureTime, req.Weekday)
	pred, err := u.hub.trafficService.PredictSegment(req.SegmentID, hour, weekday)
	if err != nil {
		status, message := statusOf(err)
		if status == http.StatusInternalServerError {
			u.hub.log.Error("live prediction failed", zap.Int64("segmentID", req.SegmentID), zap.Error(err))
		}
		return u.write(newErrorResponse(status, message))
	}

	return u.write(envelope{"data": NewPredictionResponse(pred)})
}

// write. one text frame holding the json encoding of x
func (u *User) write(x interface{}) error {
	payload, err := json.Marshal(x)
	if err != nil {
		return err
	}

	u.io.Lock()
	defer u.io.Unlock()
	return wsutil.WriteServerText(u.conn, payload)
}

// Hub. registry of the connected live prediction users
type Hub struct {
	mu             sync.RWMutex
	seq            atomic.Uint64
	users          map[uint64]*User
	trafficService TrafficService
	log            *zap.Logger
}

func NewHub(trafficService TrafficService, log *zap.Logger) *Hub {
	return &Hub{
		users:          make(map[uint64]*User),
		trafficService: trafficService,
		log:            log,
	}
}

func (h *Hub) Register(conn io.ReadWriteCloser) *User {
	user := &User{
		id:   h.seq.Add(1),
		hub:  h,
		conn: conn,
	}

	h.mu.Lock()
	h.users[user.id] = user
	h.mu.Unlock()
	return user
}

// Remove. closes the user connection and forgets it. removing twice is a no-op.
func (h *Hub) Remove(user *User) {
	h.mu.Lock()
	_, ok := h.users[user.id]
	delete(h.users, user.id)
	h.mu.Unlock()

	if ok {
		user.conn.Close()
	}
}

func (h *Hub) RemoveAllUser() {
	h.mu.Lock()
	users := h.users
	h.users = make(map[uint64]*User)
	h.mu.Unlock()

	for _, user := range users {
		user.conn.Close()
	}
}

func (h *Hub) NumUsers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}
