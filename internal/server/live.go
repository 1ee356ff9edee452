package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/pixelgrid/pkg/engine"
	"github.com/matzehuels/pixelgrid/pkg/errors"
	"github.com/matzehuels/pixelgrid/pkg/grid"
	"github.com/matzehuels/pixelgrid/pkg/observability"
	"github.com/matzehuels/pixelgrid/pkg/page"
	"github.com/matzehuels/pixelgrid/pkg/patterns"
	"github.com/matzehuels/pixelgrid/pkg/render"
	"github.com/matzehuels/pixelgrid/pkg/render/sink"
	"github.com/matzehuels/pixelgrid/pkg/session"
)

// Element identifiers on each viewer's page.
const (
	surfaceID  = "grid"
	statusID   = "hud"
	rotationID = "rotation"
	cellSizeID = "cell-size"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientMessage is the incoming websocket message format.
type clientMessage struct {
	Type   string  `json:"type"` // "resize", "input", or "rebuild"
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	ID     string  `json:"id,omitempty"`
	Value  string  `json:"value,omitempty"`
}

// serverMessage is the outgoing websocket message format.
type serverMessage struct {
	Type      string        `json:"type"` // "frame" or "error"
	SessionID string        `json:"session_id"`
	SVG       string        `json:"svg,omitempty"`
	Status    string        `json:"status,omitempty"`
	Metrics   *grid.Metrics `json:"metrics,omitempty"`
	Error     string        `json:"error,omitempty"`
	Code      string        `json:"code,omitempty"`
}

// viewer is one websocket connection with its page and engine.
type viewer struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
	page    *page.Page
	surface *frameSurface
	status  render.StatusFunc
	sess    *session.Session

	pushMu sync.Mutex
	sent   int // seq of the last frame pushed
}

// frameSurface is an SVG surface that keeps each committed document together
// with the metrics it was drawn for.
type frameSurface struct {
	*sink.SVG
	drawing grid.Metrics // written under the engine's render lock

	mu    sync.Mutex
	frame committedFrame
}

type committedFrame struct {
	seq     int
	metrics grid.Metrics
	svg     []byte
}

func newFrameSurface() *frameSurface {
	return &frameSurface{SVG: sink.NewSVG(sink.WithID(surfaceID))}
}

func (f *frameSurface) Reset(m grid.Metrics) {
	f.drawing = m
	f.SVG.Reset(m)
}

func (f *frameSurface) Commit() {
	f.SVG.Commit()
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frame = committedFrame{seq: f.frame.seq + 1, metrics: f.drawing, svg: f.SVG.Bytes()}
}

func (f *frameSurface) last() committedFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frame
}

// nextFrame returns the newest committed frame unless it was already pushed.
// The caller holds pushMu.
func (v *viewer) nextFrame() (serverMessage, bool) {
	f := v.surface.last()
	if f.seq == 0 || f.seq <= v.sent {
		return serverMessage{}, false
	}
	v.sent = f.seq
	m := f.metrics
	return serverMessage{
		Type:    "frame",
		SVG:     string(f.svg),
		Status:  v.status(m),
		Metrics: &m,
	}, true
}

func (v *viewer) send(msg serverMessage) error {
	v.writeMu.Lock()
	defer v.writeMu.Unlock()
	msg.SessionID = v.sess.ID
	return v.conn.WriteJSON(msg)
}

func (v *viewer) sendError(err error) {
	_ = v.send(serverMessage{
		Type:  "error",
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}

// handleLive serves GET /ws?w=&h=&pattern=.
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()
	base := frameConfig(s.cfg.Grid, r)

	v := &viewer{
		conn:    conn,
		page:    page.New(base.Viewport.Width, base.Viewport.Height),
		surface: newFrameSurface(),
		status:  render.DefaultStatus,
		sess:    session.New(r.RemoteAddr, session.DefaultTTL),
	}
	v.sess.Pattern = base.Pattern
	v.sess.Width, v.sess.Height = base.Viewport.Width, base.Viewport.Height

	if err := base.Validate(); err != nil {
		v.sendError(err)
		return
	}
	pattern, err := patterns.Lookup(base.Pattern)
	if err != nil {
		v.sendError(err)
		return
	}
	if pattern.Hooks.Status != nil {
		v.status = pattern.Hooks.Status
	}

	v.page.AddSurface(surfaceID, v.surface)
	v.page.AddOutput(statusID)
	v.page.AddInput(rotationID, strconv.FormatFloat(base.Rotation, 'f', -1, 64))
	v.page.AddInput(cellSizeID, strconv.FormatFloat(base.Grid.CellSize, 'f', -1, 64))

	if err := s.cfg.Sessions.Set(ctx, v.sess); err != nil {
		v.sendError(err)
		return
	}
	observability.Session().OnSessionOpen(ctx, v.sess.ID)
	frames := 0
	defer func() {
		_ = s.cfg.Sessions.Delete(ctx, v.sess.ID)
		observability.Session().OnSessionClose(ctx, v.sess.ID, frames, time.Since(v.sess.CreatedAt))
	}()

	var framesMu sync.Mutex
	e, err := engine.Init(v.page, engine.Options{
		SurfaceID:  surfaceID,
		StatusID:   statusID,
		RotationID: rotationID,
		CellSizeID: cellSizeID,
		Settings:   base.GridSettings(),
		Style:      base.RenderStyle(),
		Hooks:      pattern.Hooks,
		Debounce:   base.Debounce(),
		Logger:     s.logger,
		OnRebuild: func(grid.Metrics) {
			if s.pushFrame(v) {
				framesMu.Lock()
				frames++
				framesMu.Unlock()
			}
		},
	})
	if err != nil {
		v.sendError(err)
		return
	}
	defer e.Close()
	_ = s.cfg.Sessions.Touch(ctx, v.sess.ID, func(sess *session.Session) { sess.EngineID = e.ID() })

	s.logger.Debug("viewer connected", "session", v.sess.ID, "engine", e.ID(), "pattern", base.Pattern)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read failed", "session", v.sess.ID, "error", err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			v.sendError(errors.New(errors.ErrCodeInvalidInput, "invalid message format"))
			continue
		}

		switch msg.Type {
		case "resize":
			if msg.Width <= 0 || msg.Height <= 0 {
				v.sendError(errors.New(errors.ErrCodeInvalidInput, "resize needs a positive width and height"))
				continue
			}
			v.page.SetSize(msg.Width, msg.Height)
		case "input":
			if err := errors.ValidateIdentifier(msg.ID); err != nil {
				v.sendError(err)
				continue
			}
			if msg.ID != rotationID && msg.ID != cellSizeID {
				v.sendError(errors.New(errors.ErrCodeInvalidInput, "unknown input %q", msg.ID))
				continue
			}
			v.page.SetValue(msg.ID, msg.Value)
		case "rebuild":
			e.Rebuild()
		default:
			v.sendError(errors.New(errors.ErrCodeInvalidInput, "unknown message type: %s", msg.Type))
		}
	}
}

// pushFrame sends the newest committed frame. The metrics handed to OnRebuild
// may already be stale, so the frame carries the metrics it was drawn for.
func (s *Server) pushFrame(v *viewer) bool {
	v.pushMu.Lock()
	defer v.pushMu.Unlock()

	msg, ok := v.nextFrame()
	if !ok {
		return false
	}
	_ = s.cfg.Sessions.Touch(context.Background(), v.sess.ID, func(sess *session.Session) {
		sess.Frames++
		sess.Width, sess.Height = msg.Metrics.ViewportWidth, msg.Metrics.ViewportHeight
	})
	if err := v.send(msg); err != nil {
		s.logger.Debug("frame push failed", "session", v.sess.ID, "error", err)
	}
	return true
}
