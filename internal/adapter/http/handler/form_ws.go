package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Temutjin2k/fare-estimator/internal/adapter/http/handler/dto"
	"github.com/Temutjin2k/fare-estimator/internal/domain/models"
	"github.com/Temutjin2k/fare-estimator/internal/service/form"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	wrap "github.com/Temutjin2k/fare-estimator/pkg/logger/wrapper"
	"github.com/Temutjin2k/fare-estimator/pkg/validator"
	ws "github.com/Temutjin2k/fare-estimator/pkg/wsHub"
)

const defaultPingInterval = 30 * time.Second

var errUnknownMessage = errors.New("unknown message type")

// Form serves one interactive form session per WebSocket connection.
type Form struct {
	est          form.Estimator
	hub          *ws.ConnectionHub
	upgrader     websocket.Upgrader
	pingInterval time.Duration
	l            logger.Logger
}

func NewForm(est form.Estimator, hub *ws.ConnectionHub, l logger.Logger) *Form {
	return &Form{
		est: est,
		hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		pingInterval: defaultPingInterval,
		l:            l,
	}
}

// HandleWS godoc
// @Summary      Interactive form session
// @Description  WebSocket. Client frames: {"type":"input","data":{...}}, {"type":"estimate"}, {"type":"book"}. Server frames: {"type":"state","data":{...}} and {"type":"error","data":...}.
// @Tags         Form
// @Router       /ws/form [get]
func (h *Form) HandleWS(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "ws_form_session")

	raw, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already written the error response
		h.l.Warn(ctx, "websocket upgrade failed", "error", err.Error())
		return
	}

	id := uuid.NewString()
	ctx = wrap.WithSessionID(ctx, id)

	conn := ws.NewConn(ctx, id, raw)
	if err := h.hub.Add(conn); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register connection", err)
		_ = conn.Close()
		return
	}
	defer h.hub.Delete(id)

	var passengerID string
	if u := models.UserFromContext(ctx); !u.IsAnonymous() {
		passengerID = u.ID
	}

	var (
		sendMu sync.Mutex
		last   uint64
	)
	// snapshots come from several goroutines, only ever send newer ones
	notify := func(st form.State) {
		sendMu.Lock()
		defer sendMu.Unlock()

		if st.Version <= last {
			return
		}
		last = st.Version
		if err := conn.Send(dto.FormPush{Type: dto.FormState, Data: st}); err != nil {
			h.l.Debug(ctx, "failed to push form state", "error", err.Error())
		}
	}

	session := form.NewSession(ctx, id, passengerID, h.est, notify, h.l)
	defer session.Close()

	h.l.Info(ctx, "form session opened")

	if err := conn.Send(dto.FormPush{Type: dto.FormState, Data: session.State()}); err != nil {
		h.l.Debug(ctx, "failed to push initial state", "error", err.Error())
		return
	}

	go h.keepAlive(ctx, conn)

	err = conn.Listen(func(msg []byte) error {
		h.handleMessage(ctx, conn, session, msg)
		return nil
	})
	if err != nil && !websocket.IsCloseError(errors.Unwrap(err), websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		h.l.Debug(ctx, "form session ended", "reason", err.Error())
	}

	h.l.Info(ctx, "form session closed")
}

func (h *Form) handleMessage(ctx context.Context, conn *ws.Conn, session *form.Session, raw []byte) {
	var msg dto.FormMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.sendError(ctx, conn, "message must be a JSON object")
		return
	}

	switch msg.Type {
	case dto.FormInput:
		var in dto.FormInputs
		if err := json.Unmarshal(msg.Data, &in); err != nil {
			h.sendError(ctx, conn, "invalid input data")
			return
		}

		v := validator.New()
		if in.Validate(v); !v.Valid() {
			h.sendError(ctx, conn, v.Errors)
			return
		}
		session.SetInputs(in.ToModel())

	case dto.FormEstimate:
		session.RequestEstimate()

	case dto.FormBook:
		if err := session.Book(); err != nil {
			h.sendError(ctx, conn, err.Error())
		}

	default:
		h.sendError(ctx, conn, errUnknownMessage.Error()+": "+msg.Type)
	}
}

func (h *Form) sendError(ctx context.Context, conn *ws.Conn, message any) {
	if err := conn.Send(dto.FormPush{Type: dto.FormError, Data: envelope{"error": message}}); err != nil {
		h.l.Debug(ctx, "failed to send error frame", "error", err.Error())
	}
}

// keepAlive pings the client until the connection closes.
func (h *Form) keepAlive(ctx context.Context, conn *ws.Conn) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-conn.Done():
			return
		case <-ticker.C:
			if err := conn.Health(); err != nil {
				h.l.Debug(ctx, "form connection unhealthy", "error", err.Error())
				_ = conn.Close()
				return
			}
		}
	}
}
