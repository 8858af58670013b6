package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Temutjin2k/fare-estimator/internal/domain/types"
	"github.com/Temutjin2k/fare-estimator/internal/service/form"
	"github.com/Temutjin2k/fare-estimator/pkg/logger"
	ws "github.com/Temutjin2k/fare-estimator/pkg/wsHub"
)

type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialForm(t *testing.T) (*websocket.Conn, *ws.ConnectionHub) {
	t.Helper()
	hub := ws.NewConnHub("test", logger.Discard())
	h := NewForm(newEstimatorService(), hub, logger.Discard())

	srv := httptest.NewServer(http.HandlerFunc(h.HandleWS))
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c, hub
}

func send(t *testing.T, c *websocket.Conn, msg string) {
	t.Helper()
	if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}
}

// readUntil reads frames until match returns true.
func readUntil(t *testing.T, c *websocket.Conn, match func(frame) bool) frame {
	t.Helper()
	_ = c.SetReadDeadline(time.Now().Add(3 * time.Second))
	for {
		var f frame
		if err := c.ReadJSON(&f); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(f) {
			return f
		}
	}
}

func stateOf(t *testing.T, f frame) form.State {
	t.Helper()
	var st form.State
	if err := json.Unmarshal(f.Data, &st); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return st
}

func isState(pred func(form.State) bool) func(frame) bool {
	return func(f frame) bool {
		if f.Type != "state" {
			return false
		}
		var st form.State
		if err := json.Unmarshal(f.Data, &st); err != nil {
			return false
		}
		return pred(st)
	}
}

func TestFormSessionEstimateAndBook(t *testing.T) {
	c, _ := dialForm(t)

	initial := stateOf(t, readUntil(t, c, func(f frame) bool { return f.Type == "state" }))
	if initial.Inputs.Category != types.Economy || initial.BookingStatus != types.BookingIdle {
		t.Fatalf("initial state = %+v", initial)
	}

	send(t, c, `{"type":"input","data":{"pickup":"Gulshan 1","destination":"Bashundhara R/A","hour":8,"weekday":0,"rain":false,"category":0}}`)
	readUntil(t, c, isState(func(st form.State) bool { return st.Inputs.Pickup == "Gulshan 1" }))

	send(t, c, `{"type":"estimate"}`)
	done := stateOf(t, readUntil(t, c, isState(func(st form.State) bool { return st.Result != nil })))
	if done.Loading {
		t.Error("loading still set with a result")
	}
	if got := done.Result.FareText(); got != "232.57 BDT" {
		t.Errorf("fare = %q", got)
	}

	send(t, c, `{"type":"book"}`)
	booked := stateOf(t, readUntil(t, c, isState(func(st form.State) bool { return st.BookingStatus == types.BookingConfirmed })))
	if booked.Booking == nil || booked.Booking.EstimateID != done.Result.ID {
		t.Errorf("booking = %+v", booked.Booking)
	}
}

func TestFormSessionMissingLocations(t *testing.T) {
	c, _ := dialForm(t)
	readUntil(t, c, func(f frame) bool { return f.Type == "state" })

	send(t, c, `{"type":"estimate"}`)
	st := stateOf(t, readUntil(t, c, isState(func(st form.State) bool { return st.Error != "" })))
	if st.Error != "Please enter both pickup and destination." || st.Loading {
		t.Errorf("state = %+v", st)
	}
}

func TestFormSessionProtocolErrors(t *testing.T) {
	c, _ := dialForm(t)
	readUntil(t, c, func(f frame) bool { return f.Type == "state" })

	tests := []struct {
		name string
		msg  string
	}{
		{"not json", `hello`},
		{"unknown type", `{"type":"cancel"}`},
		{"invalid hour", `{"type":"input","data":{"pickup":"a","destination":"b","hour":30,"weekday":0,"category":0}}`},
		{"book without estimate", `{"type":"book"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			send(t, c, tt.msg)
			f := readUntil(t, c, func(f frame) bool { return f.Type == "error" })
			if len(f.Data) == 0 {
				t.Error("error frame without data")
			}
		})
	}
}

func TestFormSessionRegistersInHub(t *testing.T) {
	c, hub := dialForm(t)
	readUntil(t, c, func(f frame) bool { return f.Type == "state" })

	if hub.Len() != 1 {
		t.Fatalf("hub.Len() = %d, want 1", hub.Len())
	}

	c.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("connection not removed from hub after client left")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
