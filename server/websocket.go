package server

import (
	"encoding/json"
	"net/http"

	"aes-tool/session"

	"github.com/gorilla/websocket"
)

// WSRequest is one form action sent over the websocket. State, when set,
// replaces the connection's state before the action runs.
type WSRequest struct {
	Action   session.Action `json:"action"`
	Argument string         `json:"argument,omitempty"`
	State    *session.State `json:"state,omitempty"`
}

type WSResponse struct {
	State session.State `json:"state"`
	Error string        `json:"error,omitempty"`
}

// HandleConnections serves a live form: every message is an action, every
// reply the resulting state. Messages on one connection run in order.
func (s *Server) HandleConnections(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP request to WebSocket
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Errorf("Error upgrading to WebSocket: %v", err)
		return
	}
	defer ws.Close()

	state, err := session.New(s.defaults)
	if err != nil {
		s.logger.Errorf("Error creating session state: %v", err)
		return
	}
	s.logger.Infof("WebSocket client %s connected", r.RemoteAddr)

	// Send the initial state so the client can render the form
	if err := ws.WriteJSON(WSResponse{State: state}); err != nil {
		s.logger.Errorf("Error sending initial state to %s: %v", r.RemoteAddr, err)
		return
	}

	for {
		_, message, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Errorf("Error reading message from %s: %v", r.RemoteAddr, err)
			}
			break
		}

		var req WSRequest
		if err := json.Unmarshal(message, &req); err != nil {
			s.logger.Errorf("Invalid message format from %s: %v", r.RemoteAddr, err)
			if err := ws.WriteJSON(WSResponse{State: state, Error: "invalid message: " + err.Error()}); err != nil {
				break
			}
			continue
		}

		if req.State != nil {
			state = *req.State
		}
		resp := WSResponse{}
		state, err = session.Apply(state, req.Action, req.Argument)
		if err != nil {
			resp.Error = err.Error()
		}
		resp.State = state

		if err := ws.WriteJSON(resp); err != nil {
			s.logger.Errorf("Error sending state to %s: %v", r.RemoteAddr, err)
			break
		}
	}

	s.logger.Infof("WebSocket client %s disconnected", r.RemoteAddr)
}
