package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"aes-tool/configs"
	"aes-tool/crypto/aesmodes"
	"aes-tool/crypto/encoding"
	"aes-tool/session"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Server struct {
	ctx       context.Context
	cancelCtx context.CancelFunc

	store    session.Store
	defaults session.Defaults
	logger   *logrus.Logger
	page     *template.Template

	// WebSocket upgrader settings
	upgrader *websocket.Upgrader
}

func NewServer(ctx context.Context, store session.Store, defaults session.Defaults, logger *logrus.Logger) *Server {
	ctx, cancelCtx := context.WithCancel(ctx)
	return &Server{
		ctx:       ctx,
		cancelCtx: cancelCtx,
		store:     store,
		defaults:  defaults,
		logger:    logger,
		page:      template.Must(template.New("form").Parse(formTemplate)),
		upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router wires every endpoint onto a gorilla/mux router.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", s.HandleForm).Methods(http.MethodGet)
	r.HandleFunc("/", s.HandleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/api/encrypt", s.HandleEncrypt).Methods(http.MethodPost)
	r.HandleFunc("/api/decrypt", s.HandleDecrypt).Methods(http.MethodPost)
	r.HandleFunc("/api/key", s.HandleNewKey).Methods(http.MethodGet)
	r.HandleFunc("/api/iv", s.HandleNewIV).Methods(http.MethodGet)
	r.HandleFunc(configs.WebSocketPath, s.HandleConnections)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	return r
}

func (s *Server) Close() {
	s.cancelCtx()
}

// loadSession returns the cookie's session, or starts a new one when the
// cookie is missing or its session expired.
func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (string, session.State, error) {
	if cookie, err := r.Cookie(configs.SessionCookieName); err == nil {
		state, err := s.store.Get(r.Context(), cookie.Value)
		if err == nil {
			return cookie.Value, state, nil
		}
		if !errors.Is(err, session.ErrSessionNotFound) {
			return "", session.State{}, err
		}
	}

	id, err := session.NewSessionID()
	if err != nil {
		return "", session.State{}, err
	}
	state, err := session.New(s.defaults)
	if err != nil {
		return "", session.State{}, err
	}
	if err := s.store.Save(r.Context(), id, state); err != nil {
		return "", session.State{}, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     configs.SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(configs.SessionTTL.Seconds()),
	})
	s.logger.Infof("Session %s started", id)
	return id, state, nil
}

// HandleForm renders the form for the caller's session
func (s *Server) HandleForm(w http.ResponseWriter, r *http.Request) {
	_, state, err := s.loadSession(w, r)
	if err != nil {
		s.logger.Errorf("Error loading session: %v", err)
		http.Error(w, "Error loading session", http.StatusInternalServerError)
		return
	}
	s.render(w, state, nil)
}

// HandleSubmit applies the edited fields and the pressed button to the session
func (s *Server) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	id, state, err := s.loadSession(w, r)
	if err != nil {
		s.logger.Errorf("Error loading session: %v", err)
		http.Error(w, "Error loading session", http.StatusInternalServerError)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.logger.Errorf("Error parsing form for session %s: %v", id, err)
		http.Error(w, "Error parsing form", http.StatusBadRequest)
		return
	}

	state, actionErr := applyForm(state, r)
	if action := session.Action(r.PostForm.Get("action")); actionErr == nil && action != "" {
		state, actionErr = session.Apply(state, action, r.PostForm.Get("passphrase"))
		if actionErr == nil {
			s.logger.Debugf("Session %s: %s done", id, action)
		}
	}
	if actionErr != nil {
		s.logger.Infof("Session %s: %v", id, actionErr)
	}

	if err := s.store.Save(r.Context(), id, state); err != nil {
		s.logger.Errorf("Error saving session %s: %v", id, err)
		http.Error(w, "Error saving session", http.StatusInternalServerError)
		return
	}
	s.render(w, state, actionErr)
}

// applyForm copies the text fields and selectors from the posted form. A bad
// selector value is reported but the edited text fields are kept.
func applyForm(state session.State, r *http.Request) (session.State, error) {
	form := r.PostForm
	next := state
	next.Input = form.Get("input")
	next.Key = form.Get("key")
	next.IV = form.Get("iv")
	next.Output = form.Get("output")

	var err error
	if v := form.Get("key_size"); v != "" {
		if next, err = session.Apply(next, session.ActionSetKeySize, v); err != nil {
			return next, err
		}
	}
	if v := form.Get("mode"); v != "" {
		if next, err = session.SetMode(next, v); err != nil {
			return next, err
		}
	}
	if v := form.Get("format"); v != "" {
		if next, err = session.SetFormat(next, v); err != nil {
			return next, err
		}
	}
	return next, nil
}

type formView struct {
	State       session.State
	Error       string
	Fingerprint string
	KeySizes    []int
	Modes       []aesmodes.Mode
	Formats     []encoding.Format
}

func (s *Server) render(w http.ResponseWriter, state session.State, actionErr error) {
	view := formView{
		State:    state,
		KeySizes: aesmodes.KeySizes,
		Modes:    aesmodes.Modes,
		Formats:  encoding.Formats,
	}
	if actionErr != nil {
		view.Error = actionErr.Error()
	}
	if fp, err := session.Fingerprint(state); err == nil {
		view.Fingerprint = fp
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if actionErr != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}
	if err := s.page.Execute(w, view); err != nil {
		s.logger.Errorf("Error rendering form: %v", err)
	}
}

// TransformRequest is the body of /api/encrypt and /api/decrypt.
// Mode defaults to CBC and Format to Base64 when empty.
type TransformRequest struct {
	Text   string `json:"text"`
	Key    string `json:"key"`
	IV     string `json:"iv,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Format string `json:"format,omitempty"`
}

type TransformResponse struct {
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func (req *TransformRequest) toState() (session.State, error) {
	state := session.State{Key: req.Key, IV: req.IV, Mode: aesmodes.CBC, Format: encoding.Base64}
	var err error
	if req.Mode != "" {
		if state, err = session.SetMode(state, req.Mode); err != nil {
			return state, err
		}
	}
	if req.Format != "" {
		if state, err = session.SetFormat(state, req.Format); err != nil {
			return state, err
		}
	}
	return state, nil
}

// HandleEncrypt encrypts without touching any session
func (s *Server) HandleEncrypt(w http.ResponseWriter, r *http.Request) {
	s.handleTransform(w, r, func(req *TransformRequest, state session.State) (string, error) {
		state.Input = req.Text
		state, err := session.Encrypt(state)
		return state.Output, err
	})
}

// HandleDecrypt decrypts without touching any session
func (s *Server) HandleDecrypt(w http.ResponseWriter, r *http.Request) {
	s.handleTransform(w, r, func(req *TransformRequest, state session.State) (string, error) {
		state.Output = req.Text
		state, err := session.Decrypt(state)
		return state.Output, err
	})
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request, transform func(*TransformRequest, session.State) (string, error)) {
	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeJSON(w, http.StatusBadRequest, TransformResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	state, err := req.toState()
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, TransformResponse{Error: err.Error()})
		return
	}
	text, err := transform(&req, state)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, TransformResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, TransformResponse{Text: text})
}

// HandleNewKey returns a fresh Base64 key; ?size= picks 16, 24 or 32 bytes
func (s *Server) HandleNewKey(w http.ResponseWriter, r *http.Request) {
	size := s.defaults.KeySize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("invalid size %q", v)})
			return
		}
		size = n
	}
	key, err := aesmodes.NewKey(size)
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"key": encoding.EncodeBase64(key)})
}

// HandleNewIV returns a fresh Base64 IV
func (s *Server) HandleNewIV(w http.ResponseWriter, _ *http.Request) {
	iv, err := aesmodes.NewIV()
	if err != nil {
		s.logger.Errorf("Error generating IV: %v", err)
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "error generating IV"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"iv": encoding.EncodeBase64(iv)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Errorf("Error encoding response: %v", err)
	}
}
