package web

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"securehome/server/internal/assistant"
	"securehome/server/internal/config"
	"securehome/server/internal/interfaces"
	"securehome/server/internal/security"
	"securehome/server/internal/storage"
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Dashboard and server share the home network
	},
}

type Handlers struct {
	config   *config.Config
	engine   *assistant.Engine
	visitors interfaces.VisitorStore
	users    interfaces.UserStore
	system   *security.Manager
	events   *EventService
	hub      *EventHub
}

func NewHandlers(
	cfg *config.Config,
	engine *assistant.Engine,
	visitors interfaces.VisitorStore,
	users interfaces.UserStore,
	system *security.Manager,
	events *EventService,
	hub *EventHub,
) *Handlers {
	return &Handlers{
		config:   cfg,
		engine:   engine,
		visitors: visitors,
		users:    users,
		system:   system,
		events:   events,
		hub:      hub,
	}
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "securehome",
	})
}

// CORS middleware
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Max-Age", "300")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func NewRouter(
	cfg *config.Config,
	engine *assistant.Engine,
	visitors interfaces.VisitorStore,
	users interfaces.UserStore,
	system *security.Manager,
	events *EventService,
	hub *EventHub,
) *chi.Mux {
	r := chi.NewRouter()

	// Request logging middleware
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Printf("REQUEST: %s %s", r.Method, r.URL.Path)
			next.ServeHTTP(w, r)
		})
	})

	// CORS middleware
	r.Use(corsMiddleware)

	handlers := NewHandlers(cfg, engine, visitors, users, system, events, hub)

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/assistant/query", handlers.AssistantQuery)

		r.Route("/visitors", func(r chi.Router) {
			r.Get("/", handlers.ListVisitors)
			r.Post("/", handlers.IngestVisitor)
			r.Post("/clear", handlers.ClearVisitors)
		})

		r.Route("/system", func(r chi.Router) {
			r.Post("/arm", handlers.ArmSystem)
			r.Get("/status", handlers.SystemStatus)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/create", handlers.CreateUser)
			r.Post("/login", handlers.LoginUser)
		})

		r.Route("/events", func(r chi.Router) {
			r.Get("/recent", handlers.RecentEvents)
			r.Get("/stream", handlers.EventStream)
		})
	})

	return r
}

// ---- assistant ----

// queryRequest uses a pointer so a body without a message field is told apart
// from an empty question; the former is a malformed request.
type queryRequest struct {
	Message *string `json:"message"`
}

type queryResponse struct {
	Reply string `json:"reply"`
}

// AssistantQuery is the single operation the chat window calls. Malformed
// bodies and engine failures both collapse into the one generic error reply;
// the throttle advisory comes back with a success status.
func (h *Handlers) AssistantQuery(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == nil {
		log.Printf("[Assistant] Bad query payload: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(queryResponse{Reply: assistant.ErrorReply})
		return
	}

	reply, err := h.engine.Answer(r.Context(), *req.Message)
	if err != nil {
		log.Printf("[Assistant] Query failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(queryResponse{Reply: assistant.ErrorReply})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(queryResponse{Reply: reply})
}

// ---- visitor log ----

func (h *Handlers) ListVisitors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	rows, err := h.visitors.GetAllVisitors(r.Context())
	if err != nil {
		log.Printf("[Visitors] List failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to read visitor log"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rows)
}

// IngestRequest is what the detection pipeline posts per detected visitor.
type IngestRequest struct {
	Name    string `json:"name"`
	Purpose string `json:"purpose"`
}

func (h *Handlers) IngestVisitor(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
		return
	}
	if req.Name == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "name is required"})
		return
	}

	rec, err := h.visitors.LogVisitor(r.Context(), req.Name, req.Purpose)
	if err != nil {
		log.Printf("[Visitors] Ingest failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to log visitor"})
		return
	}

	h.events.Record(interfaces.SecurityEvent{
		Type:      interfaces.EventVisitorDetected,
		Source:    "doorbell",
		Message:   "Visitor detected: " + rec.Name,
		VisitorID: rec.ID,
		Timestamp: rec.Timestamp.Unix(),
	})

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rec)
}

func (h *Handlers) ClearVisitors(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	deleted, err := h.visitors.ClearVisitors(r.Context())
	if err != nil {
		log.Printf("[Visitors] Clear failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "failed to clear visitor log"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "deleted": deleted})
}

// ---- arm state ----

// ArmRequest mirrors the dashboard toggle: armed plus an optional mode.
type ArmRequest struct {
	Armed bool   `json:"armed"`
	Mode  string `json:"mode"`
}

// SystemStatusResponse reports the current arm state.
type SystemStatusResponse struct {
	Armed bool       `json:"armed"`
	Mode  string     `json:"mode"`
	Since *time.Time `json:"since,omitempty"`
}

func (h *Handlers) ArmSystem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req ArmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "Invalid request body"})
		return
	}

	mode := strings.ToLower(strings.TrimSpace(req.Mode))

	if req.Armed {
		changed := h.system.Arm(mode)
		_, activeMode, _ := h.system.State()

		if !changed {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "already_armed", "mode": activeMode})
			return
		}

		h.events.Record(interfaces.SecurityEvent{
			Type:      interfaces.EventSystemArmed,
			Source:    "dashboard",
			Message:   "System armed in " + activeMode + " mode",
			Timestamp: time.Now().Unix(),
		})

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "armed", "mode": activeMode})
		return
	}

	if h.system.Disarm() {
		h.events.Record(interfaces.SecurityEvent{
			Type:      interfaces.EventSystemDisarmed,
			Source:    "dashboard",
			Message:   "System disarmed",
			Timestamp: time.Now().Unix(),
		})
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "disarmed"})
}

func (h *Handlers) SystemStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status, mode, since := h.system.State()

	resp := SystemStatusResponse{
		Armed: status == security.StatusArmed,
		Mode:  mode,
	}
	if !since.IsZero() {
		resp.Since = &since
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}

// ---- users ----

type createUserRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	HousePassword string `json:"house_password"`
}

func (h *Handlers) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.users == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "user store unavailable"})
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil ||
		req.Email == "" || req.Password == "" || req.HousePassword == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "Missing fields"})
		return
	}

	if req.HousePassword != h.config.Security.HousePassword {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "Wrong house password"})
		return
	}

	user, err := h.users.CreateUser(r.Context(), req.Email, req.Password)
	if errors.Is(err, storage.ErrUserExists) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "Existing user login"})
		return
	}
	if err != nil {
		log.Printf("[Users] Create failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "failed to create user"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{"status": "ok", "user_id": user.ID})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) LoginUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if h.users == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "user store unavailable"})
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "Missing fields"})
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Printf("[Users] Login failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "failed to authenticate"})
		return
	}
	if user == nil {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": "Invalid credentials"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"user_id": user.ID,
		"email":   user.Email,
	})
}

// ---- event feed ----

func (h *Handlers) RecentEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	limit := int64(100)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			limit = n
		}
	}

	events, err := h.events.Recent(r.Context(), limit)
	if err != nil {
		log.Printf("[Events] Recent failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to read events"})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(events)
}

func (h *Handlers) EventStream(w http.ResponseWriter, r *http.Request) {
	if h.hub == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"error": "Hub not initialized"})
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	clientID := generateClientID()

	client := &Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
		Hub:  h.hub,
	}

	h.hub.register <- client

	welcomeMsg := map[string]interface{}{
		"type": "connected",
		"id":   clientID,
		"msg":  "Connected to event stream",
		"time": time.Now().Unix(),
	}
	welcomeData, _ := json.Marshal(welcomeMsg)
	select {
	case client.Send <- welcomeData:
	default:
	}

	go client.readPump()
}

// generateClientID generates a unique client ID
func generateClientID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))[:16]
	}
	return hex.EncodeToString(b)
}
