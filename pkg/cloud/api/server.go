// Package api pkg/cloud/api/server.go

package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	httpx "github.com/pepwatch/pepwatch/pkg/http"
	"github.com/pepwatch/pepwatch/pkg/models"
)

// APIServer exposes the coordinator's last-known snapshot to consumers:
// pull via JSON endpoints, push via a websocket that streams every newly
// published snapshot.
type APIServer struct {
	source   SnapshotSource
	router   *mux.Router
	upgrader websocket.Upgrader
}

func NewAPIServer(source SnapshotSource) *APIServer {
	s := &APIServer{
		source: source,
		router: mux.NewRouter(),
		upgrader: websocket.Upgrader{
			// Consumers are LAN dashboards; same-origin enforcement is
			// left to the deployment.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.setupRoutes()

	return s
}

func (s *APIServer) setupRoutes() {
	s.router.Use(httpx.CommonMiddleware)

	s.router.HandleFunc("/api/status", s.getStatus).Methods("GET")
	s.router.HandleFunc("/api/snapshot", s.getSnapshot).Methods("GET")
	s.router.HandleFunc("/api/wans", s.getWANs).Methods("GET")
	s.router.HandleFunc("/api/wans/{id}", s.getWAN).Methods("GET")
	s.router.HandleFunc("/api/clients", s.getClients).Methods("GET")
	s.router.HandleFunc("/api/traffic", s.getTraffic).Methods("GET")
	s.router.HandleFunc("/api/system", s.getSystem).Methods("GET")
	s.router.HandleFunc("/api/ws", s.serveWS)
}

func (s *APIServer) Start(addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Printf("API server listening on %s", addr)

	return srv.ListenAndServe()
}

// Handler exposes the router for embedding and tests.
func (s *APIServer) Handler() http.Handler {
	return s.router
}

func (s *APIServer) getStatus(w http.ResponseWriter, _ *http.Request) {
	resp := StatusResponse{
		Available:    s.source.Available(),
		State:        s.source.State().String(),
		FailureCount: s.source.FailureCount(),
	}

	if snap := s.source.Snapshot(); snap != nil {
		resp.LastUpdate = snap.Timestamp
	}

	s.writeJSON(w, resp)
}

// snapshot fetches the current snapshot or replies 503 when none exists
// or the data has been marked unavailable.
func (s *APIServer) snapshot(w http.ResponseWriter) *models.Snapshot {
	snap := s.source.Snapshot()
	if snap == nil || !s.source.Available() {
		http.Error(w, "Router data unavailable", http.StatusServiceUnavailable)
		return nil
	}

	return snap
}

func (s *APIServer) getSnapshot(w http.ResponseWriter, _ *http.Request) {
	if snap := s.snapshot(w); snap != nil {
		s.writeJSON(w, snap)
	}
}

func (s *APIServer) getWANs(w http.ResponseWriter, _ *http.Request) {
	if snap := s.snapshot(w); snap != nil {
		s.writeJSON(w, snap.WANs)
	}
}

func (s *APIServer) getWAN(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid WAN id", http.StatusBadRequest)
		return
	}

	for i := range snap.WANs {
		if snap.WANs[i].ID == id {
			s.writeJSON(w, snap.WANs[i])
			return
		}
	}

	http.Error(w, "WAN not found", http.StatusNotFound)
}

func (s *APIServer) getClients(w http.ResponseWriter, _ *http.Request) {
	if snap := s.snapshot(w); snap != nil {
		s.writeJSON(w, snap.Clients)
	}
}

func (s *APIServer) getTraffic(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	if snap.Traffic == nil {
		http.Error(w, "Traffic data not available", http.StatusNotFound)
		return
	}

	s.writeJSON(w, snap.Traffic)
}

func (s *APIServer) getSystem(w http.ResponseWriter, _ *http.Request) {
	if snap := s.snapshot(w); snap != nil {
		s.writeJSON(w, snap.System)
	}
}

// serveWS streams each newly published snapshot to the consumer. The
// current snapshot, if any, is sent immediately so a consumer attaching
// mid-cycle starts from the last-known state.
func (s *APIServer) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}

	defer func() {
		if err := conn.Close(); err != nil {
			log.Printf("Error closing websocket connection: %v", err)
		}
	}()

	updates, unsubscribe := s.source.Subscribe()
	defer unsubscribe()

	if snap := s.source.Snapshot(); snap != nil {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}

			if err := conn.WriteJSON(snap); err != nil {
				log.Printf("Websocket write failed, dropping consumer: %v", err)
				return
			}
		}
	}
}

func (s *APIServer) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
