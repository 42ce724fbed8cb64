package peplink

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/pepwatch/pepwatch/pkg/config"
)

// routerSim fakes the router's management API: cookie login, the stat
// envelope, and per-function payloads for both endpoint styles.
type routerSim struct {
	mu          sync.Mutex
	logins      int
	validCookie string
	rejectLogin bool
	statFail    bool
	omitCookie  bool
	expireNext  bool
	data401     bool
	lastQuery   url.Values
	data        map[string]string // payload under "response", keyed by func name
}

func newRouterSim() *routerSim {
	return &routerSim{data: make(map[string]string)}
}

func (s *routerSim) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", s.handleLogin)
	mux.HandleFunc("/", s.handleAPI)

	return mux
}

func (s *routerSim) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if s.rejectLogin {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if s.statFail {
		fmt.Fprint(w, `{"stat":"fail","code":401,"message":"invalid credentials"}`)
		return
	}

	s.logins++
	if !s.omitCookie {
		s.validCookie = fmt.Sprintf("bauth-%d", s.logins)
		http.SetCookie(w, &http.Cookie{Name: "bauth", Value: s.validCookie, Path: "/"})
	}

	fmt.Fprint(w, `{"stat":"ok"}`)
}

func (s *routerSim) handleAPI(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastQuery = r.URL.Query()

	if s.expireNext {
		s.expireNext = false
		s.validCookie = ""
		w.WriteHeader(http.StatusUnauthorized)

		return
	}

	cookie, err := r.Cookie("bauth")
	if err != nil || s.validCookie == "" || cookie.Value != s.validCookie {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	if r.URL.Path == "/api/status" {
		fmt.Fprint(w, `{"stat":"ok","response":{}}`)
		return
	}

	if s.data401 {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	var fn string
	if r.URL.Path == "/cgi-bin/MANGA/api.cgi" {
		fn = r.URL.Query().Get("func")
		if it := r.URL.Query().Get("infoType"); it != "" {
			fn += "?" + it
		}
	} else {
		fn = strings.TrimPrefix(r.URL.Path, "/api/")
	}

	payload, ok := s.data[fn]
	if !ok {
		fmt.Fprint(w, `{"stat":"fail","code":404,"message":"no such function"}`)
		return
	}

	fmt.Fprintf(w, `{"stat":"ok","code":0,"message":"","response":%s}`, payload)
}

func (s *routerSim) loginCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.logins
}

func (s *routerSim) query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastQuery
}

// newTLSSim spins the sim behind a self-signed TLS server.
func newTLSSim(t *testing.T, sim *routerSim) *httptest.Server {
	t.Helper()

	srv := httptest.NewTLSServer(sim.handler())
	t.Cleanup(srv.Close)

	return srv
}

// newTestClient spins a plain-HTTP router sim and a client wired to it.
func newTestClient(t *testing.T, sim *routerSim) (*RouterClient, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(sim.handler())
	t.Cleanup(srv.Close)

	c := NewRouterClient(&config.RouterConfig{
		Host:     srv.URL,
		Username: "admin",
		Password: "pw",
	})
	c.http = srv.Client()

	return c, srv
}
