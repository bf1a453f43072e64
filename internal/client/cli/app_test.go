package cli

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/config"
	"github.com/dmitrijs2005/attendance/internal/client/geo"
	"github.com/dmitrijs2005/attendance/internal/client/models"
	"github.com/dmitrijs2005/attendance/internal/client/session"
	"github.com/dmitrijs2005/attendance/internal/logging"
	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// attendanceServer is an in-memory stand-in for the attendance API.
type attendanceServer struct {
	mu      sync.Mutex
	token   string
	records []map[string]any
	fields  []map[string]string
	logouts int

	// rejectUploads answers check-in with 401 while reads keep working.
	rejectUploads bool
}

func newAttendanceServer(t *testing.T) (*attendanceServer, *httptest.Server) {
	t.Helper()

	claims := jwt.MapClaims{"sub": "7", "exp": time.Now().Add(24 * time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	s := &attendanceServer{token: token}
	srv := httptest.NewServer(s.router())
	t.Cleanup(srv.Close)
	return s, srv
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *attendanceServer) authorized(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "Token is invalid"})
			return
		}
		next(w, r)
	}
}

func (s *attendanceServer) router() *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req["username"] != "alice" || req["password"] != "secret" {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"access_token": s.token,
			"user":         map[string]any{"id": 7, "username": "alice", "email": "alice@example.org"},
		})
	}).Methods(http.MethodPost)

	api.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.logouts++
		s.mu.Unlock()
		reply(w, http.StatusOK, map[string]string{"message": "Logged out"})
	}).Methods(http.MethodPost)

	api.HandleFunc("/attendance/check-in", s.authorized(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			reply(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.rejectUploads {
			reply(w, http.StatusUnauthorized, map[string]string{"error": "Token has expired"})
			return
		}

		fields := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			fields[k] = v[0]
		}
		s.fields = append(s.fields, fields)

		rec := map[string]any{
			"id":              len(s.records) + 1,
			"user_id":         7,
			"username":        "alice",
			"check_in_time":   "2024-05-01T08:00:00",
			"check_out_time":  nil,
			"tiredness_score": 0.82,
			"latitude":        51.5,
			"longitude":       -0.12,
			"is_checked_in":   true,
			"created_at":      "2024-05-01T08:00:00",
		}
		s.records = append([]map[string]any{rec}, s.records...)
		reply(w, http.StatusCreated, rec)
	})).Methods(http.MethodPost)

	api.HandleFunc("/attendance/check-out", s.authorized(func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusBadRequest, map[string]string{"error": "No active check-in found"})
	})).Methods(http.MethodPost)

	api.HandleFunc("/attendance/records", s.authorized(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		reply(w, http.StatusOK, map[string]any{
			"records":    s.records,
			"pagination": map[string]any{"page": 1, "per_page": 20, "total": len(s.records), "has_next": false},
		})
	})).Methods(http.MethodGet)

	api.HandleFunc("/attendance/stats", s.authorized(func(w http.ResponseWriter, r *http.Request) {
		reply(w, http.StatusOK, map[string]any{
			"total_records":          1,
			"average_tiredness":      0.82,
			"tiredness_distribution": map[string]int{"low (0-0.3)": 0, "medium (0.3-0.7)": 0, "high (0.7-1.0)": 1},
			"daily_stats":            []map[string]any{{"date": "2024-05-01", "count": 1, "avg_tiredness": 0.82}},
		})
	})).Methods(http.MethodGet)

	return r
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ *bufio.Reader, _ string, _ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func writeJPEG(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "me.jpg")
	require.NoError(t, os.WriteFile(p, []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0x10, 'J', 'F', 'I', 'F', 0, 0xFF, 0xD9}, 0o600))
	return p
}

var aliceUser = models.User{ID: 7, Username: "alice", Email: "alice@example.org"}

type testApp struct {
	app   *App
	store *session.Store
	out   *[]string
}

func newTestApp(t *testing.T, baseURL, input string, cfgFn func(*config.Config)) testApp {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = baseURL
	cfg.DataDir = t.TempDir()
	cfg.RequestTimeout = 5 * time.Second
	if cfgFn != nil {
		cfgFn(cfg)
	}

	store, err := session.Open(ctx, cfg.DataDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	api, err := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, store)
	require.NoError(t, err)

	out := capturePrint(t)
	app, err := newApp(api, store, cfg, logging.Discard(), rdr(input), &bytes.Buffer{})
	require.NoError(t, err)

	return testApp{app: app, store: store, out: out}
}

func (ta testApp) output() string { return strings.Join(*ta.out, "\n") }

func TestApp_EndToEnd(t *testing.T) {
	stubPassword(t, "secret")
	srv, httpSrv := newAttendanceServer(t)
	photo := writeJPEG(t)

	input := strings.Join([]string{
		"mark",
		"login",
		"alice",
		"mark",
		photo,
		"history",
		"more",
		"refresh",
		"stats",
		"whoami",
		"mark",
		photo,
		"logout",
		"y",
		"history",
		"exit",
	}, "\n") + "\n"

	lat, lon := 51.5, -0.12
	ta := newTestApp(t, httpSrv.URL+"/api", input, func(c *config.Config) {
		c.Latitude, c.Longitude = &lat, &lon
	})

	require.NoError(t, ta.app.Run(context.Background()))
	out := ta.output()

	assert.Contains(t, out, "'mark' is not available now.")
	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, "Status: Checked Out")
	assert.Contains(t, out, "Check-in successful!")
	assert.Contains(t, out, "Status: Checked In")
	assert.Contains(t, out, "Last Tiredness Score: 82% (High tiredness)")
	assert.Contains(t, out, "Attendance History - 1 record")
	assert.Contains(t, out, "Location:  51.5000, -0.1200")
	assert.Contains(t, out, "No more records.")
	assert.Equal(t, 2, strings.Count(out, "Attendance History - 1 record"))
	assert.Contains(t, out, "att login> ")
	assert.Contains(t, out, "att (alice) history> ")
	assert.Contains(t, out, "Attendance Stats")
	assert.Contains(t, out, "alice <alice@example.org> (id 7, employee)")
	assert.Contains(t, out, "Session expires")
	assert.Contains(t, out, "Error: No active check-in found")
	assert.Contains(t, out, "Signed out.")
	assert.Contains(t, out, "'history' is not available now.")

	srv.mu.Lock()
	require.Len(t, srv.fields, 1)
	assert.Equal(t, map[string]string{"latitude": "51.5", "longitude": "-0.12"}, srv.fields[0])
	assert.Equal(t, 1, srv.logouts)
	srv.mu.Unlock()

	token, err := ta.store.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestApp_LoginFailureShowsServerMessage(t *testing.T) {
	stubPassword(t, "wrong")
	_, httpSrv := newAttendanceServer(t)

	ta := newTestApp(t, httpSrv.URL+"/api", "login\nalice\nexit\n", nil)
	require.NoError(t, ta.app.Run(context.Background()))

	assert.Contains(t, ta.output(), "Login Failed: Invalid username or password")
	assert.Nil(t, ta.app.auth.User())
}

func TestApp_LoginMissingFields(t *testing.T) {
	stubPassword(t, "")
	_, httpSrv := newAttendanceServer(t)

	ta := newTestApp(t, httpSrv.URL+"/api", "login\nalice\nexit\n", nil)
	require.NoError(t, ta.app.Run(context.Background()))

	assert.Contains(t, ta.output(), "Error: Please fill in all fields")
}

func TestApp_UnreachableServerOnLogin(t *testing.T) {
	stubPassword(t, "secret")
	dead := httptest.NewServer(http.NotFoundHandler())
	base := dead.URL + "/api"
	dead.Close()

	ta := newTestApp(t, base, "login\nalice\nexit\n", nil)
	require.NoError(t, ta.app.Run(context.Background()))

	assert.Contains(t, ta.output(), "Login Failed: "+client.UnavailableMessage)
}

func TestApp_HomeWithRejectedTokenSignsOut(t *testing.T) {
	_, httpSrv := newAttendanceServer(t)

	ta := newTestApp(t, httpSrv.URL+"/api", "home\nhistory\nexit\n", nil)
	require.NoError(t, ta.store.Save(context.Background(), "stale-token", aliceUser))

	require.NoError(t, ta.app.Run(context.Background()))
	out := ta.output()

	assert.Contains(t, out, sessionExpiredMessage)
	assert.NotContains(t, out, "Status: Checked Out")
	assert.NotContains(t, out, "Type 'mark' to check in.")
	assert.Contains(t, out, "'home' is not available now.")
	assert.Contains(t, out, "'history' is not available now.")

	ctx := context.Background()
	user, err := ta.store.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
	token, err := ta.store.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestApp_MarkCancelledIsSilent(t *testing.T) {
	stubPassword(t, "secret")
	srv, httpSrv := newAttendanceServer(t)

	ta := newTestApp(t, httpSrv.URL+"/api", "login\nalice\nmark\n\nexit\n", nil)
	require.NoError(t, ta.app.Run(context.Background()))

	out := ta.output()
	assert.NotContains(t, out, "Error:")
	assert.NotContains(t, out, "successful")
	srv.mu.Lock()
	assert.Empty(t, srv.fields)
	srv.mu.Unlock()
}

func TestApp_CheckInWithoutLocationSubmitsZero(t *testing.T) {
	stubPassword(t, "secret")
	srv, httpSrv := newAttendanceServer(t)
	photo := writeJPEG(t)

	ta := newTestApp(t, httpSrv.URL+"/api", "login\nalice\nmark\n"+photo+"\nn\nexit\n", func(c *config.Config) {
		c.LocationCommand = "sh -c false"
	})
	require.NoError(t, ta.app.Run(context.Background()))

	assert.Contains(t, ta.output(), "Check-in successful!")
	srv.mu.Lock()
	require.Len(t, srv.fields, 1)
	assert.Equal(t, map[string]string{"latitude": "0", "longitude": "0"}, srv.fields[0])
	srv.mu.Unlock()
}

func TestLocationSource(t *testing.T) {
	read := func(string) (string, error) { return "", nil }

	lat, lon := 1.0, 2.0
	p, perm := locationSource(&config.Config{Latitude: &lat, Longitude: &lon, LocationCommand: "x"}, read)
	assert.IsType(t, geo.StaticProvider{}, p)
	assert.IsType(t, geo.Granted{}, perm)

	p, perm = locationSource(&config.Config{LocationCommand: "termux-location -p network"}, read)
	assert.Equal(t, geo.CommandProvider{Name: "termux-location", Args: []string{"-p", "network"}}, p)
	assert.IsType(t, &geo.PromptPermission{}, perm)

	p, _ = locationSource(&config.Config{}, read)
	assert.IsType(t, geo.NoProvider{}, p)
}

func TestApp_MarkWithExpiredSessionSignsOut(t *testing.T) {
	stubPassword(t, "secret")
	srv, httpSrv := newAttendanceServer(t)
	srv.rejectUploads = true
	photo := writeJPEG(t)

	lat, lon := 1.0, 2.0
	ta := newTestApp(t, httpSrv.URL+"/api", "login\nalice\nmark\n"+photo+"\nhistory\nexit\n", func(c *config.Config) {
		c.Latitude, c.Longitude = &lat, &lon
	})

	require.NoError(t, ta.app.Run(context.Background()))
	out := ta.output()

	assert.Contains(t, out, "Welcome, alice!")
	assert.Contains(t, out, sessionExpiredMessage)
	assert.NotContains(t, out, "Error: Token has expired")
	assert.Contains(t, out, "'history' is not available now.")
	srv.mu.Lock()
	assert.Empty(t, srv.fields)
	srv.mu.Unlock()

	user, err := ta.store.User(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}
