// internal/httpserver/server.go
//
// HTTP wiring for the Math Sprint backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/api", "/health".
//   - Game endpoints (session-scoped): start/input/save/menu/state.
//   - Leaderboard endpoint: GET /scores.
//   - Signed session cookie (JWT carrying the session id); absent or invalid
//     tokens silently mint a fresh session — there are no accounts.
//
// Every mutating game route answers with the post-dispatch state snapshot;
// the browser client is a pure function of that snapshot.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"mathsprint/internal/game"
	"mathsprint/internal/scores"
	"mathsprint/static"
)

// Server bundles the router, the session registry, and the score store.
type Server struct {
	r        *chi.Mux
	sessions *sessionRegistry
	scores   *scores.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(sc *scores.Store) *Server {
	s := &Server{r: chi.NewRouter(), sessions: newSessionRegistry(), scores: sc}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(10 * time.Second))
	s.r.Use(corsFromEnv)

	// --- static client + diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(static.IndexHTML)
	})
	s.r.With(jsonContentType).Get("/api", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"mathsprint","endpoints":["/health","POST /game/start","POST /game/input","POST /game/save","POST /game/menu","GET /game/state","GET /scores"]}`))
	})
	s.r.With(jsonContentType).Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// --- game + leaderboard (session-scoped) ---
	s.r.Group(func(r chi.Router) {
		r.Use(jsonContentType)
		r.Use(s.withSession())
		r.Post("/game/start", s.handleStart)
		r.Post("/game/input", s.handleInput)
		r.Post("/game/save", s.handleSave)
		r.Post("/game/menu", s.handleMenu)
		r.Get("/game/state", s.handleState)
		r.Get("/scores", s.handleScores)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ---------------------------- session cookie --------------------------------

// ctxSessionKey is the context key type for the request's session.
type ctxSessionKey struct{}

// withSession resolves the caller's session from the signed cookie, minting
// a new session (and cookie) when the token is absent, invalid, or points at
// a session this process no longer holds. It never rejects a request.
func (s *Server) withSession() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := s.resolveSession(r)
			if sess == nil {
				sess = s.sessions.create(r.Context(), s.scores)
				tok, exp, err := signSessionToken(sess.id)
				if err != nil {
					log.Error().Err(err).Msg("sign session token")
					http.Error(w, `{"error":"session_failed"}`, http.StatusInternalServerError)
					return
				}
				setSessionCookie(w, tok, exp)
			}
			ctx := context.WithValue(r.Context(), ctxSessionKey{}, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveSession returns the live session named by a valid cookie, or nil.
func (s *Server) resolveSession(r *http.Request) *session {
	c, err := r.Cookie(cookieName())
	if err != nil || c.Value == "" {
		return nil
	}
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(getEnv("JWT_SECRET", "dev_secret_change_me")), nil
	})
	if err != nil || !t.Valid {
		return nil
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil
	}
	sess, ok := s.sessions.get(sid)
	if !ok {
		return nil
	}
	return sess
}

// signSessionToken creates an HS256 JWT carrying the session id.
func signSessionToken(sid string) (string, time.Time, error) {
	exp := time.Now().Add(7 * 24 * time.Hour)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sid,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	ss, err := t.SignedString([]byte(getEnv("JWT_SECRET", "dev_secret_change_me")))
	return ss, exp, err
}

// setSessionCookie writes the session cookie with appropriate attributes.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	secure := os.Getenv("NODE_ENV") == "production"
	sameSite := http.SameSiteLaxMode
	if secure {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName(),
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Expires:  exp,
	})
}

func cookieName() string { return getEnv("COOKIE_NAME", "mathsprint_session") }

// requestSession pulls the session placed by withSession.
func requestSession(r *http.Request) *session {
	sess, _ := r.Context().Value(ctxSessionKey{}).(*session)
	return sess
}

// ------------------------------- handlers ----------------------------------

type inputReq struct {
	Text string `json:"text"`
}
type saveReq struct {
	Name string `json:"name"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	st := requestSession(r).dispatch(r.Context(), game.StartGame{})
	writeState(w, st)
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req inputReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	st := requestSession(r).dispatch(r.Context(), game.UpdateInput{Text: req.Text})
	writeState(w, st)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req saveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	st := requestSession(r).dispatch(r.Context(), game.SaveScore{Name: req.Name})
	writeState(w, st)
}

func (s *Server) handleMenu(w http.ResponseWriter, r *http.Request) {
	st := requestSession(r).dispatch(r.Context(), game.ReturnToMenu{})
	writeState(w, st)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeState(w, requestSession(r).snapshot())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	recs := s.scores.Top(r.Context(), limit)
	if recs == nil {
		recs = []scores.Record{}
	}
	_ = json.NewEncoder(w).Encode(recs)
}

// ------------------------------ snapshot view -------------------------------

// problemView is the client-facing problem; the answer stays server-side.
type problemView struct {
	A    int    `json:"a"`
	B    int    `json:"b"`
	Op   string `json:"op"`
	Text string `json:"text"`
}

type stateView struct {
	Phase       string          `json:"phase"`
	Problem     *problemView    `json:"problem,omitempty"`
	Input       string          `json:"input"`
	Score       int             `json:"score"`
	TimeLeft    int             `json:"timeLeft"`
	ShowSuccess bool            `json:"showSuccess"`
	Saved       bool            `json:"saved"`
	TopScores   []scores.Record `json:"topScores"`
}

func writeState(w http.ResponseWriter, st game.State) {
	view := stateView{
		Phase:       st.Phase.String(),
		Input:       st.Input,
		Score:       st.Score,
		TimeLeft:    st.TimeLeft,
		ShowSuccess: st.ShowSuccess,
		Saved:       st.Saved,
		TopScores:   st.TopScores,
	}
	if view.TopScores == nil {
		view.TopScores = []scores.Record{}
	}
	if p := st.Problem; p != nil {
		view.Problem = &problemView{A: p.A, B: p.B, Op: p.Op.Symbol(), Text: p.Text()}
	}
	_ = json.NewEncoder(w).Encode(view)
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
