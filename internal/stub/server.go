// Package stub serves a local endpoint that speaks the dwz.cn create API, for
// offline use and tests.
package stub

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pterm/pterm"
	"github.com/speps/go-hashids/v2"

	"github.com/kernel/shorturl/internal/shortener"
)

// Error messages the real service returns.
const (
	ErrMsgEmptyURL   = "网址不能为空"
	ErrMsgInvalidURL = "您输入的网址不存在，请重新输入"
)

const (
	saltKey   = "shorturl stub"
	minLength = 5
)

// Server stores short codes in memory. The same long URL always maps to the
// same code.
type Server struct {
	*chi.Mux
	baseURL string
	hashID  *hashids.HashID

	mu     sync.Mutex
	next   int
	byCode map[string]string
	byURL  map[string]string
}

// New returns a server whose short URLs start with baseURL.
func New(baseURL string) (*Server, error) {
	hd := hashids.NewData()
	hd.Salt = saltKey
	hd.MinLength = minLength
	hashID, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, err
	}
	s := &Server{
		Mux:     chi.NewRouter(),
		baseURL: strings.TrimRight(baseURL, "/"),
		hashID:  hashID,
		byCode:  make(map[string]string),
		byURL:   make(map[string]string),
	}
	s.setupHandlers()
	return s, nil
}

func (s *Server) setupHandlers() {
	s.Use(middleware.Recoverer)
	s.Use(requestLogger)

	s.Post("/create.php", s.create)
	s.Get("/{code}", s.redirect)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	longURL := strings.TrimSpace(r.PostForm.Get("url"))
	if longURL == "" {
		writeJSON(w, errorResponse(ErrMsgEmptyURL, longURL))
		return
	}
	if u, err := url.ParseRequestURI(longURL); err != nil || u.Scheme == "" || u.Host == "" {
		writeJSON(w, errorResponse(ErrMsgInvalidURL, longURL))
		return
	}

	code, err := s.shorten(longURL)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	status := 0
	writeJSON(w, shortener.Response{
		Status:  &status,
		TinyURL: s.baseURL + "/" + code,
		LongURL: longURL,
	})
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	s.mu.Lock()
	longURL, ok := s.byCode[code]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, longURL, http.StatusTemporaryRedirect)
}

func (s *Server) shorten(longURL string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if code, ok := s.byURL[longURL]; ok {
		return code, nil
	}
	code, err := s.hashID.Encode([]int{s.next})
	if err != nil {
		return "", err
	}
	s.next++
	s.byCode[code] = longURL
	s.byURL[longURL] = code
	return code, nil
}

// Len returns the number of stored URLs.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byCode)
}

func errorResponse(msg, longURL string) shortener.Response {
	status := -1
	return shortener.Response{Status: &status, ErrMsg: msg, LongURL: longURL}
}

func writeJSON(w http.ResponseWriter, v shortener.Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		pterm.Debug.Printf("%s %s -> %d\n", r.Method, r.URL.Path, ww.Status())
	})
}
