// Package web serves the FocusTrack pages: an auth screen for visitors
// and the task-management screen for logged-in sessions.
//
// Every mutating action is its own POST handler that applies the store
// mutation and redirects back to GET /, which renders the full current
// view state. This replaces the source design of re-running one page
// script per interaction with explicit request handlers.
package web

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/focustrack/internal/clock"
	"github.com/roach88/focustrack/internal/creds"
	"github.com/roach88/focustrack/internal/history"
	"github.com/roach88/focustrack/internal/session"
	"github.com/roach88/focustrack/internal/task"
)

// Version is displayed on every page.
const Version = "2.0.0"

// SessionCookie names the visitor-token cookie.
const SessionCookie = "focustrack_session"

const sessionKey = "focustrack/session"

// Server wires the stores, the session manager, and the router.
type Server struct {
	creds    *creds.Store
	tasks    *task.Store
	history  *history.Log
	sessions *session.Manager
	clock    clock.Clock
	router   *gin.Engine
}

// NewServer builds the router with all routes registered.
func NewServer(cs *creds.Store, ts *task.Store, hl *history.Log, sm *session.Manager, clk clock.Clock) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		creds:    cs,
		tasks:    ts,
		history:  hl,
		sessions: sm,
		clock:    clk,
		router:   router,
	}

	tmpl := template.Must(template.New("").ParseFS(assets, "templates/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Use(s.withSession)

	router.GET("/", s.handleIndex)
	router.POST("/login", s.handleLogin)
	router.POST("/signup", s.handleSignup)

	router.POST("/tasks", s.handleAddTask)
	router.POST("/tasks/:id/start", s.handleStartTimer)
	router.POST("/tasks/:id/edit", s.handleEnterEdit)
	router.POST("/tasks/:id/save", s.handleSaveEdit)
	router.POST("/tasks/:id/cancel", s.handleCancelEdit)
	router.POST("/tasks/:id/delete", s.handleDeleteTask)
	router.POST("/tasks/:id/complete", s.handleCompleteTask)

	router.GET("/static/icon.svg", s.handleIcon)

	return s
}

// Handler exposes the router for httptest and for http.Server wiring.
func (s *Server) Handler() http.Handler {
	return s.router
}

// withSession resolves the visitor's session from the cookie, creating
// a fresh logged-out session (and setting the cookie) on first visit or
// after eviction.
func (s *Server) withSession(c *gin.Context) {
	var sess *session.Session

	if token, err := c.Cookie(SessionCookie); err == nil {
		if found, ok := s.sessions.Get(token); ok {
			sess = found
		}
	}
	if sess == nil {
		sess = s.sessions.Create()
		c.SetCookie(SessionCookie, sess.Token, 0, "/", "", false, true)
	}

	c.Set(sessionKey, sess)
	c.Next()
}

// currentSession returns the session installed by withSession.
func currentSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionKey).(*session.Session)
}

func (s *Server) handleIcon(c *gin.Context) {
	icon, err := assets.ReadFile("static/icon.svg")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "image/svg+xml", icon)
}
