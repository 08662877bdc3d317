package web

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roach88/focustrack/internal/apperr"
	"github.com/roach88/focustrack/internal/history"
	"github.com/roach88/focustrack/internal/session"
	"github.com/roach88/focustrack/internal/task"
	"github.com/roach88/focustrack/internal/timer"
)

// handleIndex is the page controller: auth screen for logged-out
// sessions, task screen otherwise.
func (s *Server) handleIndex(c *gin.Context) {
	sess := currentSession(c)
	if !sess.LoggedIn {
		s.renderAuth(c, http.StatusOK, authView{SignupTab: c.Query("tab") == "signup"})
		return
	}
	s.renderTasks(c, http.StatusOK, sess, "")
}

// authView carries the auth screen's state across re-renders: active
// tab, sticky field values, and the inline error, if any.
type authView struct {
	SignupTab bool
	Username  string
	Email     string
	Error     string
}

func (s *Server) renderAuth(c *gin.Context, status int, v authView) {
	c.HTML(status, "auth.html", gin.H{
		"Version":   Version,
		"SignupTab": v.SignupTab,
		"Username":  v.Username,
		"Email":     v.Email,
		"Error":     v.Error,
	})
}

// statusFor maps the error taxonomy to HTTP statuses. Failures render
// inline on the current screen; the status is bookkeeping for clients
// that care.
func statusFor(err error) int {
	switch apperr.CodeOf(err) {
	case apperr.CodeDuplicateUsername, apperr.CodeDuplicateEmail:
		return http.StatusConflict
	case apperr.CodeInvalidCredentials:
		return http.StatusUnauthorized
	case apperr.CodeMissingField:
		return http.StatusBadRequest
	case apperr.CodeTaskNotFound:
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// userMessage picks the inline text shown for an auth failure.
func userMessage(err error, loginTab bool) string {
	switch apperr.CodeOf(err) {
	case apperr.CodeDuplicateUsername:
		return "Username already exists. Please choose a different one."
	case apperr.CodeDuplicateEmail:
		return "Email already in use. Please use a different email."
	case apperr.CodeInvalidCredentials:
		return "Invalid username or password."
	case apperr.CodeMissingField:
		if loginTab {
			return "Please fill in both fields."
		}
		return "Please fill in all fields."
	}
	return err.Error()
}

func (s *Server) handleLogin(c *gin.Context) {
	sess := currentSession(c)
	username := c.PostForm("username")
	password := c.PostForm("password")

	fail := func(err error) {
		s.renderAuth(c, statusFor(err), authView{
			Username: username,
			Error:    userMessage(err, true),
		})
	}

	switch {
	case username == "":
		fail(apperr.NewMissingField("username"))
		return
	case password == "":
		fail(apperr.NewMissingField("password"))
		return
	}

	ok, err := s.creds.Authenticate(username, password)
	if err != nil {
		fail(err)
		return
	}
	if !ok {
		fail(apperr.NewInvalidCredentials(username))
		return
	}

	sess.Login(username)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSignup(c *gin.Context) {
	sess := currentSession(c)
	username := c.PostForm("username")
	password := c.PostForm("password")
	email := c.PostForm("email")

	fail := func(err error) {
		s.renderAuth(c, statusFor(err), authView{
			SignupTab: true,
			Username:  username,
			Email:     email,
			Error:     userMessage(err, false),
		})
	}

	required := []struct{ field, value string }{
		{"username", username},
		{"password", password},
		{"email", email},
	}
	for _, r := range required {
		if r.value == "" {
			fail(apperr.NewMissingField(r.field))
			return
		}
	}

	if err := s.creds.Register(username, password, email); err != nil {
		fail(err)
		return
	}

	// New accounts start with an empty task list.
	sess.Login(username)
	c.Redirect(http.StatusSeeOther, "/")
}

// renderTasks draws the full task-management screen from current store
// and session state.
func (s *Server) renderTasks(c *gin.Context, status int, sess *session.Session, inlineErr string) {
	tasks, err := s.tasks.ListForUser(sess.Username)
	if err != nil {
		c.String(http.StatusInternalServerError, "load tasks: %v", err)
		return
	}

	var editing *task.Task
	if sess.EditID != "" {
		for i := range tasks {
			if tasks[i].ID == sess.EditID {
				editing = &tasks[i]
				break
			}
		}
	}

	var timerHTML template.HTML
	if sess.Timer != nil {
		var buf bytes.Buffer
		if err := timer.Render(&buf, timer.View{
			TaskName: sess.Timer.TaskName,
			Duration: sess.Timer.Duration,
			End:      sess.Timer.End,
		}); err != nil {
			c.String(http.StatusInternalServerError, "render timer: %v", err)
			return
		}
		timerHTML = template.HTML(buf.String())
	}

	showCompleted := c.Query("completed") == "1"
	var completed []history.Record
	if showCompleted {
		completed, err = s.history.ListForUser(sess.Username)
		if err != nil {
			c.String(http.StatusInternalServerError, "load history: %v", err)
			return
		}
		history.SortNewestFirst(completed)
	}

	c.HTML(status, "tasks.html", gin.H{
		"Version":       Version,
		"Username":      sess.Username,
		"Error":         inlineErr,
		"Durations":     task.Durations,
		"Tasks":         tasks,
		"Editing":       editing,
		"Timer":         timerHTML,
		"ShowCompleted": showCompleted,
		"Completed":     completed,
	})
}

// requireLogin aborts with a redirect to the auth screen when the
// session is not logged in. Returns nil in that case.
func (s *Server) requireLogin(c *gin.Context) *session.Session {
	sess := currentSession(c)
	if !sess.LoggedIn {
		c.Redirect(http.StatusSeeOther, "/")
		return nil
	}
	return sess
}

// ownedTask resolves the :id param to one of the session user's pending
// tasks. Renders the task screen with an inline error when the id is
// stale or belongs to someone else.
func (s *Server) ownedTask(c *gin.Context, sess *session.Session) (task.Task, bool) {
	id := c.Param("id")
	t, err := s.tasks.Get(id)
	if err != nil || t.Username != sess.Username {
		s.renderTasks(c, http.StatusNotFound, sess, "That task is no longer in your list.")
		return task.Task{}, false
	}
	return t, true
}

func (s *Server) handleAddTask(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}

	name := c.PostForm("task_name")
	if name == "" {
		s.renderTasks(c, http.StatusBadRequest, sess, "Task name is required.")
		return
	}
	duration, err := strconv.Atoi(c.PostForm("duration"))
	if err != nil || !task.ValidDuration(duration) {
		s.renderTasks(c, http.StatusBadRequest, sess, "Duration must be 25, 18, or 52 minutes.")
		return
	}

	if _, err := s.tasks.Add(sess.Username, name, duration); err != nil {
		s.renderTasks(c, http.StatusInternalServerError, sess, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleStartTimer(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}
	t, ok := s.ownedTask(c, sess)
	if !ok {
		return
	}

	sess.StartTimer(t, timer.EndFor(s.clock.Now(), t.Duration))
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleEnterEdit(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}
	t, ok := s.ownedTask(c, sess)
	if !ok {
		return
	}

	sess.StartEdit(t.ID)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSaveEdit(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}
	t, ok := s.ownedTask(c, sess)
	if !ok {
		return
	}

	name := c.PostForm("task_name")
	if name == "" {
		s.renderTasks(c, http.StatusBadRequest, sess, "Task name is required.")
		return
	}
	duration, err := strconv.Atoi(c.PostForm("duration"))
	if err != nil || !task.ValidDuration(duration) {
		s.renderTasks(c, http.StatusBadRequest, sess, "Duration must be 25, 18, or 52 minutes.")
		return
	}

	if err := s.tasks.Update(t.ID, name, duration); err != nil {
		s.renderTasks(c, http.StatusInternalServerError, sess, err.Error())
		return
	}
	sess.EndEdit()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleCancelEdit(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}

	sess.EndEdit()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}
	t, ok := s.ownedTask(c, sess)
	if !ok {
		return
	}

	if err := s.tasks.Delete(t.ID); err != nil {
		s.renderTasks(c, http.StatusInternalServerError, sess, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleCompleteTask(c *gin.Context) {
	sess := s.requireLogin(c)
	if sess == nil {
		return
	}
	t, ok := s.ownedTask(c, sess)
	if !ok {
		return
	}

	if _, err := s.tasks.Complete(t.ID, s.history); err != nil {
		s.renderTasks(c, http.StatusInternalServerError, sess, err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
