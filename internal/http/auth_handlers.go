package httpapi

import (
	"log"
	"net/http"
	"strings"

	"gym-backend-go/internal/services"
)

type LoginPage struct {
	Form   string   `json:"form"`
	Action string   `json:"action"`
	Fields []string `json:"fields"`
}

type IndexPage struct {
	App           string `json:"app"`
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Role          string `json:"role,omitempty"`
	Dashboard     string `json:"dashboard,omitempty"`
}

func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	page := IndexPage{App: "gym"}
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if identity, err := s.Sessions.Authenticate(r.Context(), cookie.Value); err == nil {
			page.Authenticated = true
			page.Username = identity.Username
			page.Role = identity.Role
			page.Dashboard = dashboardPath(identity.Role)
		}
	}
	WriteJSON(w, http.StatusOK, page)
}

func (s *Server) LoginForm(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, LoginPage{
		Form:   "login",
		Action: "/login",
		Fields: []string{"username", "password"},
	})
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	values, err := formValues(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid form")
		return
	}
	username := strings.TrimSpace(values.Get("username"))
	session, err := s.Sessions.Login(r.Context(), username, values.Get("password"))
	if err != nil {
		if serr, ok := services.AsServiceError(err); ok {
			log.Printf("login failed for %q", username)
			WriteError(w, serr.Status, serr.Message)
			return
		}
		writeInternalError(w, r, err)
		return
	}
	setSessionCookie(w, session, s.Config.CookieSecure)
	seeOther(w, r, dashboardPath(session.Role))
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := CurrentIdentity(r)
	if err := s.Sessions.Logout(r.Context(), identity.SessionID); err != nil {
		writeInternalError(w, r, err)
		return
	}
	clearSessionCookie(w, s.Config.CookieSecure)
	seeOther(w, r, "/")
}
