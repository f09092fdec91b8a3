package httpapi

import (
	"net/http"

	"gym-backend-go/internal/services"
)

type DashboardTable struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Link  string `json:"link"`
}

type DashboardPage struct {
	Username string           `json:"username"`
	Role     string           `json:"role"`
	Tables   []DashboardTable `json:"tables"`
	Notice   string           `json:"notice,omitempty"`
}

func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard(w, r)
}

func (s *Server) UserDashboard(w http.ResponseWriter, r *http.Request) {
	s.dashboard(w, r)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := CurrentIdentity(r)
	tables := []DashboardTable{}
	for _, name := range services.DashboardTables(identity.Role) {
		resource, ok := services.LookupResource(name)
		if !ok {
			continue
		}
		tables = append(tables, DashboardTable{Name: name, Label: resource.Label(), Link: "/table/" + name})
	}
	notice, err := s.Sessions.PopNotice(r.Context(), identity)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, DashboardPage{
		Username: identity.Username,
		Role:     identity.Role,
		Tables:   tables,
		Notice:   notice,
	})
}
