package httpapi

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gym-backend-go/internal/db"
	"gym-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/jmoiron/sqlx"
)

const maxFormMemory = 10 << 20

type TableActions struct {
	Create bool `json:"create"`
	Edit   bool `json:"edit"`
	Delete bool `json:"delete"`
}

type TablePage struct {
	Entity   string               `json:"entity"`
	Singular string               `json:"singular"`
	Label    string               `json:"label"`
	Fields   []services.FieldSpec `json:"fields"`
	Rows     interface{}          `json:"rows"`
	Actions  TableActions         `json:"actions"`
	Notice   string               `json:"notice,omitempty"`
}

type FormPage struct {
	Entity   string               `json:"entity"`
	Singular string               `json:"singular"`
	Label    string               `json:"label"`
	Action   string               `json:"action"`
	Fields   []services.FieldSpec `json:"fields"`
	Row      interface{}          `json:"row,omitempty"`
	Notice   string               `json:"notice,omitempty"`
}

// TableView lists an entity on GET and creates a row on POST.
func (s *Server) TableView(w http.ResponseWriter, r *http.Request) {
	identity, _ := CurrentIdentity(r)
	resource, ok := s.resolve(w, r, identity, chi.URLParam(r, "entity"), services.LookupResource)
	if !ok {
		return
	}
	if r.Method == http.MethodPost {
		if !s.authorize(w, r, identity, resource, services.OpCreate) {
			return
		}
		s.create(w, r, resource, tablePath(resource))
		return
	}
	if !s.authorize(w, r, identity, resource, services.OpList) {
		return
	}
	rows, err := resource.List(r.Context(), s.DB)
	if err != nil {
		s.mapServiceError(w, r, err, dashboardPath(identity.Role))
		return
	}
	notice, err := s.Sessions.PopNotice(r.Context(), identity)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, TablePage{
		Entity:   resource.Name(),
		Singular: resource.Singular(),
		Label:    resource.Label(),
		Fields:   resource.Fields(),
		Rows:     rows,
		Actions: TableActions{
			Create: services.Allows(identity.Role, resource.Name(), services.OpCreate),
			Edit:   services.Allows(identity.Role, resource.Name(), services.OpEdit),
			Delete: services.Allows(identity.Role, resource.Name(), services.OpDelete),
		},
		Notice: notice,
	})
}

// AddEntry serves the blank form on GET and creates a row on POST.
func (s *Server) AddEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := CurrentIdentity(r)
	resource, ok := s.resolve(w, r, identity, chi.URLParam(r, "singular"), services.LookupSingular)
	if !ok {
		return
	}
	if !s.authorize(w, r, identity, resource, services.OpCreate) {
		return
	}
	action := "/add_" + resource.Singular()
	if r.Method == http.MethodPost {
		s.create(w, r, resource, action)
		return
	}
	notice, err := s.Sessions.PopNotice(r.Context(), identity)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, FormPage{
		Entity:   resource.Name(),
		Singular: resource.Singular(),
		Label:    resource.Label(),
		Action:   action,
		Fields:   resource.Fields(),
		Notice:   notice,
	})
}

// EditEntry serves the filled form on GET and overwrites the row on POST.
func (s *Server) EditEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := CurrentIdentity(r)
	resource, ok := s.resolve(w, r, identity, chi.URLParam(r, "singular"), services.LookupSingular)
	if !ok {
		return
	}
	if !s.authorize(w, r, identity, resource, services.OpEdit) {
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	action := fmt.Sprintf("/edit_%s/%d", resource.Singular(), id)

	if r.Method == http.MethodPost {
		values, err := formValues(r)
		if err != nil {
			s.mapServiceError(w, r, services.ErrBadRequest("Invalid form"), action)
			return
		}
		err = db.InTx(r.Context(), s.DB, func(tx *sqlx.Tx) error {
			return resource.Update(r.Context(), tx, id, values)
		})
		if err != nil {
			s.mapServiceError(w, r, err, action)
			return
		}
		s.finish(w, r, resource, resource.Label()+" updated successfully!")
		return
	}

	row, err := resource.Get(r.Context(), s.DB, id)
	if err != nil {
		s.mapServiceError(w, r, err, tablePath(resource))
		return
	}
	notice, err := s.Sessions.PopNotice(r.Context(), identity)
	if err != nil {
		writeInternalError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, FormPage{
		Entity:   resource.Name(),
		Singular: resource.Singular(),
		Label:    resource.Label(),
		Action:   action,
		Fields:   resource.Fields(),
		Row:      row,
		Notice:   notice,
	})
}

func (s *Server) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	identity, _ := CurrentIdentity(r)
	resource, ok := s.resolve(w, r, identity, chi.URLParam(r, "singular"), services.LookupSingular)
	if !ok {
		return
	}
	if !s.authorize(w, r, identity, resource, services.OpDelete) {
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	err := db.InTx(r.Context(), s.DB, func(tx *sqlx.Tx) error {
		return resource.Delete(r.Context(), tx, id)
	})
	if err != nil {
		s.mapServiceError(w, r, err, tablePath(resource))
		return
	}
	s.finish(w, r, resource, resource.Label()+" deleted successfully!")
}

func (s *Server) create(w http.ResponseWriter, r *http.Request, resource services.Resource, origin string) {
	values, err := formValues(r)
	if err != nil {
		s.mapServiceError(w, r, services.ErrBadRequest("Invalid form"), origin)
		return
	}
	err = db.InTx(r.Context(), s.DB, func(tx *sqlx.Tx) error {
		_, err := resource.Create(r.Context(), tx, values)
		return err
	})
	if err != nil {
		s.mapServiceError(w, r, err, origin)
		return
	}
	s.finish(w, r, resource, resource.Label()+" added successfully!")
}

// finish leaves the success notice and sends the caller back to the list.
func (s *Server) finish(w http.ResponseWriter, r *http.Request, resource services.Resource, notice string) {
	identity, _ := CurrentIdentity(r)
	if err := s.Sessions.SetNotice(r.Context(), identity.SessionID, notice); err != nil {
		log.Printf("set notice: %v", err)
	}
	seeOther(w, r, tablePath(resource))
}

// resolve maps a URL name onto the catalog. Unknown names leave a notice and
// redirect to the caller's dashboard.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request, identity services.Identity, name string, lookup func(string) (services.Resource, bool)) (services.Resource, bool) {
	resource, ok := lookup(name)
	if ok {
		return resource, true
	}
	notice := fmt.Sprintf("Table \"%s\" is not supported.", name)
	if err := s.Sessions.SetNotice(r.Context(), identity.SessionID, notice); err != nil {
		log.Printf("set notice: %v", err)
	}
	seeOther(w, r, dashboardPath(identity.Role))
	return nil, false
}

func (s *Server) authorize(w http.ResponseWriter, r *http.Request, identity services.Identity, resource services.Resource, op services.Operation) bool {
	if services.Allows(identity.Role, resource.Name(), op) {
		return true
	}
	seeOther(w, r, dashboardPath(identity.Role))
	return false
}

func tablePath(resource services.Resource) string {
	return "/table/" + resource.Name()
}

func parseID(w http.ResponseWriter, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

func formValues(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
		return r.PostForm, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}
