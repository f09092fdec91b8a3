package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"gym-backend-go/internal/services"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// FormErrorResponse is returned when a submitted form is rejected. Redirect
// points back at the form the caller came from.
type FormErrorResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Message: message})
}

func writeInternalError(w http.ResponseWriter, r *http.Request, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	WriteError(w, http.StatusInternalServerError, "Internal server error")
}

// mapServiceError writes the response for a failed read or mutation.
// A rejected form is reported in the body only; the session notice is kept
// for outcomes that end in a redirect.
func (s *Server) mapServiceError(w http.ResponseWriter, r *http.Request, err error, redirect string) {
	serr, ok := services.AsServiceError(err)
	if !ok {
		writeInternalError(w, r, err)
		return
	}
	switch serr.Kind {
	case services.KindValidation, services.KindConstraint:
		WriteJSON(w, serr.Status, FormErrorResponse{Message: serr.Message, Redirect: redirect})
	default:
		WriteError(w, serr.Status, serr.Message)
	}
}

func seeOther(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}
