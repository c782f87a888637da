package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/GrandCart/PantryPlus2/internal/domain"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	user := s.identity.CurrentUser()
	if user == nil {
		jsonError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var user domain.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(user.ID) == "" {
		jsonError(w, http.StatusBadRequest, "user id required")
		return
	}

	s.identity.SignIn(user)
	jsonResponse(w, http.StatusOK, user)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.identity.SignOut()
	w.WriteHeader(http.StatusNoContent)
}

// currentUserID sources the active user once; handlers thread it explicitly
// into every service call.
func (s *Server) currentUserID(w http.ResponseWriter) (string, bool) {
	user := s.identity.CurrentUser()
	if user == nil {
		jsonError(w, http.StatusUnauthorized, "not signed in")
		return "", false
	}
	return user.ID, true
}
