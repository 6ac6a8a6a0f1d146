package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type signUpPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

type signInPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type profilePayload struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
}

type picturePayload struct {
	ImageData string `json:"imageData"`
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request) {
	user, ok := s.currentUser(w)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) signUp(w http.ResponseWriter, r *http.Request) {
	var p signUpPayload
	if !decodeBody(w, r, &p) {
		return
	}

	user, err := s.auth.SignUp(p.Email, p.Password, p.Username, p.FullName)
	if err != nil {
		s.fail(w, "sign up", err)

		return
	}

	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) signIn(w http.ResponseWriter, r *http.Request) {
	var p signInPayload
	if !decodeBody(w, r, &p) {
		return
	}

	user, err := s.auth.SignIn(p.Email, p.Password)
	if err != nil {
		s.fail(w, "sign in", err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) signInWithProvider(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.SignInWithProvider(chi.URLParam(r, "provider"))
	if err != nil {
		s.fail(w, "sign in with provider", err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) signOut(w http.ResponseWriter, _ *http.Request) {
	if err := s.auth.SignOut(); err != nil {
		s.fail(w, "sign out", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var p profilePayload
	if !decodeBody(w, r, &p) {
		return
	}

	user, err := s.auth.UpdateProfile(p.FullName, p.Username)
	if err != nil {
		s.fail(w, "update profile", err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (s *Server) updateProfilePicture(w http.ResponseWriter, r *http.Request) {
	var p picturePayload
	if !decodeBody(w, r, &p) {
		return
	}

	user, err := s.auth.UpdateProfilePicture(p.ImageData)
	if err != nil {
		s.fail(w, "update profile picture", err)

		return
	}

	writeJSON(w, http.StatusOK, user)
}
