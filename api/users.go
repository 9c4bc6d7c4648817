package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
	"github.com/gorilla/mux"
)

type UsersHandler struct {
	userRepo  repository.UserRepo
	validator Validator
}

func NewUsersHandler(ur repository.UserRepo, v Validator) *UsersHandler {
	return &UsersHandler{userRepo: ur, validator: v}
}

func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.userRepo.GetUser(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get user", err)
		return
	}
	if u == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, u, http.StatusOK)
}

func (h *UsersHandler) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := h.userRepo.GetUserByUsername(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		writeFailure(w, r, "get user", err)
		return
	}
	if u == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, u, http.StatusOK)
}

func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	u := models.NewUser()
	if !decodeCreate(w, r, h.validator, models.KindUser, "user", "create user", &u) {
		return
	}
	u.ID = 0
	u.CreatedAt, u.LastActive = time.Time{}, time.Time{}

	created, err := h.userRepo.CreateUser(r.Context(), &u)
	if err != nil {
		writeFailure(w, r, "create user", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	p, ok := decodePatch(w, r, "user")
	if !ok {
		return
	}

	u, err := h.userRepo.UpdateUser(r.Context(), id, p)
	writeUpdated(w, r, u, err, "user", "User", "update user")
}
