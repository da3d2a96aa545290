package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/sd-store/catalog-service/internal/user/domain"
	"github.com/sd-store/catalog-service/internal/user/usecase/command"
	"github.com/sd-store/catalog-service/internal/user/usecase/query"
	"github.com/sd-store/catalog-service/pkg/logger"
)

// UserHandler exposes account and auth operations over HTTP.
type UserHandler struct {
	registerHandler *command.RegisterUserHandler
	loginHandler    *command.LoginUserHandler
	getHandler      *query.GetUserHandler
	listHandler     *query.ListUsersHandler
}

// NewUserHandler creates a new user handler
func NewUserHandler(repo domain.UserRepository) *UserHandler {
	return &UserHandler{
		registerHandler: command.NewRegisterUserHandler(repo),
		loginHandler:    command.NewLoginUserHandler(repo),
		getHandler:      query.NewGetUserHandler(repo),
		listHandler:     query.NewListUsersHandler(repo),
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// RegisterRoutes registers auth and user routes
func (h *UserHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.Register).Methods("POST")
	router.HandleFunc("/auth/login", h.Login).Methods("POST")
	router.HandleFunc("/users/me", AuthMiddleware(h.Me)).Methods("GET")
	router.HandleFunc("/admin/users", AdminMiddleware(h.ListUsers)).Methods("GET")
}

// Register handles POST /auth/register
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	user, err := h.registerHandler.Handle(command.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
			status = http.StatusConflict
		}
		respondJSON(w, status, Response{Success: false, Error: err.Error()})
		return
	}

	logger.Info(r.Context()).
		Uint("user_id", user.ID).
		Str("username", user.Username).
		Str("role", user.Role).
		Msg("User registered")

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// Login handles POST /auth/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid request body"})
		return
	}

	resp, err := h.loginHandler.Handle(command.LoginUserCommand{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid credentials"})
			return
		}
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	logger.Info(r.Context()).
		Uint("user_id", resp.User.ID).
		Str("username", resp.User.Username).
		Msg("User logged in")

	respondJSON(w, http.StatusOK, Response{Success: true, Data: resp})
}

// Me handles GET /users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(UserIDKey).(uint)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Not authenticated"})
		return
	}

	user, err := h.getHandler.Handle(query.GetUserQuery{ID: userID})
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "User not found"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: user})
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	list, err := h.listHandler.Handle(query.ListUsersQuery{Limit: limit, Offset: offset})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list users")
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: "Failed to list users"})
		return
	}
	respondJSON(w, http.StatusOK, Response{Success: true, Data: list})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
