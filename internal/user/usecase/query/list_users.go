package query

import (
	"github.com/sd-store/catalog-service/internal/user/domain"
)

// ListUsersQuery represents the query to list users
type ListUsersQuery struct {
	Limit  int
	Offset int
}

// UserList is one page of users together with the total count.
type UserList struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

// ListUsersHandler handles user listings
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) (*UserList, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}

	users, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	total, err := h.repo.Count()
	if err != nil {
		return nil, err
	}

	return &UserList{Users: users, Total: total}, nil
}
