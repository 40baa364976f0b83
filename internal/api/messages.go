package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is the display view of a project member.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Users     []string  `json:"users"`
	CreatedAt time.Time `json:"created_at"`
}

type ProjectDetails struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Users     []Member  `json:"users"`
	CreatedAt time.Time `json:"created_at"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type Empty struct{}

type MessageResponse struct {
	Message string `json:"message"`
}

type ListUsersResponse struct {
	Users []Member `json:"users"`
}

type CreateProjectRequest struct {
	Name string `json:"name"`
}

type ListProjectsRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type ListProjectsResponse struct {
	Projects []*Project `json:"projects"`
}

type AddMembersRequest struct {
	ProjectID string   `json:"projectId"`
	Users     []string `json:"users"`
}

type GetProjectRequest struct {
	ProjectID string `json:"projectId"`
}
