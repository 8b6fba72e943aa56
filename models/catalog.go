package models

import "time"

// Batch and Subject share the same shape; they are kept as separate types so
// handlers stay explicit about which table they touch.

type Batch struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Subject struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateNamedRequest struct {
	Name string `json:"name"`
}

type UpdateNamedRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// NamedRef is the slim id+name row returned by the /meta listings.
type NamedRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
