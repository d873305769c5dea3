package api

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// UpdatePostRequest is the body of PUT /api/posts/{id}. Absent fields stay nil
// and are left unchanged; present fields must not be empty.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

// ErrorResponse is returned for malformed requests (400, 405, 429).
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse carries informational results and 404s.
type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
