package response

// Payload and envelope types referenced by handlers and the Swagger docs.

type WelcomePayload struct {
	Message string `json:"message"`
}

type HealthPayload struct {
	Status string `json:"status"`
}

// LessonPayload is the public shape of a lesson.
type LessonPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	IsFree  bool   `json:"is_free"`
}

// UserPayload is the public shape of an account.
type UserPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenPayload is returned by the login and register endpoints.
type TokenPayload struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresAt string `json:"expires_at"`
}

type WelcomeResponse struct {
	Status     string         `json:"status"`
	StatusCode int            `json:"status_code"`
	Data       WelcomePayload `json:"data"`
}

type HealthResponse struct {
	Status     string        `json:"status"`
	StatusCode int           `json:"status_code"`
	Data       HealthPayload `json:"data"`
}

type LessonResponse struct {
	Status     string        `json:"status"`
	StatusCode int           `json:"status_code"`
	Data       LessonPayload `json:"data"`
}

type LessonListResponse struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       []LessonPayload `json:"data"`
}

type LessonPageResponse struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       []LessonPayload `json:"data"`
	Meta       Meta            `json:"meta"`
}

type UserResponse struct {
	Status     string      `json:"status"`
	StatusCode int         `json:"status_code"`
	Data       UserPayload `json:"data"`
}

type TokenResponse struct {
	Status     string       `json:"status"`
	StatusCode int          `json:"status_code"`
	Data       TokenPayload `json:"data"`
}
