package domain

// Session identifies the logged in user. A nil *Session means logged out.
type Session struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// Session converts credentials into the session they establish.
func (c Credentials) Session() *Session {
	return &Session{Name: c.Name, Email: c.Email}
}
