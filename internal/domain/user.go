package domain

// Identity es el usuario autenticado que viene en el access token de la plataforma externa.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}
