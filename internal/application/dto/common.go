package dto

// ErrorResponse cuerpo de error HTTP. Details lleva campo → regla cuando falla la validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// MessageResponse respuesta simple para operaciones sin cuerpo (eliminar).
type MessageResponse struct {
	Message string `json:"message"`
}
