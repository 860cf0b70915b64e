package dto

// ErrorResponse cuerpo de error HTTP. Field y Document solo se informan en errores de documento.
type ErrorResponse struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Field    string `json:"field,omitempty"`
	Path     string `json:"path,omitempty"`
	Document *int   `json:"document,omitempty"`
}
