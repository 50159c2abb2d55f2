package dto

// AskAssistantRequest pregunta en texto libre para el asistente de inventario.
type AskAssistantRequest struct {
	Question string `json:"question" validate:"required,min=3,max=1000"`
}

// AskAssistantResponse respuesta del modelo con el modelo usado.
type AskAssistantResponse struct {
	Answer string `json:"answer"`
	Model  string `json:"model"`
}
