package ports

import "context"

// LLMService define el puerto de salida hacia el modelo de lenguaje.
// Cualquier adaptador (Anthropic, mock) debe implementar esta interfaz;
// la aplicación solo conoce este contrato (DIP).
type LLMService interface {
	// Ask envía una pregunta con un contexto de inventario ya formateado y
	// devuelve la respuesta en texto y el nombre del modelo usado.
	// El contexto debe llevar timeout para evitar bloqueos en la llamada externa.
	Ask(ctx context.Context, question, inventoryContext string) (answer, model string, err error)
}
