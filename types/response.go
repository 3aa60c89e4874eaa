package types

// ApiResponse is the JSON envelope used by every handler. Resource-specific
// payloads (e.g. {order, invoice}) are emitted as fiber.Map with the same
// success/message convention.
type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Token   string      `json:"token,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}
