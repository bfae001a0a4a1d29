package models

type OrderResponse struct {
	Order   Order  `json:"order"`
	Message string `json:"message,omitempty"`
}

type ExecutionResponse struct {
	Execution Execution `json:"execution"`
	Message   string    `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
