package dto

type ChatTurn struct {
	Sender string `json:"sender" validate:"required,oneof=user bot"`
	Text   string `json:"text" validate:"required"`
}

type ChatRequest struct {
	Message             string     `json:"message" validate:"required"`
	Role                string     `json:"role" validate:"required"`
	RoleContext         string     `json:"role_context"`
	ConversationHistory []ChatTurn `json:"conversation_history" validate:"omitempty,dive"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}
