package req

type CreateChatRequest struct {
	ClientID string `json:"clientId" validate:"required"`
	JobID    string `json:"jobId" validate:"required"`
}

type JoinChatRequest struct {
	ChatID string `json:"chatId" validate:"required"`
}

type DeleteChatRequest struct {
	ChatID   string `json:"chatId" validate:"required"`
	UserRole string `json:"userRole" validate:"required,oneof=client job-seeker"`
}
