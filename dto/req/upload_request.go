package req

type UploadImageRequest struct {
	ChatID string `json:"chatId" validate:"required"`
	// Image is a base64 data URI, e.g. "data:image/jpeg;base64,...".
	Image string `json:"image" validate:"required"`
}

type UploadFileRequest struct {
	ChatID   string `json:"chatId" validate:"required"`
	File     string `json:"file" validate:"required"`
	FileName string `json:"fileName" validate:"required"`
	FileType string `json:"fileType,omitempty"`
}
