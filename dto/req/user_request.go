package req

type PushTokenRequest struct {
	PushToken string `json:"pushToken" validate:"required"`
}
