package enum

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
	MessageTypeFile  MessageType = "file"
)

// DeleteScope selects how far a message deletion reaches.
type DeleteScope string

const (
	DeleteScopeSelf     DeleteScope = "forMe"
	DeleteScopeEveryone DeleteScope = "forEveryone"
)
