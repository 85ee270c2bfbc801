package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"gigwork-chat-app/dto"
	"gigwork-chat-app/dto/req"
	"gigwork-chat-app/dto/res"
	"gigwork-chat-app/enum"
	"gigwork-chat-app/hub"
	"gigwork-chat-app/security"
)

func (handler *WebSocketHandler) onUploadImage(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.UploadImageRequest
	if !handler.decode(client, data, &payload, dto.EventMessageError) {
		return
	}

	raw, ext, err := decodeDataURI(payload.Image)
	if err != nil {
		handler.sendError(client, dto.EventMessageError, fiber.StatusBadRequest, "invalid image payload")
		return
	}
	name := uuid.New().String() + ext

	result, err := handler.Messages.SendMedia(ctx, identity.UserID, payload.ChatID, name, raw, enum.MessageTypeImage)
	if err != nil {
		handler.reportError(client, dto.EventMessageError, err)
		return
	}

	client.Send(dto.NewEvent(dto.EventFileUploadResponse, res.UploadResult{
		ChatID:    payload.ChatID,
		MessageID: result.Message.ID,
		URL:       result.Message.Content,
	}))
	handler.fanOutMessage(ctx, identity, client, result)
}

func (handler *WebSocketHandler) onUploadFile(ctx context.Context, identity security.Identity, client hub.Client, data json.RawMessage) {
	var payload req.UploadFileRequest
	if !handler.decode(client, data, &payload, dto.EventMessageError) {
		return
	}

	raw, _, err := decodeDataURI(payload.File)
	if err != nil {
		handler.sendError(client, dto.EventMessageError, fiber.StatusBadRequest, "invalid file payload")
		return
	}
	name := uuid.New().String() + "_" + payload.FileName

	result, err := handler.Messages.SendMedia(ctx, identity.UserID, payload.ChatID, name, raw, enum.MessageTypeFile)
	if err != nil {
		handler.reportError(client, dto.EventMessageError, err)
		return
	}

	client.Send(dto.NewEvent(dto.EventFileUploadResponse, res.UploadResult{
		ChatID:    payload.ChatID,
		MessageID: result.Message.ID,
		URL:       result.Message.Content,
	}))
	handler.fanOutMessage(ctx, identity, client, result)
}

// decodeDataURI accepts either a full data URI or bare base64 and returns the
// raw bytes plus a file extension guessed from the MIME prefix.
func decodeDataURI(s string) ([]byte, string, error) {
	ext := ""
	if strings.HasPrefix(s, "data:") {
		head, rest, found := strings.Cut(s, ",")
		if !found {
			return nil, "", base64.CorruptInputError(0)
		}
		mime := strings.TrimPrefix(head, "data:")
		mime = strings.TrimSuffix(mime, ";base64")
		if _, sub, ok := strings.Cut(mime, "/"); ok {
			ext = "." + sub
		}
		s = rest
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, "", err
	}
	return raw, ext, nil
}
