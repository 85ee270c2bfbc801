package storage

import (
	"bytes"
	"context"
	"fmt"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"gigwork-chat-app/apperr"
)

// CloudinaryStore uploads chat media to Cloudinary, one folder per chat.
type CloudinaryStore struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryStore(url string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("init cloudinary: %w", err)
	}
	return &CloudinaryStore{cld: cld}, nil
}

func (s *CloudinaryStore) Write(ctx context.Context, chatID, name string, data []byte) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		Folder:   "chat_media/" + chatID,
		PublicID: name,
	})
	if err != nil {
		return "", apperr.Transportf("upload media: %v", err)
	}
	return result.SecureURL, nil
}
