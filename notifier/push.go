package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Pusher delivers a push notification to one device token. Delivery is best
// effort; callers log failures and move on.
type Pusher interface {
	Push(ctx context.Context, token, title, body string, data map[string]string) error
}

type pushPayload struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Sound string            `json:"sound"`
	Data  map[string]string `json:"data,omitempty"`
}

// ExpoPusher posts to the Expo push gateway.
type ExpoPusher struct {
	endpoint string
	client   *http.Client
	log      *logrus.Logger
}

func NewExpoPusher(endpoint string, log *logrus.Logger) *ExpoPusher {
	return &ExpoPusher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
		log:      log,
	}
}

func (p *ExpoPusher) Push(ctx context.Context, token, title, body string, data map[string]string) error {
	payload, err := json.Marshal(pushPayload{
		To:    token,
		Title: title,
		Body:  body,
		Sound: "default",
		Data:  data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push gateway returned %s", resp.Status)
	}
	p.log.WithField("status", resp.Status).Debug("push notification sent")
	return nil
}
