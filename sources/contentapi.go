package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/kova98/newsdigest/models"
	"github.com/pkg/errors"
)

const (
	emailsResource = "emails"
	itemsResource  = "items/"
	apiKeyParam    = "api-key"
	maxErrorBody   = 300
)

// StatusError is returned when the content API answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("content API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("content API returned status %d: %s", e.StatusCode, e.Body)
}

type ContentAPI struct {
	logger     *slog.Logger
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewContentAPI(logger *slog.Logger, httpClient *http.Client, endpoint, apiKey string) *ContentAPI {
	return &ContentAPI{
		logger:     logger,
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
	}
}

// ListSubscriptions returns every subscription currently registered. Records
// that fail to decode are returned with DecodeErr set so that only they fail.
func (c *ContentAPI) ListSubscriptions(ctx context.Context) ([]models.Subscription, error) {
	var records []json.RawMessage
	if err := c.get(ctx, emailsResource, &records); err != nil {
		return nil, errors.Wrap(err, "list subscriptions")
	}

	subs := make([]models.Subscription, 0, len(records))
	for i, record := range records {
		var sub models.Subscription
		if err := json.Unmarshal(record, &sub); err != nil {
			sub.DecodeErr = errors.Wrapf(err, "decode subscription record %d", i)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// FetchItems returns the items published since the last poll for the
// subscription. An empty slice means there is nothing new.
func (c *ContentAPI) FetchItems(ctx context.Context, subscriptionID string) ([]models.Item, error) {
	var items []models.Item
	if err := c.get(ctx, itemsResource+url.PathEscape(subscriptionID), &items); err != nil {
		return nil, errors.Wrapf(err, "fetch items for subscription %q", subscriptionID)
	}
	return items, nil
}

func (c *ContentAPI) get(ctx context.Context, resource string, dest any) error {
	u, err := url.Parse(c.endpoint + resource)
	if err != nil {
		return errors.Wrap(err, "build request url")
	}
	q := u.Query()
	q.Set(apiKeyParam, c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "newsdigest")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return redactKey(err)
	}
	defer resp.Body.Close()

	c.logger.Debug("content API request", "resource", resource, "status", resp.StatusCode, "elapsed", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return errors.Wrap(err, "decode response")
	}

	return nil
}

// redactKey strips the query string from transport errors so the api key
// never reaches the logs.
func redactKey(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		urlErr.URL = u.String()
	}
	return urlErr
}
