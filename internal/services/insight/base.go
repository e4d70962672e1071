package insight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	xhttp "MacroPulse/pkg/http"
)

// httpBase posts JSON to a base URL and retries transient failures.
type httpBase struct {
	baseURL string
	client  *xhttp.Client
	backoff time.Duration
}

func newHTTPBase(baseURL string, timeout time.Duration, opts ...xhttp.ClientOption) *httpBase {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &httpBase{
		baseURL: baseURL,
		client:  xhttp.NewClient(opts...),
		backoff: 200 * time.Millisecond,
	}
}

// PostJSON posts the given payload to `path` under baseURL and decodes JSON into dest.
func (b *httpBase) PostJSON(ctx context.Context, path string, payload interface{}, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("insight http client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    b.baseURL + path,
		Body:   payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

// PostJSONWithRetry makes up to 1+retries attempts. Client errors other than 429 are final.
func (b *httpBase) PostJSONWithRetry(ctx context.Context, path string, payload interface{}, dest interface{}, retries int) error {
	var err error
	for i := 0; i <= retries; i++ {
		if i > 0 {
			select {
			case <-time.After(time.Duration(i) * b.backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		err = b.PostJSON(ctx, path, payload, dest)
		if err == nil || !transient(err) {
			return err
		}
	}
	return err
}

func transient(err error) bool {
	var se *xhttp.StatusError
	if errors.As(err, &se) {
		return se.Code == http.StatusTooManyRequests || se.Code >= 500
	}
	return !errors.Is(err, context.Canceled)
}
