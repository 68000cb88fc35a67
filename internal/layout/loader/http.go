package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxLayoutBytes caps remote layout payloads.
const maxLayoutBytes = 1 << 20

func loadHTTP(ctx context.Context, client *http.Client, url string, timeout time.Duration) ([]byte, string, error) {
	if client == nil {
		return nil, "", errors.New("layout loader: http client is not configured")
	}
	if url == "" {
		return nil, "", errors.New("layout loader: url is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", errors.New("layout loader: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxLayoutBytes+1))
	if err != nil {
		return nil, "", err
	}
	if len(data) > maxLayoutBytes {
		return nil, "", fmt.Errorf("layout loader: %s exceeds %d bytes", url, maxLayoutBytes)
	}
	return data, resp.Header.Get("Content-Type"), nil
}
