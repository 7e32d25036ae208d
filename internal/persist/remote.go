package persist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteBackend talks to an irongantt snapshot server
type RemoteBackend struct {
	serverURL  string
	token      string
	passphrase string
	httpClient *http.Client
}

// NewRemoteBackend creates a client. A non-empty passphrase encrypts
// payloads before they leave the machine.
func NewRemoteBackend(serverURL, token, passphrase string) *RemoteBackend {
	return &RemoteBackend{
		serverURL:  strings.TrimRight(serverURL, "/"),
		token:      token,
		passphrase: passphrase,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (b *RemoteBackend) snapshotURL(key string) string {
	return b.serverURL + "/api/v1/snapshots/" + url.PathEscape(key)
}

func (b *RemoteBackend) do(req *http.Request) (*http.Response, error) {
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return resp, nil
}

// Get downloads the latest snapshot stored under key
func (b *RemoteBackend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.snapshotURL(key), nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotExist
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get %s failed: %s: %s", key, resp.Status, strings.TrimSpace(string(body)))
	}

	if IsSealed(body) {
		if b.passphrase == "" {
			return nil, errors.New("snapshot is encrypted, set remote_passphrase")
		}
		return Unseal(b.passphrase, body)
	}
	return body, nil
}

// Put uploads a new snapshot revision
func (b *RemoteBackend) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if b.passphrase != "" {
		sealed, err := Seal(b.passphrase, data)
		if err != nil {
			return fmt.Errorf("failed to encrypt snapshot: %w", err)
		}
		data = sealed
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.snapshotURL(key), bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := b.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("put %s failed: %s: %s", key, resp.Status, strings.TrimSpace(string(body)))
	}
	return nil
}

// Close releases idle connections
func (b *RemoteBackend) Close() error {
	b.httpClient.CloseIdleConnections()
	return nil
}
