package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

const binIDKey = "jsonBinId"

// JSONBin persists the document in a hosted JSON bin (jsonbin.io v3 API).
// The first successful Upsert creates a bin and remembers its id in the
// LocalStore; later calls address the bin directly. A PUT against a deleted
// bin discards the handle and reports ErrGone so the caller can retry the
// save, which will then recreate the bin.
type JSONBin struct {
	client  *http.Client
	baseURL string
	apiKey  string
	local   LocalStore

	mu    sync.Mutex
	binID string
}

func NewJSONBin(baseURL, apiKey string, local LocalStore) *JSONBin {
	b := &JSONBin{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
		local:   local,
	}
	if id, ok := local.Get(binIDKey); ok {
		b.binID = id
	}
	return b
}

func (b *JSONBin) handle() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.binID
}

func (b *JSONBin) setHandle(id string) {
	b.mu.Lock()
	b.binID = id
	b.mu.Unlock()
	b.local.Set(binIDKey, id)
}

func (b *JSONBin) FetchLatest(ctx context.Context) ([]byte, error) {
	id := b.handle()
	if id == "" {
		return nil, ErrNotFound
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/b/"+id+"/latest", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Master-Key", b.apiKey)
	req.Header.Set("X-Bin-Meta", "false")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return unwrapRecord(body), nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, fmt.Errorf("%w: fetch returned status %d", ErrUnavailable, resp.StatusCode)
	}
}

func (b *JSONBin) Upsert(ctx context.Context, doc []byte) error {
	id := b.handle()
	if id == "" {
		return b.create(ctx, doc)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.baseURL+"/b/"+id, bytes.NewReader(doc))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		// Bin was deleted remotely. Forget the handle so the retried
		// save creates a fresh bin.
		b.setHandle("")
		return ErrGone
	default:
		return fmt.Errorf("%w: update returned status %d", ErrUnavailable, resp.StatusCode)
	}
}

func (b *JSONBin) create(ctx context.Context, doc []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/b", bytes.NewReader(doc))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Master-Key", b.apiKey)
	req.Header.Set("X-Bin-Name", "Messenger App Data")
	req.Header.Set("X-Bin-Private", "false")

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: create returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var created struct {
		ID       string `json:"id"`
		Metadata struct {
			ID string `json:"id"`
		} `json:"metadata"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return fmt.Errorf("%w: decoding create response: %v", ErrUnavailable, err)
	}
	id := created.Metadata.ID
	if id == "" {
		id = created.ID
	}
	if id == "" {
		return fmt.Errorf("%w: create response had no bin id", ErrUnavailable)
	}

	b.setHandle(id)
	return nil
}

// unwrapRecord handles both response shapes the API produces: the record
// wrapped in an envelope, or the record itself when X-Bin-Meta is honored.
func unwrapRecord(body []byte) []byte {
	var envelope struct {
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Record) > 0 {
		return envelope.Record
	}
	return body
}
