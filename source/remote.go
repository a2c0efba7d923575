package source

import (
	"fmt"
	"io"
	"net/http"

	"github.com/nvkalinin/days-calendar/log"
	"github.com/nvkalinin/days-calendar/store"
)

// maxRemoteSize ограничивает размер ответа, чтобы не прочитать в память что-то огромное.
const maxRemoteSize = 5 * 1024 * 1024

// Remote загружает набор событий в формате days.json по HTTP.
type Remote struct {
	Client    *http.Client
	URL       string
	UserAgent string
}

func (r *Remote) GetEvents() (store.Events, error) {
	req, err := http.NewRequest(http.MethodGet, r.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("source/remote cannot make request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	log.Printf("[DEBUG] source/remote request: URL=%s", r.URL)

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("source/remote cannot GET %s: %w", r.URL, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] source/remote cannot close response: %+v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("source/remote unexpected status %d from %s", resp.StatusCode, r.URL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteSize))
	if err != nil {
		return nil, fmt.Errorf("source/remote cannot read response: %w", err)
	}
	log.Printf("[DEBUG] source/remote response len=%d", len(body))

	return decodeJSON(body)
}
