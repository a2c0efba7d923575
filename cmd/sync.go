package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/nvkalinin/days-calendar/log"
)

type Sync struct {
	ServerUrl   string        `long:"server-url" short:"s" env:"SERVER_URL" value-name:"str" default:"http://localhost" description:"URL сервера с REST API календаря."`
	AdminPasswd string        `long:"passwd" short:"p" env:"WEB_ADMIN_PASSWD" value-name:"str" description:"Пароль пользователя admin."`
	Timeout     time.Duration `long:"timeout" short:"t" env:"TIMEOUT" value-name:"duration" default:"60s" description:"Макс. время выполнения запроса."`
}

type syncResult struct {
	Status string `json:"status"`
	Events int    `json:"events"`
}

func (s *Sync) Execute(args []string) error {
	res, err := s.call()
	if err != nil {
		log.Fatalf("[ERROR] sync: %v", err)
	}
	log.Printf("[INFO] sync %s, %d events stored", res.Status, res.Events)
	return nil
}

func (s *Sync) call() (*syncResult, error) {
	url := makeUrl(s.ServerUrl, "/api/admin/sync")
	req, err := http.NewRequest(http.MethodPost, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("cannot make request: %w", err)
	}
	req.SetBasicAuth("admin", s.AdminPasswd)
	log.Printf("[DEBUG] sync request: URL=%s", url)

	client := &http.Client{
		Timeout: s.Timeout,
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cannot make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] cannot close response: %v", err)
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("cannot read response: %w", err)
	}
	log.Printf("[DEBUG] sync response: status=%d, body=%s", resp.StatusCode, respBody)

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("status %d: %w", resp.StatusCode, readJsonError(respBody))
	}

	res := &syncResult{}
	if err := json.Unmarshal(respBody, res); err != nil {
		return nil, fmt.Errorf("cannot parse response: %w", err)
	}
	return res, nil
}
