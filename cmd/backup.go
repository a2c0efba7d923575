package cmd

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"time"

	"github.com/nvkalinin/days-calendar/log"
)

type Backup struct {
	ServerUrl   string        `long:"server-url" short:"s" env:"SERVER_URL" default:"http://localhost" description:"URL сервера с REST API календаря."`
	AdminPasswd string        `long:"passwd" short:"p" env:"WEB_ADMIN_PASSWD" description:"Пароль пользователя admin."`
	OutFile     string        `long:"out" short:"o" env:"OUT" description:"Путь к файлу, куда сохранить бекап. По умолчанию имя из ответа сервера или days_YYYY-MM-DD.bolt.gz"`
	Timeout     time.Duration `long:"timeout" short:"t" env:"TIMEOUT" default:"600s" description:"Макс. время выполнения запроса."`
}

func (b *Backup) Execute(args []string) error {
	fname, err := b.download()
	if err != nil {
		log.Fatalf("[ERROR] backup: %v", err)
	}
	log.Printf("[INFO] backup saved to %s", fname)
	return nil
}

func (b *Backup) download() (string, error) {
	req, err := http.NewRequest(http.MethodGet, makeUrl(b.ServerUrl, "/api/admin/backup"), http.NoBody)
	if err != nil {
		return "", fmt.Errorf("cannot create request: %w", err)
	}
	req.SetBasicAuth("admin", b.AdminPasswd)

	client := &http.Client{Timeout: b.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cannot make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("[WARN] cannot close resp body: %v", err)
		}
	}()

	if resp.StatusCode != 200 {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("cannot read err response (status %d): %w", resp.StatusCode, err)
		}
		return "", fmt.Errorf("status %d: %w", resp.StatusCode, readJsonError(respBody))
	}

	fname := b.filename(resp)
	f, err := os.Create(fname)
	if err != nil {
		return "", fmt.Errorf("cannot open %s: %w", fname, err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("cannot save backup to %s: %w", fname, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("cannot close %s: %w", fname, err)
	}
	return fname, nil
}

// filename: --out, затем filename из Content-Disposition, затем имя по текущей дате.
func (b *Backup) filename(resp *http.Response) string {
	if b.OutFile != "" {
		return b.OutFile
	}

	defName := fmt.Sprintf("days_%s.bolt.gz", time.Now().Format("2006-01-02"))

	cd := resp.Header.Get("Content-Disposition")
	if cd == "" {
		return defName
	}

	_, params, err := mime.ParseMediaType(cd)
	if err != nil || params["filename"] == "" {
		return defName
	}
	return params["filename"]
}
