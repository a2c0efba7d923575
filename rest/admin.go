package rest

import (
	"compress/gzip"
	"fmt"
	"net/http"

	"github.com/nvkalinin/days-calendar/log"
)

func (s *Server) syncCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Updater == nil {
		sendErrorJson(w, 501, "sync is not configured")
		return
	}

	if err := s.Updater.UpdateDataset(); err != nil {
		log.Printf("[ERROR] rest/admin sync failed: %+v", err)
		sendErrorJson(w, 500, err.Error())
		return
	}

	events, _ := s.Store.FindEvents()
	sendJsonResponse(w, map[string]interface{}{
		"status": "ok",
		"events": len(events),
	})
}

func (s *Server) backupCtrl(w http.ResponseWriter, r *http.Request) {
	if s.Backuper == nil {
		sendErrorJson(w, 501, "backup is not supported by store engine")
		return
	}

	fname := fmt.Sprintf("days_%s.bolt.gz", s.now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/gzip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fname))

	// Заголовки уже отправлены, поэтому об ошибке можно только написать в лог.
	gz := gzip.NewWriter(w)
	if err := s.Backuper.Backup(gz); err != nil {
		log.Printf("[ERROR] rest/admin backup failed: %+v", err)
	}
	if err := gz.Close(); err != nil {
		log.Printf("[WARN] rest/admin cannot finish gzip stream: %+v", err)
	}
}
