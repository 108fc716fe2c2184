package jobs

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/yungbote/crm-backend/internal/platform/logger"
)

// Heartbeat appends a liveness line to a log file on every run, after
// probing the service's own health endpoint. A failed probe degrades the
// message; it never fails the job.
type Heartbeat struct {
	log      *logger.Logger
	endpoint string
	logFile  string
	client   *http.Client
}

func NewHeartbeat(log *logger.Logger, endpoint, logFile string) *Heartbeat {
	return &Heartbeat{
		log:      log.With("job", "Heartbeat"),
		endpoint: endpoint,
		logFile:  logFile,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (h *Heartbeat) Run(ctx context.Context) error {
	timestamp := time.Now().Format("02/01/2006-15:04:05")

	status := "API Unreachable"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.endpoint, nil)
	if err == nil {
		resp, err := h.client.Do(req)
		if err == nil {
			if resp.StatusCode == http.StatusOK {
				status = "API OK"
			} else {
				status = "API Error"
			}
			resp.Body.Close()
		}
	}

	line := fmt.Sprintf("%s CRM is alive (%s)\n", timestamp, status)
	if err := appendLine(h.logFile, line); err != nil {
		h.log.Warn("Heartbeat write failed", "file", h.logFile, "error", err)
		return err
	}
	return nil
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line)
	return err
}
