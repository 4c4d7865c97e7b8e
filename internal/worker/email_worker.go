package worker

// email_worker.go
// Processes report delivery jobs from QueueReportes: the exported file is
// attached and sent via SMTP, then removed from the export directory.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
)

// ReporteEmailPayload is the job payload sent to QueueReportes.
type ReporteEmailPayload struct {
	ToEmail  string `json:"to_email"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	FilePath string `json:"file_path"`
	FileName string `json:"file_name"`
}

// ReportSender delivers one e-mail with an attachment. Satisfied by *infra.Mailer.
type ReportSender interface {
	SendReporte(to, subject, body, attachmentPath, fileName string) error
}

type EmailWorker struct {
	sender ReportSender
}

func NewEmailWorker(sender ReportSender) *EmailWorker {
	return &EmailWorker{sender: sender}
}

// Process sends the report. The file is kept on failure so a retry or a
// manual DLQ replay can still attach it.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload ReporteEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if payload.ToEmail == "" || payload.FilePath == "" {
		return fmt.Errorf("%w: destinatario o archivo vacío", ErrInvalidPayload)
	}
	if _, err := os.Stat(payload.FilePath); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if err := w.sender.SendReporte(payload.ToEmail, payload.Subject, payload.Body, payload.FilePath, payload.FileName); err != nil {
		return fmt.Errorf("email_worker: send: %w", err)
	}
	if err := os.Remove(payload.FilePath); err != nil {
		log.Warn().Err(err).Str("file", payload.FilePath).Msg("email_worker: could not remove exported file")
	}
	log.Info().Str("to", payload.ToEmail).Str("file", payload.FileName).Msg("email_worker: report sent")
	return nil
}
