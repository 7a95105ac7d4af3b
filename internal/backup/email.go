package backup

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"

	"github.com/MKhiriev/go-file-vault/internal/config"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// EmailSender mails the recovery token and the archive to the vault owner.
type EmailSender struct {
	cfg      config.SMTP
	sendMail sendMailFunc
}

func NewEmailSender(cfg config.SMTP) *EmailSender {
	return &EmailSender{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *EmailSender) Name() string {
	return "email"
}

func (s *EmailSender) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.From != ""
}

// Send is a no-op when SMTP is not configured.
func (s *EmailSender) Send(ctx context.Context, job Job) error {
	if !s.IsConfigured() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := s.buildMessage(job)
	if err != nil {
		return err
	}
	return s.deliver(job.Email, msg)
}

// SendTemporaryPassword mails the temporary password issued after a
// successful identity check.
func (s *EmailSender) SendTemporaryPassword(ctx context.Context, email, password string) error {
	if !s.IsConfigured() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body := fmt.Sprintf("Your vault was unlocked.\r\n\r\nTemporary password: %s\r\n\r\nLog in with it and keep your vault key at hand.\r\n", password)
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Vault unlocked\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, email, body)

	return s.deliver(email, []byte(msg))
}

func (s *EmailSender) deliver(to string, msg []byte) error {
	port := s.cfg.Port
	if port == "" {
		port = "587"
	}

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := s.sendMail(net.JoinHostPort(s.cfg.Host, port), auth, s.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: email: %w", ErrSenderFailed, err)
	}
	return nil
}

func (s *EmailSender) buildMessage(job Job) ([]byte, error) {
	if job.ArchivePath == "" {
		return nil, ErrNoArchive
	}
	archive, err := os.ReadFile(job.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("read backup archive: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", s.cfg.From)
	fmt.Fprintf(&buf, "To: %s\r\n", job.Email)
	fmt.Fprintf(&buf, "Subject: Vault destroyed - recovery token %s\r\n", job.RecoveryToken)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())

	text, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type": {`text/plain; charset="UTF-8"`},
	})
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(text, "Your vault was destroyed and its files were moved to deep storage.\r\n\r\n"+
		"Recovery token: %s\r\n\r\nThe attached archive holds the encrypted files.\r\n", job.RecoveryToken)

	name := filepath.Base(job.ArchivePath)
	attachment, err := mw.CreatePart(textproto.MIMEHeader{
		"Content-Type":              {fmt.Sprintf("application/zip; name=%q", name)},
		"Content-Transfer-Encoding": {"base64"},
		"Content-Disposition":       {fmt.Sprintf("attachment; filename=%q", name)},
	})
	if err != nil {
		return nil, err
	}
	if err = writeBase64Lines(attachment, archive); err != nil {
		return nil, err
	}

	if err = mw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeBase64Lines writes data as base64 wrapped at 76 characters.
func writeBase64Lines(w io.Writer, data []byte) error {
	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 0 {
		n := min(76, len(encoded))
		if _, err := w.Write([]byte(encoded[:n] + "\r\n")); err != nil {
			return err
		}
		encoded = encoded[n:]
	}
	return nil
}
