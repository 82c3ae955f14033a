// Package mailer sends receipts to transaction partners over SMTP.
package mailer

import (
	"crypto/tls"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Login    string
	Password string
	From     string
	FromName string
}

type Client struct {
	cfg    Config
	dialer *gomail.Dialer
}

func New(cfg Config) *Client {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Login, cfg.Password)
	dialer.TLSConfig = &tls.Config{
		ServerName: cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	return &Client{cfg: cfg, dialer: dialer}
}

// Enabled reports whether SMTP is configured at all. Receipt email is an
// optional feature; the rest of the app works without it.
func (c *Client) Enabled() bool {
	return c.cfg.Host != "" && c.cfg.From != ""
}

// SendPDF mails one PDF attachment to a single recipient.
func (c *Client) SendPDF(to, subject, body, filename string, pdf []byte) error {
	msg := gomail.NewMessage(
		gomail.SetCharset("UTF-8"),
		gomail.SetEncoding(gomail.Base64),
	)

	msg.SetAddressHeader("From", c.cfg.From, c.cfg.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	msg.Attach(filename,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(pdf)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {"application/pdf"}}),
	)

	if err := c.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
