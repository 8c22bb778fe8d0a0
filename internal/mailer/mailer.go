// Package mailer sends notification email over SMTP. Configuration comes
// from the environment at startup; an unconfigured mailer turns every send
// into a no-op error that callers treat as best-effort. Nothing here is
// ever on a request's critical path.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/mail"
	gosmtp "net/smtp"
	"strings"
	"time"

	"github.com/calebmorris/devfolio/internal/config"
)

// dialTimeout bounds the TCP connect to the SMTP server so a dead relay
// can't stall a login or contact submission for long.
const dialTimeout = 10 * time.Second

// Sender is the interface other packages use to send email. Satisfied by
// *Mailer; tests substitute a mock.
type Sender interface {
	Send(ctx context.Context, to []string, subject, body string) error
	Enabled() bool
}

// Mailer sends plain-text email using the configured SMTP relay.
type Mailer struct {
	cfg config.SMTPConfig
}

// New creates a mailer from the given SMTP settings.
func New(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled returns true if an SMTP host is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Enabled()
}

// Send delivers a plain-text message to the given recipients. The context
// is accepted for interface symmetry; delivery is bounded by dial and
// protocol timeouts rather than ctx.
func (m *Mailer) Send(ctx context.Context, to []string, subject, body string) error {
	if !m.cfg.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	from := mail.Address{Name: m.cfg.FromName, Address: m.cfg.FromAddress}

	// Build RFC 2822 message.
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", strings.Join(to, ", ")))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().UTC().Format(time.RFC1123Z)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	switch m.cfg.Encryption {
	case "ssl":
		return m.sendSSL(addr, from.Address, to, msg.String())
	case "none":
		return m.sendPlain(addr, from.Address, to, msg.String())
	default: // "starttls"
		return m.sendStartTLS(addr, from.Address, to, msg.String())
	}
}

// sendStartTLS sends email using STARTTLS (port 587 typical).
func (m *Mailer) sendStartTLS(addr, from string, to []string, msg string) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("starting TLS: %w", err)
	}

	if err := m.auth(client); err != nil {
		return err
	}

	return m.transmit(client, from, to, msg)
}

// sendSSL sends email using implicit SSL/TLS (port 465 typical).
func (m *Mailer) sendSSL(addr, from string, to []string, msg string) error {
	tlsConfig := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: dialTimeout}, "tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("connecting to %s (SSL): %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if err := m.auth(client); err != nil {
		return err
	}

	return m.transmit(client, from, to, msg)
}

// sendPlain sends email without any transport encryption. Only sensible
// for a relay on localhost.
func (m *Mailer) sendPlain(addr, from string, to []string, msg string) error {
	conn, err := net.DialTimeout("tcp", addr, dialTimeout)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	client, err := gosmtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("creating smtp client: %w", err)
	}
	defer client.Close()

	if err := m.auth(client); err != nil {
		return err
	}

	return m.transmit(client, from, to, msg)
}

// auth performs SMTP AUTH when a username is configured.
func (m *Mailer) auth(client *gosmtp.Client) error {
	if m.cfg.Username == "" {
		return nil
	}
	a := gosmtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	if err := client.Auth(a); err != nil {
		return fmt.Errorf("authenticating: %w", err)
	}
	return nil
}

// transmit runs the MAIL/RCPT/DATA exchange on an established client.
func (m *Mailer) transmit(client *gosmtp.Client, from string, to []string, msg string) error {
	if err := client.Mail(from); err != nil {
		return fmt.Errorf("setting sender: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("setting recipient %s: %w", rcpt, err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("opening data writer: %w", err)
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("writing message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing data writer: %w", err)
	}

	return client.Quit()
}
