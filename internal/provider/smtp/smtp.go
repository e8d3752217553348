// Package smtp implements the default Provider: direct SMTP submission with
// implicit TLS or STARTTLS, authenticating only over an encrypted channel.
package smtp

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/sewoong/mailbridge/internal/email"
	"github.com/sewoong/mailbridge/internal/mailer"
)

// DefaultTimeout bounds dialing and every protocol exchange when no timeout
// is configured. Matches the 30 second ceiling common mail servers expect.
const DefaultTimeout = 30 * time.Second

// Archiver stores a copy of a successfully submitted message, typically in
// the account's Sent mailbox. Archiving is best effort: failures are logged
// and never fail the send.
type Archiver interface {
	AppendSent(ctx context.Context, rendered []byte) error
}

// Options configures the SMTP provider.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string

	// UseStartTLS selects a plaintext dial upgraded via STARTTLS before
	// authentication. When false the connection is TLS from the first byte.
	UseStartTLS bool

	// TLSConfig is the client TLS configuration; its ServerName must match
	// Host. When nil a minimal config for Host is used.
	TLSConfig *tls.Config

	// Timeout bounds the dial and the connection deadline. Zero means
	// DefaultTimeout.
	Timeout time.Duration

	// Archiver, when set, receives the rendered message after the server
	// accepts it.
	Archiver Archiver
}

// Provider submits mail directly over SMTP.
type Provider struct {
	opts Options
}

// New creates an SMTP Provider with the given options.
func New(opts Options) *Provider {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.TLSConfig == nil {
		opts.TLSConfig = &tls.Config{ServerName: opts.Host, MinVersion: tls.VersionTLS12}
	}
	return &Provider{opts: opts}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "smtp"
}

// Send validates the message, opens the connection in the configured mode,
// authenticates, and transmits to the envelope recipients (To plus Cc).
// The connection is closed on every exit path.
func (p *Provider) Send(ctx context.Context, msg *email.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	rendered := msg.Render()

	client, err := p.connect(ctx)
	if err != nil {
		return err
	}
	// Close is a no-op after a clean Quit; it exists for the error paths.
	defer client.Close()

	auth := smtp.PlainAuth("", p.opts.Username, p.opts.Password, p.opts.Host)
	if err := client.Auth(auth); err != nil {
		return &mailer.AuthError{Err: err}
	}

	if err := client.Mail(msg.From); err != nil {
		return &mailer.TransmissionError{Err: err}
	}
	for _, rcpt := range msg.Recipients() {
		if err := client.Rcpt(rcpt); err != nil {
			return &mailer.TransmissionError{Err: fmt.Errorf("recipient %s: %w", rcpt, err)}
		}
	}

	w, err := client.Data()
	if err != nil {
		return &mailer.TransmissionError{Err: err}
	}
	if _, err := w.Write(rendered); err != nil {
		return &mailer.TransmissionError{Err: err}
	}
	if err := w.Close(); err != nil {
		return &mailer.TransmissionError{Err: err}
	}

	if err := client.Quit(); err != nil {
		// The server accepted the message at end-of-data; a failed QUIT
		// does not change the outcome.
		slog.Warn("smtp quit failed", "host", p.opts.Host, "error", err)
	}

	slog.Info("email submitted",
		"host", p.opts.Host,
		"recipients", len(msg.Recipients()),
		"starttls", p.opts.UseStartTLS,
	)

	if p.opts.Archiver != nil {
		if err := p.opts.Archiver.AppendSent(ctx, rendered); err != nil {
			slog.Warn("failed to save message to sent folder", "error", err)
		}
	}

	return nil
}

// connect dials the server and returns an authenticated-ready client over
// an encrypted channel. For implicit TLS the socket is wrapped before the
// greeting; for STARTTLS the channel is upgraded before any credential is
// sent, and a server that does not offer STARTTLS is a connection failure.
func (p *Provider) connect(ctx context.Context) (*smtp.Client, error) {
	addr := net.JoinHostPort(p.opts.Host, strconv.Itoa(p.opts.Port))

	dialer := &net.Dialer{Timeout: p.opts.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, p.connErr(err)
	}

	// One deadline covers the whole SMTP dialogue. An unbounded hang on a
	// dead server is a defect.
	if err := conn.SetDeadline(time.Now().Add(p.opts.Timeout)); err != nil {
		conn.Close()
		return nil, p.connErr(err)
	}

	if !p.opts.UseStartTLS {
		conn = tls.Client(conn, p.opts.TLSConfig)
	}

	client, err := smtp.NewClient(conn, p.opts.Host)
	if err != nil {
		conn.Close()
		return nil, p.connErr(err)
	}

	if p.opts.UseStartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			client.Close()
			return nil, p.connErr(fmt.Errorf("server does not support STARTTLS"))
		}
		if err := client.StartTLS(p.opts.TLSConfig); err != nil {
			client.Close()
			return nil, p.connErr(err)
		}
	}

	return client, nil
}

func (p *Provider) connErr(err error) error {
	return &mailer.ConnectionError{Host: p.opts.Host, Port: p.opts.Port, Err: err}
}
