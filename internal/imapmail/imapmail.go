// Package imapmail talks IMAP over implicit TLS for the two things the
// bridge needs from a mailbox: appending a copy of a sent message to the
// Sent folder and listing folder names so the right one can be configured.
package imapmail

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// Options configures the IMAP connection.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string

	// Mailbox is the folder sent messages are appended to, e.g. "Sent" or
	// "INBOX.Sent" depending on the server.
	Mailbox string

	// TLSConfig is the client TLS configuration; ServerName must match Host.
	TLSConfig *tls.Config
}

// Archiver copies sent messages into the configured mailbox. It satisfies
// the SMTP provider's Archiver interface.
type Archiver struct {
	opts Options
}

// New creates an Archiver with the given options.
func New(opts Options) *Archiver {
	return &Archiver{opts: opts}
}

// AppendSent connects, authenticates, and appends the rendered message to
// the mailbox with the \Seen flag. Each call opens and closes its own
// connection; the caller treats failures as non-fatal.
func (a *Archiver) AppendSent(_ context.Context, rendered []byte) error {
	c, err := dial(a.opts)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Login(a.opts.Username, a.opts.Password).Wait(); err != nil {
		return fmt.Errorf("imap login failed: %w", err)
	}

	appendCmd := c.Append(a.opts.Mailbox, int64(len(rendered)), &imap.AppendOptions{
		Flags: []imap.Flag{imap.FlagSeen},
		Time:  time.Now().UTC(),
	})
	if _, err := appendCmd.Write(rendered); err != nil {
		return fmt.Errorf("imap append write failed: %w", err)
	}
	if err := appendCmd.Close(); err != nil {
		return fmt.Errorf("imap append close failed: %w", err)
	}
	if _, err := appendCmd.Wait(); err != nil {
		return fmt.Errorf("imap append to %q failed: %w", a.opts.Mailbox, err)
	}

	// Best-effort farewell; the append already succeeded.
	_ = c.Logout().Wait()

	return nil
}

// ListMailboxes connects with the given options and returns the names of
// all mailboxes in the account.
func ListMailboxes(_ context.Context, opts Options) ([]string, error) {
	c, err := dial(opts)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	if err := c.Login(opts.Username, opts.Password).Wait(); err != nil {
		return nil, fmt.Errorf("imap login failed: %w", err)
	}

	boxes, err := c.List("", "*", nil).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap list failed: %w", err)
	}

	names := make([]string, 0, len(boxes))
	for _, box := range boxes {
		names = append(names, box.Mailbox)
	}

	_ = c.Logout().Wait()

	return names, nil
}

// Addr returns the host:port the options point at.
func (o Options) Addr() string {
	return net.JoinHostPort(o.Host, strconv.Itoa(o.Port))
}

func dial(opts Options) (*imapclient.Client, error) {
	c, err := imapclient.DialTLS(opts.Addr(), &imapclient.Options{
		TLSConfig: opts.TLSConfig,
	})
	if err != nil {
		return nil, fmt.Errorf("imap dial %s failed: %w", opts.Addr(), err)
	}
	return c, nil
}
