// Package provider defines the interface for email delivery backends.
package provider

import (
	"context"

	"github.com/sewoong/mailbridge/internal/email"
)

// Provider is the interface that email delivery backends must implement.
// Implementations validate the message before any network activity and
// surface failures using the mailer error taxonomy.
type Provider interface {
	// Send delivers an email message through this provider.
	Send(ctx context.Context, msg *email.Message) error

	// Name returns the human-readable name of this provider.
	Name() string
}
