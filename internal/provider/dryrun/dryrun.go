// Package dryrun implements a Provider that prints messages instead of
// delivering them. Output goes to stderr because stdout carries the MCP
// protocol stream.
package dryrun

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sewoong/mailbridge/internal/email"
)

// Provider prints email messages in a human-readable format. It is the
// development backend: nothing leaves the machine.
type Provider struct {
	writer io.Writer
}

// New creates a dryrun Provider writing to os.Stderr.
func New() *Provider {
	return &Provider{writer: os.Stderr}
}

// NewWithWriter creates a dryrun Provider writing to the given writer.
func NewWithWriter(w io.Writer) *Provider {
	return &Provider{writer: w}
}

// Send validates the message and prints it. It fails only on invalid input.
func (p *Provider) Send(_ context.Context, msg *email.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	var b strings.Builder

	b.WriteString("========================================\n")
	fmt.Fprintf(&b, "From: %s\n", msg.From)
	fmt.Fprintf(&b, "To: %s\n", strings.Join(msg.To, ", "))
	if len(msg.Cc) > 0 {
		fmt.Fprintf(&b, "Cc: %s\n", strings.Join(msg.Cc, ", "))
	}
	fmt.Fprintf(&b, "Subject: %s\n", msg.Subject)
	b.WriteString("Body:\n")
	b.WriteString(msg.Body + "\n")
	b.WriteString("========================================\n")

	fmt.Fprint(p.writer, b.String())
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "dryrun"
}
