// Package gateway exposes the send_email tool over the Model Context
// Protocol. It is a stateless request/response adapter: arguments in,
// provider call, structured result out.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sewoong/mailbridge/internal/config"
	"github.com/sewoong/mailbridge/internal/email"
	"github.com/sewoong/mailbridge/internal/logging"
	"github.com/sewoong/mailbridge/internal/mailer"
	"github.com/sewoong/mailbridge/internal/provider"
)

// Gateway wires the send_email tool to a delivery provider. Configuration
// is loaded lazily on the first call and cached for the process lifetime;
// sync.Once makes near-simultaneous first calls see the same values.
type Gateway struct {
	configPath string

	once    sync.Once
	cfg     *config.Config
	prov    provider.Provider
	initErr error
}

// New creates a Gateway that loads configuration from the given file path,
// or from environment variables only when the path is empty.
func New(configPath string) *Gateway {
	return &Gateway{configPath: configPath}
}

// NewWithProvider creates an already-initialized Gateway. Used by tests to
// inject a stub provider.
func NewWithProvider(cfg *config.Config, prov provider.Provider) *Gateway {
	g := &Gateway{cfg: cfg, prov: prov}
	g.once.Do(func() {})
	return g
}

// Register adds the send_email tool to the MCP server.
func (g *Gateway) Register(s *mcpserver.MCPServer) {
	s.AddTool(Tool(), g.HandleSendEmail)
}

// Tool declares the send_email tool and its input schema.
func Tool() mcp.Tool {
	return mcp.NewTool("send_email",
		mcp.WithDescription("Send an email via SMTP. Supports multiple recipients (comma-separated)."),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address(es), comma-separated for multiple recipients"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject line"),
		),
		mcp.WithString("body",
			mcp.Required(),
			mcp.Description("Plain text email body"),
		),
		mcp.WithString("cc",
			mcp.Description("CC recipient(s), comma-separated for multiple (optional)"),
		),
	)
}

// HandleSendEmail handles one tool invocation. Every failure is reported as
// a structured tool result; nothing escapes to terminate the serve loop.
func (g *Gateway) HandleSendEmail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	to, err := req.RequireString("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	subject, err := req.RequireString("subject")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	body, err := req.RequireString("body")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cc := req.GetString("cc", "")

	toList := email.ParseList(to)
	if len(toList) == 0 {
		return mcp.NewToolResultError("no valid recipients in 'to' field"), nil
	}
	if subject == "" {
		return mcp.NewToolResultError("subject cannot be empty"), nil
	}
	ccList := email.ParseList(cc)

	prov, cfg, err := g.init()
	if err != nil {
		return mcp.NewToolResultError("configuration error: " + err.Error()), nil
	}

	msg := &email.Message{
		From:    cfg.SMTP.Username,
		To:      toList,
		Cc:      ccList,
		Subject: subject,
		Body:    body,
	}

	if err := prov.Send(ctx, msg); err != nil {
		slog.Error("send_email failed", "provider", prov.Name(), "error", err)
		return mcp.NewToolResultError(failureText(err)), nil
	}

	text := fmt.Sprintf("Email sent successfully to %s", strings.Join(toList, ", "))
	if len(ccList) > 0 {
		text += fmt.Sprintf(" (CC: %s)", strings.Join(ccList, ", "))
	}
	return mcp.NewToolResultText(text), nil
}

// init loads and validates the configuration and builds the delivery
// provider, exactly once. The provider is a process-lifetime object, so it
// is built against the background context: tying it to the first request's
// context would let a cancelled request poison every later call.
func (g *Gateway) init() (provider.Provider, *config.Config, error) {
	g.once.Do(func() {
		cfg, err := loadConfig(g.configPath)
		if err != nil {
			g.initErr = err
			return
		}
		if err := cfg.Validate(); err != nil {
			g.initErr = err
			return
		}
		prov, err := buildProvider(context.Background(), cfg)
		if err != nil {
			g.initErr = err
			return
		}
		g.cfg = cfg
		g.prov = prov
		logging.SetLevel(cfg.Logging.Level)
		slog.Info("configuration loaded",
			"smtp_host", cfg.SMTP.Host,
			"smtp_port", cfg.SMTP.Port,
			"starttls", cfg.SMTP.UseStartTLS,
			"provider", prov.Name(),
			"save_to_sent", cfg.IMAP.SaveToSent,
		)
	})
	return g.prov, g.cfg, g.initErr
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}

// failureText converts an error into the descriptive plain text returned to
// the assistant, naming the failure category. Validation text is surfaced
// verbatim; none of the branches can carry the password.
func failureText(err error) string {
	var verr *mailer.ValidationError
	var cerr *mailer.ConnectionError
	var aerr *mailer.AuthError
	var terr *mailer.TransmissionError

	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &cerr):
		return "connection error: " + cerr.Error()
	case errors.As(err, &aerr):
		return "authentication error: " + aerr.Error()
	case errors.As(err, &terr):
		return "delivery error: " + terr.Error()
	default:
		return "unexpected error: " + err.Error()
	}
}
