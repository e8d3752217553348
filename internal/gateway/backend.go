package gateway

import (
	"context"
	"fmt"

	"github.com/sewoong/mailbridge/internal/config"
	"github.com/sewoong/mailbridge/internal/imapmail"
	"github.com/sewoong/mailbridge/internal/provider"
	"github.com/sewoong/mailbridge/internal/provider/dryrun"
	"github.com/sewoong/mailbridge/internal/provider/ses"
	smtpprov "github.com/sewoong/mailbridge/internal/provider/smtp"
	"github.com/sewoong/mailbridge/internal/tlsconf"
)

// buildProvider chooses the delivery backend based on configuration.
// Direct SMTP is the default; "ses" and "dryrun" are opt-in.
func buildProvider(ctx context.Context, cfg *config.Config) (provider.Provider, error) {
	switch cfg.Provider {
	case "", "smtp":
		return buildSMTP(cfg)

	case "ses":
		if !cfg.SESConfigured() {
			return nil, fmt.Errorf("ses provider requires ses_region and ses_sender")
		}
		return ses.New(ctx, ses.Config{
			Region:          cfg.SES.Region,
			AccessKeyID:     cfg.SES.AccessKeyID,
			SecretAccessKey: cfg.SES.SecretAccessKey,
			Sender:          cfg.SES.Sender,
		})

	case "dryrun":
		return dryrun.New(), nil

	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func buildSMTP(cfg *config.Config) (provider.Provider, error) {
	tlsCfg, err := tlsconf.Client(cfg.SMTP.Host, cfg.TLS.CAFile, cfg.TLS.InsecureSkipVerify)
	if err != nil {
		return nil, err
	}

	opts := smtpprov.Options{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		UseStartTLS: cfg.SMTP.UseStartTLS,
		TLSConfig:   tlsCfg,
		Timeout:     cfg.SMTP.Timeout(),
	}

	if cfg.IMAP.SaveToSent {
		imapTLS, err := tlsconf.Client(cfg.IMAPHost(), cfg.TLS.CAFile, cfg.TLS.InsecureSkipVerify)
		if err != nil {
			return nil, err
		}
		opts.Archiver = imapmail.New(imapmail.Options{
			Host:      cfg.IMAPHost(),
			Port:      cfg.IMAP.Port,
			Username:  cfg.SMTP.Username,
			Password:  cfg.SMTP.Password,
			Mailbox:   cfg.IMAP.SentFolder,
			TLSConfig: imapTLS,
		})
	}

	return smtpprov.New(opts), nil
}
