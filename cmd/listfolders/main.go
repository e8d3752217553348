// Package main lists the IMAP mailboxes of the configured account so the
// right Sent folder name can be set in the configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sewoong/mailbridge/internal/config"
	"github.com/sewoong/mailbridge/internal/imapmail"
	"github.com/sewoong/mailbridge/internal/tlsconf"
)

func main() {
	configPath := flag.String("config", "", "path to JSON or YAML configuration file (optional; environment variables take precedence)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	tlsCfg, err := tlsconf.Client(cfg.IMAPHost(), cfg.TLS.CAFile, cfg.TLS.InsecureSkipVerify)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build TLS configuration: %v\n", err)
		os.Exit(1)
	}

	opts := imapmail.Options{
		Host:      cfg.IMAPHost(),
		Port:      cfg.IMAP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		TLSConfig: tlsCfg,
	}

	fmt.Fprintf(os.Stderr, "connecting to %s...\n", opts.Addr())

	names, err := imapmail.ListMailboxes(context.Background(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to list mailboxes: %v\n", err)
		os.Exit(1)
	}

	for _, name := range names {
		fmt.Println(name)
	}

	fmt.Fprintln(os.Stderr, "\nset sent_folder to the folder that holds sent mail (e.g. Sent, INBOX.Sent, Sent Items)")
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
