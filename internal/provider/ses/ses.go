// Package ses implements a Provider that sends mail via the AWS SES v2 API.
package ses

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sesv2 "github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/sewoong/mailbridge/internal/email"
	"github.com/sewoong/mailbridge/internal/mailer"
)

// Config holds the configuration for creating a Provider.
type Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string

	// Sender is the verified SES identity used as the From address. When
	// empty the message's own From is used.
	Sender string
}

// SendEmailAPI is the interface for the SES v2 SendEmail operation.
// Used for testing with mock implementations.
type SendEmailAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Provider sends mail via the AWS SES v2 API.
type Provider struct {
	sender string
	client SendEmailAPI
}

// New creates a Provider with the given configuration. Static credentials
// are used when provided; otherwise the default AWS credential chain.
func New(ctx context.Context, cfg Config) (*Provider, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Provider{
		sender: cfg.Sender,
		client: sesv2.NewFromConfig(awsCfg),
	}, nil
}

// NewWithClient creates a Provider with a custom client, used for testing.
func NewWithClient(sender string, client SendEmailAPI) *Provider {
	return &Provider{sender: sender, client: client}
}

// Send validates the message and submits it as an SES simple email. API
// failures surface as TransmissionError; SES performs no retries here.
func (p *Provider) Send(ctx context.Context, msg *email.Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	from := p.sender
	if from == "" {
		from = msg.From
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination: &types.Destination{
			ToAddresses: msg.To,
			CcAddresses: msg.Cc,
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Text: &types.Content{
						Data:    aws.String(msg.Body),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	if _, err := p.client.SendEmail(ctx, input); err != nil {
		return &mailer.TransmissionError{Err: fmt.Errorf("SES API request failed: %w", err)}
	}

	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "ses"
}
