// Package aws builds the SES and SNS clients used for applicant notifications.
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Clients shares one loaded AWS config between the email and SMS clients.
type Clients struct {
	SES *ses.Client
	SNS *sns.Client
}

// NewClients loads the default credential chain for region.
func NewClients(ctx context.Context, region string) (*Clients, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &Clients{
		SES: ses.NewFromConfig(cfg),
		SNS: sns.NewFromConfig(cfg),
	}, nil
}
