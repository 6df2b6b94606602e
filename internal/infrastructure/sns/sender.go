package sns

import (
	"context"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/config"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

// Sender delivers SMS messages via AWS SNS. Recipients are bare 10-digit US
// numbers; the E.164 prefix is added here.
type Sender struct {
	client *sns.Client
}

func NewSender(cfg *config.Config) (*Sender, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.SNSRegion),
	)
	if err != nil {
		return nil, err
	}
	return &Sender{client: sns.NewFromConfig(awsCfg)}, nil
}

func (s *Sender) SendSMS(ctx context.Context, to, message string) error {
	number := "+1" + to
	_, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &number,
		Message:     &message,
	})
	return err
}
