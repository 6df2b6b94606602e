package dynamo

import (
	"context"
	"fmt"
	"sort"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// HandbookRepo provides typed DynamoDB operations for the handbook_acks table.
// PK: ack_id.
type HandbookRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewHandbookRepo(client *dynamodb.Client, tableName string) *HandbookRepo {
	return &HandbookRepo{client: client, tableName: tableName}
}

func (r *HandbookRepo) Put(ctx context.Context, ack *domain.HandbookAcknowledgment) error {
	item, err := attributevalue.MarshalMap(ack)
	if err != nil {
		return fmt.Errorf("marshal handbook acknowledgment: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *HandbookRepo) List(ctx context.Context) ([]domain.HandbookAcknowledgment, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var acks []domain.HandbookAcknowledgment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &acks); err != nil {
		return nil, err
	}
	sort.Slice(acks, func(i, j int) bool {
		return acks[i].SignedAt.After(acks[j].SignedAt)
	})
	return acks, nil
}
