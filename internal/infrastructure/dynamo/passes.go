package dynamo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// PassRepo provides typed DynamoDB operations for the weekend_passes table.
// PK: pass_id. Passes are never deleted; decisions only update status fields.
type PassRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewPassRepo(client *dynamodb.Client, tableName string) *PassRepo {
	return &PassRepo{client: client, tableName: tableName}
}

func (r *PassRepo) Put(ctx context.Context, pass *domain.WeekendPassRequest) error {
	item, err := attributevalue.MarshalMap(pass)
	if err != nil {
		return fmt.Errorf("marshal weekend pass: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *PassRepo) Get(ctx context.Context, passID string) (*domain.WeekendPassRequest, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("pass_id", passID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("weekend pass not found: %w", domain.ErrNotFound)
	}
	var pass domain.WeekendPassRequest
	if err := attributevalue.UnmarshalMap(out.Item, &pass); err != nil {
		return nil, err
	}
	return &pass, nil
}

func (r *PassRepo) List(ctx context.Context) ([]domain.WeekendPassRequest, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	if err != nil {
		return nil, err
	}
	var passes []domain.WeekendPassRequest
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &passes); err != nil {
		return nil, err
	}
	sort.Slice(passes, func(i, j int) bool {
		return passes[i].SubmittedAt.After(passes[j].SubmittedAt)
	})
	return passes, nil
}

func (r *PassRepo) Decide(ctx context.Context, passID string, status domain.PassStatus, decidedBy string, decidedAt time.Time) error {
	expr, names, values, err := buildUpdateExpr(map[string]interface{}{
		"status":     string(status),
		"decided_by": decidedBy,
		"decided_at": decidedAt,
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("pass_id", passID),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	return err
}
