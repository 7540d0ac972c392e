package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/google/uuid"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

type activityLogItem struct {
	ID        string         `dynamodbav:"id"`
	BookingID string         `dynamodbav:"booking_id"`
	ActorID   string         `dynamodbav:"actor_id"`
	Action    string         `dynamodbav:"action"`
	Details   map[string]any `dynamodbav:"details,omitempty"`
	CreatedAt string         `dynamodbav:"created_at"`
}

// ActivityLogDynamoRepository appends audit entries.
//
// Table requirements:
//   - PK: id (string)
type ActivityLogDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IActivityLogRepository = (*ActivityLogDynamoRepository)(nil)

func NewActivityLogDynamoRepository(ddb DynamoAPI, tableName string) *ActivityLogDynamoRepository {
	return &ActivityLogDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *ActivityLogDynamoRepository) Append(ctx context.Context, entry entities.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	av, err := attributevalue.MarshalMap(activityLogItem{
		ID:        entry.ID,
		BookingID: entry.BookingID,
		ActorID:   entry.ActorID,
		Action:    entry.Action,
		Details:   entry.Details,
		CreatedAt: formatTime(entry.CreatedAt),
	})
	if err != nil {
		return err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                aws.String(r.tableName),
		Item:                     av,
		ConditionExpression:      aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	})
	if err != nil {
		return fmt.Errorf("append activity log: %w", err)
	}
	return nil
}
