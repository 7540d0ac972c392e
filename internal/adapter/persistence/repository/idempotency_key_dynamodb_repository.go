package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

type idempotencyKeyItem struct {
	Key            string `dynamodbav:"key"`
	BookingID      string `dynamodbav:"booking_id"`
	UserID         string `dynamodbav:"user_id"`
	Status         string `dynamodbav:"status"`
	RequestHash    string `dynamodbav:"request_hash"`
	ResponseData   string `dynamodbav:"response_data,omitempty"`
	LeaseID        string `dynamodbav:"lease_id,omitempty"`
	LeaseExpiresAt string `dynamodbav:"lease_expires_at,omitempty"`
	ExpiresAt      string `dynamodbav:"expires_at"`
	TTL            int64  `dynamodbav:"ttl"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
	CompletedAt    string `dynamodbav:"completed_at,omitempty"`
}

// IdempotencyKeyDynamoRepository keeps the idempotency table.
//
// Table requirements:
//   - PK: key (string)
//   - TTL attribute: ttl (epoch seconds of expires_at); the sweeper also deletes
//     expired rows since DynamoDB TTL deletion is lazy.
type IdempotencyKeyDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IIdempotencyKeyRepository = (*IdempotencyKeyDynamoRepository)(nil)

func NewIdempotencyKeyDynamoRepository(ddb DynamoAPI, tableName string) *IdempotencyKeyDynamoRepository {
	return &IdempotencyKeyDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *IdempotencyKeyDynamoRepository) Reserve(ctx context.Context, row entities.IdempotencyKey, now time.Time) (*entities.IdempotencyKey, error) {
	av, err := attributevalue.MarshalMap(toIdempotencyKeyItem(row))
	if err != nil {
		return nil, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#key) OR #status = :failed OR (#status = :pending AND #lease_expires_at <= :now)"),
		ExpressionAttributeNames: map[string]string{
			"#key":              "key",
			"#status":           "status",
			"#lease_expires_at": "lease_expires_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed":  &types.AttributeValueMemberS{Value: string(entities.IdempotencyStatusFailed)},
			":pending": &types.AttributeValueMemberS{Value: string(entities.IdempotencyStatusPending)},
			":now":     &types.AttributeValueMemberS{Value: formatTime(now)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return nil, nil
	}

	cfe, ok := conditionalCheckFailed(err)
	if !ok {
		return nil, fmt.Errorf("reserve idempotency key: %w", err)
	}
	if len(cfe.Item) > 0 {
		var it idempotencyKeyItem
		if err := attributevalue.UnmarshalMap(cfe.Item, &it); err != nil {
			return nil, err
		}
		blocking := fromIdempotencyKeyItem(it)
		return &blocking, nil
	}

	blocking, err := r.GetByKey(ctx, row.Key)
	if err != nil {
		return nil, err
	}
	if blocking.Key == "" {
		return nil, fmt.Errorf("reserve idempotency key: conditional check failed without a blocking row")
	}
	return &blocking, nil
}

func (r *IdempotencyKeyDynamoRepository) GetByKey(ctx context.Context, key string) (entities.IdempotencyKey, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.IdempotencyKey{}, fmt.Errorf("get idempotency key: %w", err)
	}
	if len(out.Item) == 0 {
		return entities.IdempotencyKey{}, nil
	}

	var it idempotencyKeyItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.IdempotencyKey{}, err
	}
	return fromIdempotencyKeyItem(it), nil
}

func (r *IdempotencyKeyDynamoRepository) Complete(ctx context.Context, key, leaseID string, response json.RawMessage, at time.Time) error {
	return r.settle(ctx, key, leaseID,
		"SET #status = :to, #response_data = :response_data, #completed_at = :at, #updated_at = :at REMOVE #lease_id, #lease_expires_at",
		map[string]string{"#response_data": "response_data", "#completed_at": "completed_at"},
		map[string]types.AttributeValue{
			":to":            &types.AttributeValueMemberS{Value: string(entities.IdempotencyStatusCompleted)},
			":response_data": &types.AttributeValueMemberS{Value: string(response)},
			":at":            &types.AttributeValueMemberS{Value: formatTime(at)},
		},
	)
}

func (r *IdempotencyKeyDynamoRepository) MarkFailed(ctx context.Context, key, leaseID string, at time.Time) error {
	return r.settle(ctx, key, leaseID,
		"SET #status = :to, #updated_at = :at REMOVE #lease_id, #lease_expires_at",
		nil,
		map[string]types.AttributeValue{
			":to": &types.AttributeValueMemberS{Value: string(entities.IdempotencyStatusFailed)},
			":at": &types.AttributeValueMemberS{Value: formatTime(at)},
		},
	)
}

// settle applies update only while the key is pending under leaseID.
func (r *IdempotencyKeyDynamoRepository) settle(ctx context.Context, key, leaseID, update string, names map[string]string, values map[string]types.AttributeValue) error {
	base := map[string]string{
		"#status":           "status",
		"#lease_id":         "lease_id",
		"#lease_expires_at": "lease_expires_at",
		"#updated_at":       "updated_at",
	}
	values[":pending"] = &types.AttributeValueMemberS{Value: string(entities.IdempotencyStatusPending)}
	values[":lease_id"] = &types.AttributeValueMemberS{Value: leaseID}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression:       aws.String("#status = :pending AND #lease_id = :lease_id"),
		UpdateExpression:          aws.String(update),
		ExpressionAttributeNames:  mergeNames(base, names),
		ExpressionAttributeValues: values,
	})
	if err != nil {
		if _, ok := conditionalCheckFailed(err); ok {
			return interfaces.ErrIdempotencyLeaseLost
		}
		return fmt.Errorf("settle idempotency key: %w", err)
	}
	return nil
}

// DeleteExpired scans for rows past expires_at and deletes each one conditionally,
// so a row re-reserved between scan and delete survives.
func (r *IdempotencyKeyDynamoRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	cutoff := &types.AttributeValueMemberS{Value: formatTime(now)}
	names := map[string]string{"#key": "key", "#expires_at": "expires_at"}

	deleted := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          aws.String("#expires_at <= :now"),
			ProjectionExpression:      aws.String("#key"),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: map[string]types.AttributeValue{":now": cutoff},
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return deleted, fmt.Errorf("scan expired idempotency keys: %w", err)
		}

		for _, item := range out.Items {
			keyAttr, ok := item["key"]
			if !ok {
				continue
			}
			_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
				TableName:                 aws.String(r.tableName),
				Key:                       map[string]types.AttributeValue{"key": keyAttr},
				ConditionExpression:       aws.String("#expires_at <= :now"),
				ExpressionAttributeNames:  map[string]string{"#expires_at": "expires_at"},
				ExpressionAttributeValues: map[string]types.AttributeValue{":now": cutoff},
			})
			if err != nil {
				if _, ok := conditionalCheckFailed(err); ok {
					continue
				}
				return deleted, fmt.Errorf("delete expired idempotency key: %w", err)
			}
			deleted++
		}

		if len(out.LastEvaluatedKey) == 0 {
			return deleted, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toIdempotencyKeyItem(k entities.IdempotencyKey) idempotencyKeyItem {
	var ttl int64
	if !k.ExpiresAt.IsZero() {
		ttl = k.ExpiresAt.Unix()
	}
	return idempotencyKeyItem{
		Key:            k.Key,
		BookingID:      k.BookingID,
		UserID:         k.UserID,
		Status:         string(k.Status),
		RequestHash:    k.RequestHash,
		ResponseData:   string(k.ResponseData),
		LeaseID:        k.LeaseID,
		LeaseExpiresAt: formatTime(k.LeaseExpiresAt),
		ExpiresAt:      formatTime(k.ExpiresAt),
		TTL:            ttl,
		CreatedAt:      formatTime(k.CreatedAt),
		UpdatedAt:      formatTime(k.UpdatedAt),
		CompletedAt:    formatTimePtr(k.CompletedAt),
	}
}

func fromIdempotencyKeyItem(it idempotencyKeyItem) entities.IdempotencyKey {
	var response json.RawMessage
	if it.ResponseData != "" {
		response = json.RawMessage(it.ResponseData)
	}
	return entities.IdempotencyKey{
		Key:            it.Key,
		BookingID:      it.BookingID,
		UserID:         it.UserID,
		Status:         entities.IdempotencyStatus(it.Status),
		RequestHash:    it.RequestHash,
		ResponseData:   response,
		LeaseID:        it.LeaseID,
		LeaseExpiresAt: parseTime(it.LeaseExpiresAt),
		ExpiresAt:      parseTime(it.ExpiresAt),
		CreatedAt:      parseTime(it.CreatedAt),
		UpdatedAt:      parseTime(it.UpdatedAt),
		CompletedAt:    parseTimePtr(it.CompletedAt),
	}
}
