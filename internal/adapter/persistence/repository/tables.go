package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type tableSpec struct {
	name   string
	pk     string
	ttlKey string
}

// EnsureTables creates any missing table with on-demand billing and enables TTL
// on the idempotency table. Existing tables are left alone.
func EnsureTables(ctx context.Context, ddb DynamoAPI, tables Tables) error {
	tables = tables.withDefaults()
	specs := []tableSpec{
		{name: tables.Bookings, pk: "id"},
		{name: tables.Transactions, pk: "id"},
		{name: tables.IdempotencyKeys, pk: "key", ttlKey: "ttl"},
		{name: tables.ActivityLogs, pk: "id"},
	}

	for _, s := range specs {
		created, err := ensureTable(ctx, ddb, s)
		if err != nil {
			return err
		}
		if created {
			log.Printf("[migrate][dynamodb] created table=%s", s.name)
		}
	}
	return nil
}

func ensureTable(ctx context.Context, ddb DynamoAPI, s tableSpec) (bool, error) {
	_, err := ddb.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.name)})
	if err == nil {
		return false, nil
	}
	var nf *types.ResourceNotFoundException
	if !errors.As(err, &nf) {
		return false, fmt.Errorf("describe table %s: %w", s.name, err)
	}

	_, err = ddb.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName:   aws.String(s.name),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(s.pk), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(s.pk), KeyType: types.KeyTypeHash},
		},
	})
	if err != nil {
		return false, fmt.Errorf("create table %s: %w", s.name, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(ddb, func(o *dynamodb.TableExistsWaiterOptions) {
		o.MinDelay = 100 * time.Millisecond
		o.MaxDelay = 2 * time.Second
	})
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.name)}, time.Minute); err != nil {
		return true, fmt.Errorf("wait for table %s: %w", s.name, err)
	}

	if s.ttlKey != "" {
		_, err = ddb.UpdateTimeToLive(ctx, &dynamodb.UpdateTimeToLiveInput{
			TableName: aws.String(s.name),
			TimeToLiveSpecification: &types.TimeToLiveSpecification{
				AttributeName: aws.String(s.ttlKey),
				Enabled:       aws.Bool(true),
			},
		})
		if err != nil {
			return true, fmt.Errorf("enable ttl on %s: %w", s.name, err)
		}
	}
	return true, nil
}

// NewRepositories wires the DynamoDB repositories against one client.
func NewRepositories(ddb DynamoAPI, tables Tables) (*BookingDynamoRepository, *TransactionDynamoRepository, *IdempotencyKeyDynamoRepository, *ActivityLogDynamoRepository) {
	tables = tables.withDefaults()
	return NewBookingDynamoRepository(ddb, tables.Bookings),
		NewTransactionDynamoRepository(ddb, tables.Transactions),
		NewIdempotencyKeyDynamoRepository(ddb, tables.IdempotencyKeys),
		NewActivityLogDynamoRepository(ddb, tables.ActivityLogs)
}
