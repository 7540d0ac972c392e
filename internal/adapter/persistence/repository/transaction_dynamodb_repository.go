package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"

	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/domain/entities"
	"github.com/limitlessinfotechsolution/WAKILNI-sub000/internal/usecase/interfaces"
)

type transactionItem struct {
	ID                string         `dynamodbav:"id"`
	IdempotencyKey    string         `dynamodbav:"idempotency_key"`
	BookingID         string         `dynamodbav:"booking_id"`
	UserID            string         `dynamodbav:"user_id"`
	Amount            string         `dynamodbav:"amount"`
	Currency          string         `dynamodbav:"currency"`
	PaymentMethod     string         `dynamodbav:"payment_method"`
	PaymentStatus     string         `dynamodbav:"payment_status"`
	LeaseID           string         `dynamodbav:"lease_id,omitempty"`
	PaymentReference  string         `dynamodbav:"payment_reference,omitempty"`
	ProviderPaymentID string         `dynamodbav:"provider_payment_id,omitempty"`
	Metadata          map[string]any `dynamodbav:"metadata,omitempty"`
	CreatedAt         string         `dynamodbav:"created_at"`
	UpdatedAt         string         `dynamodbav:"updated_at"`
	ProcessedAt       string         `dynamodbav:"processed_at,omitempty"`
}

// TransactionDynamoRepository stores the payment ledger.
//
// Table requirements:
//   - PK: id (string)
type TransactionDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb DynamoAPI, tableName string) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, t entities.Transaction, staleBefore time.Time) (*entities.Transaction, error) {
	av, err := attributevalue.MarshalMap(toTransactionItem(t))
	if err != nil {
		return nil, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id) OR #payment_status = :failed OR (#payment_status = :processing AND #updated_at < :stale_before)"),
		ExpressionAttributeNames: map[string]string{
			"#id":             "id",
			"#payment_status": "payment_status",
			"#updated_at":     "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":failed":       &types.AttributeValueMemberS{Value: string(entities.TransactionStatusFailed)},
			":processing":   &types.AttributeValueMemberS{Value: string(entities.TransactionStatusProcessing)},
			":stale_before": &types.AttributeValueMemberS{Value: formatTime(staleBefore)},
		},
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err == nil {
		return nil, nil
	}

	cfe, ok := conditionalCheckFailed(err)
	if !ok {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	if len(cfe.Item) > 0 {
		var it transactionItem
		if err := attributevalue.UnmarshalMap(cfe.Item, &it); err != nil {
			return nil, err
		}
		existing := fromTransactionItem(it)
		return &existing, nil
	}

	existing, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if existing.ID == "" {
		return nil, fmt.Errorf("create transaction %s: conditional check failed without a blocking row", t.ID)
	}
	return &existing, nil
}

func (r *TransactionDynamoRepository) GetByID(ctx context.Context, id string) (entities.Transaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	if len(out.Item) == 0 {
		return entities.Transaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

func (r *TransactionDynamoRepository) UpdateStatus(ctx context.Context, id string, upd entities.TransactionUpdate) (entities.Transaction, error) {
	sets := []string{"#payment_status = :payment_status", "#updated_at = :updated_at"}
	names := map[string]string{
		"#id":             "id",
		"#lease_id":       "lease_id",
		"#payment_status": "payment_status",
		"#updated_at":     "updated_at",
	}
	values := map[string]types.AttributeValue{
		":lease_id":       &types.AttributeValueMemberS{Value: upd.LeaseID},
		":payment_status": &types.AttributeValueMemberS{Value: string(upd.PaymentStatus)},
		":updated_at":     &types.AttributeValueMemberS{Value: formatTime(upd.UpdatedAt)},
	}

	if upd.PaymentReference != "" {
		sets = append(sets, "#payment_reference = :payment_reference")
		names["#payment_reference"] = "payment_reference"
		values[":payment_reference"] = &types.AttributeValueMemberS{Value: upd.PaymentReference}
	}
	if upd.ProviderPaymentID != "" {
		sets = append(sets, "#provider_payment_id = :provider_payment_id")
		names["#provider_payment_id"] = "provider_payment_id"
		values[":provider_payment_id"] = &types.AttributeValueMemberS{Value: upd.ProviderPaymentID}
	}
	if upd.ProcessedAt != nil {
		sets = append(sets, "#processed_at = :processed_at")
		names["#processed_at"] = "processed_at"
		values[":processed_at"] = &types.AttributeValueMemberS{Value: formatTime(*upd.ProcessedAt)}
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id) AND #lease_id = :lease_id"),
		UpdateExpression:          aws.String("SET " + strings.Join(sets, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if _, ok := conditionalCheckFailed(err); ok {
			return entities.Transaction{}, interfaces.ErrTransactionLeaseLost
		}
		return entities.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Transaction{}, err
	}
	return fromTransactionItem(it), nil
}

func toTransactionItem(t entities.Transaction) transactionItem {
	return transactionItem{
		ID:                t.ID,
		IdempotencyKey:    t.IdempotencyKey,
		BookingID:         t.BookingID,
		UserID:            t.UserID,
		Amount:            t.Amount.String(),
		Currency:          t.Currency,
		PaymentMethod:     t.PaymentMethod,
		PaymentStatus:     string(t.PaymentStatus),
		LeaseID:           t.LeaseID,
		PaymentReference:  t.PaymentReference,
		ProviderPaymentID: t.ProviderPaymentID,
		Metadata:          t.Metadata,
		CreatedAt:         formatTime(t.CreatedAt),
		UpdatedAt:         formatTime(t.UpdatedAt),
		ProcessedAt:       formatTimePtr(t.ProcessedAt),
	}
}

func fromTransactionItem(it transactionItem) entities.Transaction {
	amount, _ := decimal.NewFromString(it.Amount)
	return entities.Transaction{
		ID:                it.ID,
		IdempotencyKey:    it.IdempotencyKey,
		BookingID:         it.BookingID,
		UserID:            it.UserID,
		Amount:            amount,
		Currency:          it.Currency,
		PaymentMethod:     it.PaymentMethod,
		PaymentStatus:     entities.TransactionStatus(it.PaymentStatus),
		LeaseID:           it.LeaseID,
		PaymentReference:  it.PaymentReference,
		ProviderPaymentID: it.ProviderPaymentID,
		Metadata:          it.Metadata,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
		ProcessedAt:       parseTimePtr(it.ProcessedAt),
	}
}
