package repository

import (
	"context"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const defaultTransactionsTableName = "transactions"

type transactionItem struct {
	TenantID      string  `dynamodbav:"tenant_id"`
	ID            string  `dynamodbav:"id"`
	Type          string  `dynamodbav:"type"`
	Description   string  `dynamodbav:"description"`
	Amount        float64 `dynamodbav:"amount"`
	PaymentMethod string  `dynamodbav:"payment_method,omitempty"`
	RelatedID     string  `dynamodbav:"related_id,omitempty"`
	Date          string  `dynamodbav:"date"`
	SchemaVersion int     `dynamodbav:"schema_version"`
}

// TransactionDynamoRepository persists FinancialTransaction entities in
// DynamoDB.
//
// Table requirements:
//   - PK: tenant_id (string)
//   - SK: id (string)
//
// Ledger entries are append-and-delete only; there is no Update.

type TransactionDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITransactionRepository = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb *dynamodb.Client) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
	}
}

func (r *TransactionDynamoRepository) Create(ctx context.Context, tenant string, t entities.FinancialTransaction) (entities.FinancialTransaction, error) {
	av, err := attributevalue.MarshalMap(toTransactionItem(tenant, t))
	if err != nil {
		return entities.FinancialTransaction{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.FinancialTransaction{}, err
	}
	return t, nil
}

func (r *TransactionDynamoRepository) GetByID(ctx context.Context, tenant, id string) (entities.FinancialTransaction, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tenantKey(tenant, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.FinancialTransaction{}, err
	}
	if len(out.Item) == 0 {
		return entities.FinancialTransaction{}, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.FinancialTransaction{}, err
	}
	return fromTransactionItem(it), nil
}

func (r *TransactionDynamoRepository) List(ctx context.Context, tenant string) ([]entities.FinancialTransaction, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
	})
	if err != nil {
		return nil, err
	}

	txs := make([]entities.FinancialTransaction, 0, len(out.Items))
	for _, raw := range out.Items {
		var it transactionItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		txs = append(txs, fromTransactionItem(it))
	}
	return txs, nil
}

func (r *TransactionDynamoRepository) Delete(ctx context.Context, tenant, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       tenantKey(tenant, id),
	})
	return err
}

func toTransactionItem(tenant string, t entities.FinancialTransaction) transactionItem {
	return transactionItem{
		TenantID:      tenant,
		ID:            t.ID,
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		RelatedID:     t.RelatedID,
		Date:          t.Date.UTC().Format(time.RFC3339Nano),
		SchemaVersion: schemaVersion,
	}
}

func fromTransactionItem(it transactionItem) entities.FinancialTransaction {
	dt, _ := time.Parse(time.RFC3339Nano, it.Date)
	return entities.FinancialTransaction{
		ID:            it.ID,
		Type:          entities.TransactionType(it.Type),
		Description:   it.Description,
		Amount:        it.Amount,
		PaymentMethod: it.PaymentMethod,
		RelatedID:     it.RelatedID,
		Date:          dt,
	}
}
