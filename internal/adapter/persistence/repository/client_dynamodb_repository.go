package repository

import (
	"context"
	"errors"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultClientsTableName = "clients"

type clientItem struct {
	TenantID      string `dynamodbav:"tenant_id"`
	ID            string `dynamodbav:"id"`
	Name          string `dynamodbav:"name"`
	Phone         string `dynamodbav:"phone,omitempty"`
	Email         string `dynamodbav:"email,omitempty"`
	Document      string `dynamodbav:"document,omitempty"`
	CreatedAt     string `dynamodbav:"created_at"`
	SchemaVersion int    `dynamodbav:"schema_version"`
}

// ClientDynamoRepository persists Client entities in DynamoDB.
//
// Table requirements:
//   - PK: tenant_id (string)
//   - SK: id (string)

type ClientDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IClientRepository = (*ClientDynamoRepository)(nil)

func NewClientDynamoRepository(ddb *dynamodb.Client) *ClientDynamoRepository {
	return &ClientDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("CLIENTS_TABLE", defaultClientsTableName),
	}
}

func (r *ClientDynamoRepository) Create(ctx context.Context, tenant string, c entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(tenant, c))
	if err != nil {
		return entities.Client{}, err
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
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) GetByID(ctx context.Context, tenant, id string) (entities.Client, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tenantKey(tenant, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Client{}, err
	}
	if len(out.Item) == 0 {
		return entities.Client{}, nil
	}

	var it clientItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Client{}, err
	}
	return fromClientItem(it), nil
}

func (r *ClientDynamoRepository) List(ctx context.Context, tenant string) ([]entities.Client, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
	})
	if err != nil {
		return nil, err
	}

	clients := make([]entities.Client, 0, len(out.Items))
	for _, raw := range out.Items {
		var it clientItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		clients = append(clients, fromClientItem(it))
	}
	return clients, nil
}

func (r *ClientDynamoRepository) Update(ctx context.Context, tenant string, c entities.Client) (entities.Client, error) {
	av, err := attributevalue.MarshalMap(toClientItem(tenant, c))
	if err != nil {
		return entities.Client{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Client{}, nil
		}
		return entities.Client{}, err
	}
	return c, nil
}

func (r *ClientDynamoRepository) Delete(ctx context.Context, tenant, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       tenantKey(tenant, id),
	})
	return err
}

func toClientItem(tenant string, c entities.Client) clientItem {
	return clientItem{
		TenantID:      tenant,
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Document:      c.Document,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339Nano),
		SchemaVersion: schemaVersion,
	}
}

func fromClientItem(it clientItem) entities.Client {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	return entities.Client{
		ID:        it.ID,
		Name:      it.Name,
		Phone:     it.Phone,
		Email:     it.Email,
		Document:  it.Document,
		CreatedAt: createdAt,
	}
}
