package repository

import (
	"context"
	"errors"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultPartsTableName = "parts"

type partItem struct {
	TenantID      string  `dynamodbav:"tenant_id"`
	ID            string  `dynamodbav:"id"`
	Name          string  `dynamodbav:"name"`
	SKU           string  `dynamodbav:"sku,omitempty"`
	Stock         int64   `dynamodbav:"stock"`
	MinStock      int64   `dynamodbav:"min_stock"`
	UnitPrice     float64 `dynamodbav:"unit_price"`
	CostPrice     float64 `dynamodbav:"cost_price,omitempty"`
	SchemaVersion int     `dynamodbav:"schema_version"`
}

// PartDynamoRepository persists Part entities in DynamoDB.
//
// Table requirements:
//   - PK: tenant_id (string)
//   - SK: id (string)

type PartDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPartRepository = (*PartDynamoRepository)(nil)

func NewPartDynamoRepository(ddb *dynamodb.Client) *PartDynamoRepository {
	return &PartDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PARTS_TABLE", defaultPartsTableName),
	}
}

func (r *PartDynamoRepository) Create(ctx context.Context, tenant string, p entities.Part) (entities.Part, error) {
	av, err := attributevalue.MarshalMap(toPartItem(tenant, p))
	if err != nil {
		return entities.Part{}, err
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
		return entities.Part{}, err
	}
	return p, nil
}

func (r *PartDynamoRepository) GetByID(ctx context.Context, tenant, id string) (entities.Part, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tenantKey(tenant, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Part{}, err
	}
	if len(out.Item) == 0 {
		return entities.Part{}, nil
	}

	var it partItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Part{}, err
	}
	return fromPartItem(it), nil
}

func (r *PartDynamoRepository) List(ctx context.Context, tenant string) ([]entities.Part, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
	})
	if err != nil {
		return nil, err
	}

	parts := make([]entities.Part, 0, len(out.Items))
	for _, raw := range out.Items {
		var it partItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		parts = append(parts, fromPartItem(it))
	}
	return parts, nil
}

func (r *PartDynamoRepository) Update(ctx context.Context, tenant string, p entities.Part) (entities.Part, error) {
	av, err := attributevalue.MarshalMap(toPartItem(tenant, p))
	if err != nil {
		return entities.Part{}, err
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
			return entities.Part{}, nil
		}
		return entities.Part{}, err
	}
	return p, nil
}

func (r *PartDynamoRepository) Delete(ctx context.Context, tenant, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       tenantKey(tenant, id),
	})
	return err
}

func toPartItem(tenant string, p entities.Part) partItem {
	return partItem{
		TenantID:      tenant,
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Stock:         p.Stock,
		MinStock:      p.MinStock,
		UnitPrice:     p.UnitPrice,
		CostPrice:     p.CostPrice,
		SchemaVersion: schemaVersion,
	}
}

func fromPartItem(it partItem) entities.Part {
	return entities.Part{
		ID:        it.ID,
		Name:      it.Name,
		SKU:       it.SKU,
		Stock:     it.Stock,
		MinStock:  it.MinStock,
		UnitPrice: it.UnitPrice,
		CostPrice: it.CostPrice,
	}
}
