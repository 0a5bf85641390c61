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

const (
	defaultOrdersTableName = "service_orders"
	ordersClientIDIndex    = "tenant_id-client_id-index"
)

type osItemRecord struct {
	Description string  `dynamodbav:"description"`
	Quantity    float64 `dynamodbav:"quantity"`
	UnitPrice   float64 `dynamodbav:"unit_price"`
	Type        string  `dynamodbav:"type"`
}

type collectionAttemptRecord struct {
	Date     string `dynamodbav:"date"`
	Operator string `dynamodbav:"operator"`
	Tier     string `dynamodbav:"tier"`
}

type serviceOrderItem struct {
	TenantID      string                    `dynamodbav:"tenant_id"`
	ID            string                    `dynamodbav:"id"`
	OSNumber      string                    `dynamodbav:"os_number"`
	ClientID      string                    `dynamodbav:"client_id"`
	VehicleID     string                    `dynamodbav:"vehicle_id"`
	ClientName    string                    `dynamodbav:"client_name"`
	VehiclePlate  string                    `dynamodbav:"vehicle_plate"`
	VehicleModel  string                    `dynamodbav:"vehicle_model"`
	Items         []osItemRecord            `dynamodbav:"items"`
	LaborValue    float64                   `dynamodbav:"labor_value"`
	Discount      float64                   `dynamodbav:"discount"`
	TotalValue    float64                   `dynamodbav:"total_value"`
	Mileage       int64                     `dynamodbav:"mileage"`
	Status        string                    `dynamodbav:"status"`
	PaymentStatus string                    `dynamodbav:"payment_status"`
	PaymentMethod string                    `dynamodbav:"payment_method,omitempty"`
	CollectionLog []collectionAttemptRecord `dynamodbav:"collection_log,omitempty"`
	CreatedAt     string                    `dynamodbav:"created_at"`
	UpdatedAt     string                    `dynamodbav:"updated_at"`
	SchemaVersion int                       `dynamodbav:"schema_version"`
}

// ServiceOrderDynamoRepository persists ServiceOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: tenant_id (string)
//   - SK: id (string)
//   - GSI: tenant_id-client_id-index (PK: tenant_id, SK: client_id)

type ServiceOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IServiceOrderRepository = (*ServiceOrderDynamoRepository)(nil)

func NewServiceOrderDynamoRepository(ddb *dynamodb.Client) *ServiceOrderDynamoRepository {
	return &ServiceOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ORDERS_TABLE", defaultOrdersTableName),
	}
}

func (r *ServiceOrderDynamoRepository) Create(ctx context.Context, tenant string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	av, err := attributevalue.MarshalMap(toServiceOrderItem(tenant, o))
	if err != nil {
		return entities.ServiceOrder{}, err
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
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) GetByID(ctx context.Context, tenant, id string) (entities.ServiceOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tenantKey(tenant, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.ServiceOrder{}, nil
	}

	var it serviceOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ServiceOrder{}, err
	}
	return fromServiceOrderItem(it), nil
}

func (r *ServiceOrderDynamoRepository) List(ctx context.Context, tenant string) ([]entities.ServiceOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalServiceOrders(out.Items)
}

func (r *ServiceOrderDynamoRepository) ListByClientID(ctx context.Context, tenant, clientID string) ([]entities.ServiceOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersClientIDIndex),
		KeyConditionExpression: aws.String("tenant_id = :tid AND client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: tenant},
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalServiceOrders(out.Items)
}

func (r *ServiceOrderDynamoRepository) Update(ctx context.Context, tenant string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
	av, err := attributevalue.MarshalMap(toServiceOrderItem(tenant, o))
	if err != nil {
		return entities.ServiceOrder{}, err
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
			return entities.ServiceOrder{}, nil
		}
		return entities.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderDynamoRepository) Delete(ctx context.Context, tenant, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       tenantKey(tenant, id),
	})
	return err
}

func (r *ServiceOrderDynamoRepository) Count(ctx context.Context, tenant string) (int, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
		Select:                    types.SelectCount,
	})
	if err != nil {
		return 0, err
	}
	return int(out.Count), nil
}

func unmarshalServiceOrders(raw []map[string]types.AttributeValue) ([]entities.ServiceOrder, error) {
	orders := make([]entities.ServiceOrder, 0, len(raw))
	for _, m := range raw {
		var it serviceOrderItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		orders = append(orders, fromServiceOrderItem(it))
	}
	return orders, nil
}

func toServiceOrderItem(tenant string, o entities.ServiceOrder) serviceOrderItem {
	items := make([]osItemRecord, 0, len(o.Items))
	for _, li := range o.Items {
		items = append(items, osItemRecord{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Type:        string(li.Type),
		})
	}
	log := make([]collectionAttemptRecord, 0, len(o.CollectionLog))
	for _, a := range o.CollectionLog {
		log = append(log, collectionAttemptRecord{
			Date:     a.Date.UTC().Format(time.RFC3339Nano),
			Operator: a.Operator,
			Tier:     a.Tier,
		})
	}
	return serviceOrderItem{
		TenantID:      tenant,
		ID:            o.ID,
		OSNumber:      o.OSNumber,
		ClientID:      o.ClientID,
		VehicleID:     o.VehicleID,
		ClientName:    o.ClientName,
		VehiclePlate:  o.VehiclePlate,
		VehicleModel:  o.VehicleModel,
		Items:         items,
		LaborValue:    o.LaborValue,
		Discount:      o.Discount,
		TotalValue:    o.TotalValue,
		Mileage:       o.Mileage,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		CollectionLog: log,
		CreatedAt:     o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     o.UpdatedAt.UTC().Format(time.RFC3339Nano),
		SchemaVersion: schemaVersion,
	}
}

func fromServiceOrderItem(it serviceOrderItem) entities.ServiceOrder {
	items := make([]entities.OSItem, 0, len(it.Items))
	for _, li := range it.Items {
		items = append(items, entities.OSItem{
			Description: li.Description,
			Quantity:    li.Quantity,
			UnitPrice:   li.UnitPrice,
			Type:        entities.OSItemType(li.Type),
		})
	}
	log := make([]entities.CollectionAttempt, 0, len(it.CollectionLog))
	for _, a := range it.CollectionLog {
		dt, _ := time.Parse(time.RFC3339Nano, a.Date)
		log = append(log, entities.CollectionAttempt{
			Date:     dt,
			Operator: a.Operator,
			Tier:     a.Tier,
		})
	}
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.ServiceOrder{
		ID:            it.ID,
		OSNumber:      it.OSNumber,
		ClientID:      it.ClientID,
		VehicleID:     it.VehicleID,
		ClientName:    it.ClientName,
		VehiclePlate:  it.VehiclePlate,
		VehicleModel:  it.VehicleModel,
		Items:         items,
		LaborValue:    it.LaborValue,
		Discount:      it.Discount,
		TotalValue:    it.TotalValue,
		Mileage:       it.Mileage,
		Status:        entities.OSStatus(it.Status),
		PaymentStatus: entities.PaymentStatus(it.PaymentStatus),
		PaymentMethod: it.PaymentMethod,
		CollectionLog: log,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}
