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

const (
	defaultVehiclesTableName = "vehicles"
	vehiclesPlateIndex       = "tenant_id-plate-index"
	vehiclesClientIDIndex    = "tenant_id-client_id-index"
)

type vehicleItem struct {
	TenantID      string `dynamodbav:"tenant_id"`
	ID            string `dynamodbav:"id"`
	ClientID      string `dynamodbav:"client_id"`
	Plate         string `dynamodbav:"plate"`
	Model         string `dynamodbav:"model"`
	Brand         string `dynamodbav:"brand,omitempty"`
	Year          int    `dynamodbav:"year,omitempty"`
	Mileage       int64  `dynamodbav:"mileage"`
	SchemaVersion int    `dynamodbav:"schema_version"`
}

// VehicleDynamoRepository persists Vehicle entities in DynamoDB.
//
// Table requirements:
//   - PK: tenant_id (string)
//   - SK: id (string)
//   - GSI: tenant_id-plate-index (PK: tenant_id, SK: plate)
//   - GSI: tenant_id-client_id-index (PK: tenant_id, SK: client_id)

type VehicleDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IVehicleRepository = (*VehicleDynamoRepository)(nil)

func NewVehicleDynamoRepository(ddb *dynamodb.Client) *VehicleDynamoRepository {
	return &VehicleDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("VEHICLES_TABLE", defaultVehiclesTableName),
	}
}

func (r *VehicleDynamoRepository) Create(ctx context.Context, tenant string, v entities.Vehicle) (entities.Vehicle, error) {
	av, err := attributevalue.MarshalMap(toVehicleItem(tenant, v))
	if err != nil {
		return entities.Vehicle{}, err
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
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) GetByID(ctx context.Context, tenant, id string) (entities.Vehicle, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tenantKey(tenant, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	if len(out.Item) == 0 {
		return entities.Vehicle{}, nil
	}

	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) GetByPlate(ctx context.Context, tenant, plate string) (entities.Vehicle, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(vehiclesPlateIndex),
		KeyConditionExpression: aws.String("tenant_id = :tid AND plate = :plate"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid":   &types.AttributeValueMemberS{Value: tenant},
			":plate": &types.AttributeValueMemberS{Value: plate},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Vehicle{}, err
	}
	if len(out.Items) == 0 {
		return entities.Vehicle{}, nil
	}

	var it vehicleItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Vehicle{}, err
	}
	return fromVehicleItem(it), nil
}

func (r *VehicleDynamoRepository) List(ctx context.Context, tenant string) ([]entities.Vehicle, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
	})
	if err != nil {
		return nil, err
	}
	return unmarshalVehicles(out.Items)
}

func (r *VehicleDynamoRepository) ListByClientID(ctx context.Context, tenant, clientID string) ([]entities.Vehicle, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(vehiclesClientIDIndex),
		KeyConditionExpression: aws.String("tenant_id = :tid AND client_id = :cid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":tid": &types.AttributeValueMemberS{Value: tenant},
			":cid": &types.AttributeValueMemberS{Value: clientID},
		},
	})
	if err != nil {
		return nil, err
	}
	return unmarshalVehicles(out.Items)
}

func (r *VehicleDynamoRepository) Update(ctx context.Context, tenant string, v entities.Vehicle) (entities.Vehicle, error) {
	av, err := attributevalue.MarshalMap(toVehicleItem(tenant, v))
	if err != nil {
		return entities.Vehicle{}, err
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
			return entities.Vehicle{}, nil
		}
		return entities.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleDynamoRepository) Delete(ctx context.Context, tenant, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       tenantKey(tenant, id),
	})
	return err
}

func unmarshalVehicles(raw []map[string]types.AttributeValue) ([]entities.Vehicle, error) {
	vehicles := make([]entities.Vehicle, 0, len(raw))
	for _, m := range raw {
		var it vehicleItem
		if err := attributevalue.UnmarshalMap(m, &it); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, fromVehicleItem(it))
	}
	return vehicles, nil
}

func toVehicleItem(tenant string, v entities.Vehicle) vehicleItem {
	return vehicleItem{
		TenantID:      tenant,
		ID:            v.ID,
		ClientID:      v.ClientID,
		Plate:         v.Plate,
		Model:         v.Model,
		Brand:         v.Brand,
		Year:          v.Year,
		Mileage:       v.Mileage,
		SchemaVersion: schemaVersion,
	}
}

func fromVehicleItem(it vehicleItem) entities.Vehicle {
	return entities.Vehicle{
		ID:       it.ID,
		ClientID: it.ClientID,
		Plate:    it.Plate,
		Model:    it.Model,
		Brand:    it.Brand,
		Year:     it.Year,
		Mileage:  it.Mileage,
	}
}
