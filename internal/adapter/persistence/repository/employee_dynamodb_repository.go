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

const defaultEmployeesTableName = "employees"

type employeeItem struct {
	TenantID      string  `dynamodbav:"tenant_id"`
	ID            string  `dynamodbav:"id"`
	Name          string  `dynamodbav:"name"`
	RoleTitle     string  `dynamodbav:"role_title"`
	Phone         string  `dynamodbav:"phone,omitempty"`
	Commission    float64 `dynamodbav:"commission,omitempty"`
	SchemaVersion int     `dynamodbav:"schema_version"`
}

// EmployeeDynamoRepository persists Employee entities in DynamoDB.
//
// Table requirements:
//   - PK: tenant_id (string)
//   - SK: id (string)

type EmployeeDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEmployeeRepository = (*EmployeeDynamoRepository)(nil)

func NewEmployeeDynamoRepository(ddb *dynamodb.Client) *EmployeeDynamoRepository {
	return &EmployeeDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("EMPLOYEES_TABLE", defaultEmployeesTableName),
	}
}

func (r *EmployeeDynamoRepository) Create(ctx context.Context, tenant string, e entities.Employee) (entities.Employee, error) {
	av, err := attributevalue.MarshalMap(toEmployeeItem(tenant, e))
	if err != nil {
		return entities.Employee{}, err
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
		return entities.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeDynamoRepository) GetByID(ctx context.Context, tenant, id string) (entities.Employee, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            tenantKey(tenant, id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Employee{}, err
	}
	if len(out.Item) == 0 {
		return entities.Employee{}, nil
	}

	var it employeeItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Employee{}, err
	}
	return fromEmployeeItem(it), nil
}

func (r *EmployeeDynamoRepository) List(ctx context.Context, tenant string) ([]entities.Employee, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    aws.String(tenantCondition),
		ExpressionAttributeValues: tenantConditionValues(tenant),
	})
	if err != nil {
		return nil, err
	}

	employees := make([]entities.Employee, 0, len(out.Items))
	for _, raw := range out.Items {
		var it employeeItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		employees = append(employees, fromEmployeeItem(it))
	}
	return employees, nil
}

func (r *EmployeeDynamoRepository) Update(ctx context.Context, tenant string, e entities.Employee) (entities.Employee, error) {
	av, err := attributevalue.MarshalMap(toEmployeeItem(tenant, e))
	if err != nil {
		return entities.Employee{}, err
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
			return entities.Employee{}, nil
		}
		return entities.Employee{}, err
	}
	return e, nil
}

func (r *EmployeeDynamoRepository) Delete(ctx context.Context, tenant, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       tenantKey(tenant, id),
	})
	return err
}

func toEmployeeItem(tenant string, e entities.Employee) employeeItem {
	return employeeItem{
		TenantID:      tenant,
		ID:            e.ID,
		Name:          e.Name,
		RoleTitle:     e.RoleTitle,
		Phone:         e.Phone,
		Commission:    e.Commission,
		SchemaVersion: schemaVersion,
	}
}

func fromEmployeeItem(it employeeItem) entities.Employee {
	return entities.Employee{
		ID:         it.ID,
		Name:       it.Name,
		RoleTitle:  it.RoleTitle,
		Phone:      it.Phone,
		Commission: it.Commission,
	}
}
