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

const defaultUsersTableName = "users"

type userItem struct {
	Username      string `dynamodbav:"username"`
	ID            string `dynamodbav:"id"`
	PasswordHash  string `dynamodbav:"password_hash"`
	Role          string `dynamodbav:"role"`
	LastSync      string `dynamodbav:"last_sync,omitempty"`
	SchemaVersion int    `dynamodbav:"schema_version"`
}

// UserDynamoRepository persists login accounts in DynamoDB.
//
// Table requirements:
//   - PK: username (string)
//
// Users are not tenant-scoped; the username IS the tenant identifier for
// everything else.

type UserDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IUserRepository = (*UserDynamoRepository)(nil)

func NewUserDynamoRepository(ddb *dynamodb.Client) *UserDynamoRepository {
	return &UserDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("USERS_TABLE", defaultUsersTableName),
	}
}

func (r *UserDynamoRepository) Create(ctx context.Context, u entities.User) (entities.User, error) {
	av, err := attributevalue.MarshalMap(toUserItem(u))
	if err != nil {
		return entities.User{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#username)"),
		ExpressionAttributeNames: map[string]string{
			"#username": "username",
		},
	})
	if err != nil {
		return entities.User{}, err
	}
	return u, nil
}

func (r *UserDynamoRepository) GetByUsername(ctx context.Context, username string) (entities.User, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.User{}, err
	}
	if len(out.Item) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

// ListUsernames scans the table for every account name. It feeds the daily
// arrears sweep, which runs per tenant; the account population is tiny.
func (r *UserDynamoRepository) ListUsernames(ctx context.Context) ([]string, error) {
	var (
		usernames []string
		startKey  map[string]types.AttributeValue
	)
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:            aws.String(r.tableName),
			ProjectionExpression: aws.String("#username"),
			ExpressionAttributeNames: map[string]string{
				"#username": "username",
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			if v, ok := raw["username"].(*types.AttributeValueMemberS); ok {
				usernames = append(usernames, v.Value)
			}
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return usernames, nil
}

func (r *UserDynamoRepository) UpdateLastSync(ctx context.Context, username string) (entities.User, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"username": &types.AttributeValueMemberS{Value: username},
		},
		ConditionExpression: aws.String("attribute_exists(#username)"),
		UpdateExpression:    aws.String("SET #last_sync = :last_sync"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":last_sync": &types.AttributeValueMemberS{Value: now},
		},
		ExpressionAttributeNames: map[string]string{
			"#username":  "username",
			"#last_sync": "last_sync",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.User{}, nil
		}
		return entities.User{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.User{}, nil
	}

	var it userItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.User{}, err
	}
	return fromUserItem(it), nil
}

func toUserItem(u entities.User) userItem {
	it := userItem{
		Username:      u.Username,
		ID:            u.ID,
		PasswordHash:  u.PasswordHash,
		Role:          string(u.Role),
		SchemaVersion: schemaVersion,
	}
	if !u.LastSync.IsZero() {
		it.LastSync = u.LastSync.UTC().Format(time.RFC3339Nano)
	}
	return it
}

func fromUserItem(it userItem) entities.User {
	lastSync, _ := time.Parse(time.RFC3339Nano, it.LastSync)
	return entities.User{
		ID:           it.ID,
		Username:     it.Username,
		PasswordHash: it.PasswordHash,
		Role:         entities.Role(it.Role),
		LastSync:     lastSync,
	}
}
