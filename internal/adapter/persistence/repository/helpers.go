package repository

import (
	"os"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// schemaVersion is stamped on every item so future migrations can tell
// generations apart without scanning payload shapes.
const schemaVersion = 1

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// tenantKey builds the composite key shared by all tenant-scoped tables:
// PK tenant_id, SK id.
func tenantKey(tenant, id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"tenant_id": &types.AttributeValueMemberS{Value: tenant},
		"id":        &types.AttributeValueMemberS{Value: id},
	}
}

// tenantCondition is the KeyConditionExpression used to list a tenant's
// partition.
const tenantCondition = "tenant_id = :tid"

func tenantConditionValues(tenant string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		":tid": &types.AttributeValueMemberS{Value: tenant},
	}
}
