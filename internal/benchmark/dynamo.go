package benchmark

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// snapshotItem is the DynamoDB row shape: partition key postId plus the
// snapshot fields.
type snapshotItem struct {
	PostID    string             `dynamodbav:"postId"`
	Timestamp time.Time          `dynamodbav:"ts"`
	KPIs      map[string]float64 `dynamodbav:"kpis"`
}

// DynamoStore persists benchmark snapshots in a DynamoDB table keyed by
// postId, for deployments where the engine runs in Lambda and has no
// durable filesystem.
type DynamoStore struct {
	client    *dynamodb.Client
	tableName string
}

// NewDynamoStore creates a DynamoDB-backed history store using the default
// AWS credential chain.
func NewDynamoStore(ctx context.Context, tableName string) (*DynamoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &DynamoStore{
		client:    dynamodb.NewFromConfig(cfg),
		tableName: tableName,
	}, nil
}

// Load scans the full history mapping.
func (ds *DynamoStore) Load(ctx context.Context) (map[string]Snapshot, error) {
	history := make(map[string]Snapshot)
	var startKey map[string]types.AttributeValue
	for {
		result, err := ds.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(ds.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to scan benchmark history: %w", err)
		}
		for _, item := range result.Items {
			var row snapshotItem
			if err := attributevalue.UnmarshalMap(item, &row); err != nil {
				continue // Skip invalid items
			}
			history[row.PostID] = Snapshot{Timestamp: row.Timestamp, KPIs: row.KPIs}
		}
		if result.LastEvaluatedKey == nil {
			break
		}
		startKey = result.LastEvaluatedKey
	}
	return history, nil
}

// Get retrieves the snapshot for one post identifier.
func (ds *DynamoStore) Get(ctx context.Context, postID string) (Snapshot, bool, error) {
	result, err := ds.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(ds.tableName),
		Key: map[string]types.AttributeValue{
			"postId": &types.AttributeValueMemberS{Value: postID},
		},
	})
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to get benchmark snapshot: %w", err)
	}
	if result.Item == nil {
		return Snapshot{}, false, nil
	}
	var row snapshotItem
	if err := attributevalue.UnmarshalMap(result.Item, &row); err != nil {
		return Snapshot{}, false, fmt.Errorf("failed to unmarshal benchmark snapshot: %w", err)
	}
	return Snapshot{Timestamp: row.Timestamp, KPIs: row.KPIs}, true, nil
}

// Put overwrites the snapshot for postID.
func (ds *DynamoStore) Put(ctx context.Context, postID string, snap Snapshot) error {
	item, err := attributevalue.MarshalMap(snapshotItem{
		PostID:    postID,
		Timestamp: snap.Timestamp,
		KPIs:      snap.KPIs,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal benchmark snapshot: %w", err)
	}
	_, err = ds.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(ds.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store benchmark snapshot: %w", err)
	}
	return nil
}
