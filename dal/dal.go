package dal

import (
	"awards-backend/models"
	"awards-backend/utils/logger"
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	pkgerrors "github.com/pkg/errors"
)

// ErrItemEncoding marks failures converting Go values to or from DynamoDB
// attribute maps. These are programming errors, not storage outages.
var ErrItemEncoding = errors.New("item encoding failed")

type DynamoDBClient struct {
	client dynamoAPI
	config *models.Config
	logger logger.Logger
}

// NewDynamoDBClient creates a new DynamoDB client
func NewDynamoDBClient(ctx context.Context, cfg *models.Config, log logger.Logger) (*DynamoDBClient, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}

	// Use static credentials if provided, otherwise the default chain (IAM role)
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		// Local DynamoDB
		if cfg.DynamoDBEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoDBEndpoint)
		}
	})

	log.Info("DynamoDB client initialized")
	return newDynamoDBClient(client, cfg, log), nil
}

func newDynamoDBClient(client dynamoAPI, cfg *models.Config, log logger.Logger) *DynamoDBClient {
	return &DynamoDBClient{
		client: client,
		config: cfg,
		logger: log,
	}
}

// GetItem retrieves an item by primary key. result is left untouched when
// the item does not exist.
func (db *DynamoDBClient) GetItem(ctx context.Context, cfg models.QueryConfig, result interface{}) error {
	input := &dynamodb.GetItemInput{
		TableName: aws.String(cfg.TableName),
		Key: map[string]types.AttributeValue{
			cfg.KeyName: keyAttribute(cfg),
		},
	}

	output, err := db.client.GetItem(ctx, input)
	if err != nil {
		db.logger.Errorf("Failed to get item from %s: %v", cfg.TableName, err)
		return err
	}

	if output.Item == nil {
		return nil
	}

	if err := attributevalue.UnmarshalMap(output.Item, result); err != nil {
		return pkgerrors.WithStack(fmt.Errorf("%w: %v", ErrItemEncoding, err))
	}
	return nil
}

// PutItemIfNotExists stores an item only if no item with the same key
// exists, so a write never overwrites another record.
func (db *DynamoDBClient) PutItemIfNotExists(ctx context.Context, tableName, keyName string, item interface{}) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.WithStack(fmt.Errorf("%w: %v", ErrItemEncoding, err))
	}

	_, err = db.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": keyName,
		},
	})
	return err
}

// QueryByIndex queries items using a global secondary index
func (db *DynamoDBClient) QueryByIndex(ctx context.Context, cfg models.QueryConfig, results interface{}) error {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(cfg.TableName),
		KeyConditionExpression: aws.String("#kn0 = :kv0"),
		ExpressionAttributeNames: map[string]string{
			"#kn0": cfg.KeyName,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":kv0": keyAttribute(cfg),
		},
		ScanIndexForward: aws.Bool(!cfg.Newest),
	}
	if cfg.IndexName != "" {
		input.IndexName = aws.String(cfg.IndexName)
	}
	if cfg.Limit > 0 {
		input.Limit = aws.Int32(cfg.Limit)
	}

	output, err := db.client.Query(ctx, input)
	if err != nil {
		return err
	}

	if err := attributevalue.UnmarshalListOfMaps(output.Items, results); err != nil {
		return pkgerrors.WithStack(fmt.Errorf("%w: %v", ErrItemEncoding, err))
	}
	return nil
}

// CreateTable creates a table
func (db *DynamoDBClient) CreateTable(ctx context.Context, input *dynamodb.CreateTableInput) error {
	_, err := db.client.CreateTable(ctx, input)
	return err
}

// DescribeTable describes a table
func (db *DynamoDBClient) DescribeTable(ctx context.Context, tableName string) (*dynamodb.DescribeTableOutput, error) {
	return db.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(tableName),
	})
}

func keyAttribute(cfg models.QueryConfig) types.AttributeValue {
	if cfg.KeyType == models.NumberType {
		return &types.AttributeValueMemberN{Value: cfg.KeyValue}
	}
	return &types.AttributeValueMemberS{Value: cfg.KeyValue}
}
