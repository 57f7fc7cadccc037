package dal

import (
	"awards-backend/models"
	"awards-backend/utils/logger"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockDynamoAPI is a mock implementation of the SDK subset used by DynamoDBClient
type MockDynamoAPI struct {
	mock.Mock
}

func (m *MockDynamoAPI) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.GetItemOutput)
	return out, args.Error(1)
}

func (m *MockDynamoAPI) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.PutItemOutput)
	return out, args.Error(1)
}

func (m *MockDynamoAPI) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.QueryOutput)
	return out, args.Error(1)
}

func (m *MockDynamoAPI) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.CreateTableOutput)
	return out, args.Error(1)
}

func (m *MockDynamoAPI) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	args := m.Called(ctx, params)
	out, _ := args.Get(0).(*dynamodb.DescribeTableOutput)
	return out, args.Error(1)
}

type testRecord struct {
	ID     string `dynamodbav:"id"`
	Status string `dynamodbav:"status"`
}

// failingValue always fails attribute value marshaling
type failingValue struct{}

func (failingValue) MarshalDynamoDBAttributeValue() (types.AttributeValue, error) {
	return nil, errors.New("refusing to encode")
}

type unencodableRecord struct {
	ID      string       `dynamodbav:"id"`
	Payload failingValue `dynamodbav:"payload"`
}

var _ DatabaseClientInterface = (*DynamoDBClient)(nil)

type DALTestSuite struct {
	suite.Suite
	api    *MockDynamoAPI
	client *DynamoDBClient
	ctx    context.Context
}

func (suite *DALTestSuite) SetupTest() {
	suite.api = new(MockDynamoAPI)
	log := logger.NewLoggerWithOutput("error", "json", io.Discard)
	suite.client = newDynamoDBClient(suite.api, &models.Config{DynamoDBTablePrefix: "test"}, log)
	suite.ctx = context.Background()
}

func (suite *DALTestSuite) TearDownTest() {
	suite.api.AssertExpectations(suite.T())
}

func (suite *DALTestSuite) TestGetItem_Found() {
	suite.api.On("GetItem", suite.ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		key, ok := in.Key["id"].(*types.AttributeValueMemberS)
		return aws.ToString(in.TableName) == "test_nominations" && ok && key.Value == "abc"
	})).Return(&dynamodb.GetItemOutput{
		Item: map[string]types.AttributeValue{
			"id":     &types.AttributeValueMemberS{Value: "abc"},
			"status": &types.AttributeValueMemberS{Value: "pending"},
		},
	}, nil)

	var rec testRecord
	err := suite.client.GetItem(suite.ctx, models.QueryConfig{
		TableName: "test_nominations",
		KeyName:   "id",
		KeyValue:  "abc",
		KeyType:   models.StringType,
	}, &rec)

	suite.Require().NoError(err)
	suite.Equal("abc", rec.ID)
	suite.Equal("pending", rec.Status)
}

func (suite *DALTestSuite) TestGetItem_NotFoundLeavesResultEmpty() {
	suite.api.On("GetItem", suite.ctx, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

	var rec testRecord
	err := suite.client.GetItem(suite.ctx, models.QueryConfig{TableName: "t", KeyName: "id", KeyValue: "missing"}, &rec)

	suite.NoError(err)
	suite.Empty(rec.ID)
}

func (suite *DALTestSuite) TestGetItem_NumberKey() {
	suite.api.On("GetItem", suite.ctx, mock.MatchedBy(func(in *dynamodb.GetItemInput) bool {
		_, ok := in.Key["seq"].(*types.AttributeValueMemberN)
		return ok
	})).Return(&dynamodb.GetItemOutput{}, nil)

	var rec testRecord
	err := suite.client.GetItem(suite.ctx, models.QueryConfig{TableName: "t", KeyName: "seq", KeyValue: "7", KeyType: models.NumberType}, &rec)
	suite.NoError(err)
}

func (suite *DALTestSuite) TestPutItemIfNotExists_SetsCondition() {
	suite.api.On("PutItem", suite.ctx, mock.MatchedBy(func(in *dynamodb.PutItemInput) bool {
		_, hasID := in.Item["id"]
		return aws.ToString(in.ConditionExpression) == "attribute_not_exists(#pk)" &&
			in.ExpressionAttributeNames["#pk"] == "id" && hasID
	})).Return(&dynamodb.PutItemOutput{}, nil)

	err := suite.client.PutItemIfNotExists(suite.ctx, "test_nominations", "id", testRecord{ID: "n-1", Status: "pending"})
	suite.NoError(err)
}

func (suite *DALTestSuite) TestPutItemIfNotExists_PropagatesProviderError() {
	providerErr := errors.New("throttled")
	suite.api.On("PutItem", suite.ctx, mock.Anything).Return(nil, providerErr)

	err := suite.client.PutItemIfNotExists(suite.ctx, "t", "id", testRecord{ID: "x"})
	suite.ErrorIs(err, providerErr)
	suite.NotErrorIs(err, ErrItemEncoding)
}

func (suite *DALTestSuite) TestPutItemIfNotExists_EncodingFailure() {
	err := suite.client.PutItemIfNotExists(suite.ctx, "t", "id", unencodableRecord{ID: "x"})

	suite.Require().Error(err)
	suite.ErrorIs(err, ErrItemEncoding)
	suite.Contains(err.Error(), "refusing to encode")
	suite.api.AssertNotCalled(suite.T(), "PutItem", mock.Anything, mock.Anything)
}

func (suite *DALTestSuite) TestQueryByIndex_BuildsInput() {
	suite.api.On("Query", suite.ctx, mock.MatchedBy(func(in *dynamodb.QueryInput) bool {
		val, ok := in.ExpressionAttributeValues[":kv0"].(*types.AttributeValueMemberS)
		return aws.ToString(in.IndexName) == "status-index" &&
			in.ExpressionAttributeNames["#kn0"] == "status" &&
			ok && val.Value == "pending" &&
			aws.ToInt32(in.Limit) == 25 &&
			!aws.ToBool(in.ScanIndexForward)
	})).Return(&dynamodb.QueryOutput{
		Items: []map[string]types.AttributeValue{
			{"id": &types.AttributeValueMemberS{Value: "a"}, "status": &types.AttributeValueMemberS{Value: "pending"}},
			{"id": &types.AttributeValueMemberS{Value: "b"}, "status": &types.AttributeValueMemberS{Value: "pending"}},
		},
	}, nil)

	var recs []testRecord
	err := suite.client.QueryByIndex(suite.ctx, models.QueryConfig{
		TableName: "test_nominations",
		IndexName: "status-index",
		KeyName:   "status",
		KeyValue:  "pending",
		Limit:     25,
		Newest:    true,
	}, &recs)

	suite.Require().NoError(err)
	suite.Len(recs, 2)
	suite.Equal("b", recs[1].ID)
}

func (suite *DALTestSuite) TestTableManagement() {
	suite.api.On("CreateTable", suite.ctx, mock.Anything).Return(&dynamodb.CreateTableOutput{}, nil)
	suite.api.On("DescribeTable", suite.ctx, mock.MatchedBy(func(in *dynamodb.DescribeTableInput) bool {
		return aws.ToString(in.TableName) == "t"
	})).Return(&dynamodb.DescribeTableOutput{Table: &types.TableDescription{TableStatus: types.TableStatusActive}}, nil)

	suite.NoError(suite.client.CreateTable(suite.ctx, &dynamodb.CreateTableInput{TableName: aws.String("t")}))
	out, err := suite.client.DescribeTable(suite.ctx, "t")
	suite.Require().NoError(err)
	suite.Equal(types.TableStatusActive, out.Table.TableStatus)
}

func TestDALTestSuite(t *testing.T) {
	suite.Run(t, new(DALTestSuite))
}
