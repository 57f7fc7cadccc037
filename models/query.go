package models

// AttributeType enum for different DynamoDB attribute types
type AttributeType int

const (
	StringType AttributeType = iota
	NumberType
)

// QueryConfig describes a key lookup against a table or one of its indexes
type QueryConfig struct {
	TableName string
	IndexName string // empty for primary key lookups
	KeyName   string
	KeyValue  string
	KeyType   AttributeType
	Limit     int32 // 0 means no explicit limit
	Newest    bool  // sort descending on the range key
}
