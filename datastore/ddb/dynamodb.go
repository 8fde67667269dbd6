/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"

	"github.com/suparena/settingstore/config"
	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
)

// Client is the subset of the DynamoDB API used by DataStore.
type Client interface {
	GetItem(ctx context.Context, in *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, in *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Scan(ctx context.Context, in *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

// item is the stored form of a setting. PK and SK follow the hash layout;
// the remaining attributes make scans independent of key parsing.
type item struct {
	PK        string `dynamodbav:"PK"`
	SK        string `dynamodbav:"SK"`
	Scope     string `dynamodbav:"Scope"`
	OwnerID   int64  `dynamodbav:"OwnerID"`
	Key       string `dynamodbav:"SettingKey"`
	Name      string `dynamodbav:"Name"`
	Type      string `dynamodbav:"Type"`
	Value     string `dynamodbav:"Value"`
	UpdatedAt string `dynamodbav:"UpdatedAt"`
}

// DynamodbDataStore implements datastore.DataStore on a single DynamoDB table
// with a string partition key "PK" and a string sort key "SK".
type DynamodbDataStore struct {
	client    Client
	tableName string
	layout    datastore.HashLayout
	scan      storagemodels.ScanOptions
	now       func() time.Time
}

var _ datastore.DataStore = (*DynamodbDataStore)(nil)

// NewDynamoDBClient initializes a DynamoDB client from configuration.
// Static credentials are used when an access key is set; otherwise the default
// AWS credential chain applies. A non-empty endpoint targets DynamoDB Local.
func NewDynamoDBClient(ctx context.Context, cfg config.DynamoDBConfig) (*sdk.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}

// NewDynamodbDataStore constructs a DataStore over an existing client.
func NewDynamodbDataStore(client Client, tableName string, layout datastore.HashLayout, opts ...storagemodels.ScanOption) *DynamodbDataStore {
	scan := storagemodels.DefaultScanOptions()
	for _, opt := range opts {
		opt(&scan)
	}
	return &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		layout:    layout,
		scan:      scan,
		now:       time.Now,
	}
}

func (d *DynamodbDataStore) key(id storagemodels.Identity) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: d.layout.Key(id)},
		"SK": &types.AttributeValueMemberS{Value: d.layout.Field(id)},
	}
}

func (d *DynamodbDataStore) Exists(ctx context.Context, id storagemodels.Identity) (bool, error) {
	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:            &d.tableName,
		Key:                  d.key(id),
		ProjectionExpression: aws.String("PK"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		return false, fmt.Errorf("GetItem error: %w", err)
	}
	return out.Item != nil, nil
}

// Delete removes the item. ALL_OLD tells whether anything was there.
func (d *DynamodbDataStore) Delete(ctx context.Context, id storagemodels.Identity) (bool, error) {
	out, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:    &d.tableName,
		Key:          d.key(id),
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return len(out.Attributes) > 0, nil
}

func (d *DynamodbDataStore) Read(ctx context.Context, id storagemodels.Identity) (string, bool, error) {
	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:            &d.tableName,
		Key:                  d.key(id),
		ProjectionExpression: aws.String("#v"),
		ExpressionAttributeNames: map[string]string{
			"#v": "Value",
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return "", false, nil
	}

	var raw string
	if attr, ok := out.Item["Value"]; ok {
		if err := attributevalue.Unmarshal(attr, &raw); err != nil {
			return "", false, fmt.Errorf("failed to unmarshal value: %w", err)
		}
	}
	return raw, true, nil
}

func (d *DynamodbDataStore) Write(ctx context.Context, id storagemodels.Identity, raw string) (bool, error) {
	it := item{
		PK:        d.layout.Key(id),
		SK:        d.layout.Field(id),
		Scope:     string(id.Scope),
		Key:       id.Key,
		Name:      id.Name,
		Type:      string(id.Type),
		Value:     raw,
		UpdatedAt: strfmt.DateTime(d.now().UTC()).String(),
	}
	if id.Scope == storagemodels.ScopeRegistry {
		it.OwnerID = id.Owner
	}

	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return false, fmt.Errorf("failed to marshal item: %w", err)
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      av,
	})
	if err != nil {
		return false, fmt.Errorf("PutItem failed: %w", err)
	}
	return true, nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (d *DynamodbDataStore) Close() error {
	return nil
}

// EngineName is the registry name of the DynamoDB engine.
const EngineName = "dynamodb"
