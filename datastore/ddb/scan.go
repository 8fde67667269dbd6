/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/settingstore/datastore"
	"github.com/suparena/settingstore/storagemodels"
	"github.com/suparena/settingstore/value"
)

// All scans the table for items of scope, page by page. Pages that fail with a
// retryable error are retried with linear backoff.
func (d *DynamodbDataStore) All(ctx context.Context, scope storagemodels.Scope) ([]storagemodels.Entry, error) {
	input := &sdk.ScanInput{
		TableName:        &d.tableName,
		FilterExpression: aws.String("begins_with(PK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: d.layout.ScopePrefix(scope)},
		},
		ConsistentRead: aws.Bool(true),
	}
	if d.scan.PageSize > 0 {
		input.Limit = aws.Int32(d.scan.PageSize)
	}

	var entries []storagemodels.Entry
	for {
		out, err := d.scanWithRetry(ctx, input)
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it item
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, fmt.Errorf("failed to unmarshal item: %w", err)
			}
			if it.Scope != string(scope) {
				continue
			}
			entries = append(entries, storagemodels.Entry{
				Scope: scope,
				Owner: it.OwnerID,
				Key:   it.Key,
				Name:  it.Name,
				Type:  value.Type(it.Type),
				Value: it.Value,
			})
		}

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	datastore.SortEntries(entries)
	return entries, nil
}

// scanWithRetry executes a scan with configurable retry logic
func (d *DynamodbDataStore) scanWithRetry(ctx context.Context, input *sdk.ScanInput) (*sdk.ScanOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= d.scan.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		out, err := d.client.Scan(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err

		if !isRetryableError(err) {
			return nil, fmt.Errorf("scan error: %w", err)
		}

		// Don't sleep after last attempt
		if attempt < d.scan.MaxRetries {
			backoff := time.Duration(attempt+1) * d.scan.RetryBackoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("scan failed after %d retries: %w", d.scan.MaxRetries, lastErr)
}

// isRetryableError determines if a DynamoDB error is retryable.
// The SDK wraps service exceptions in *smithy.OperationError, so every check
// looks through the chain.
func isRetryableError(err error) bool {
	var throughput *types.ProvisionedThroughputExceededException
	var limit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	// Check for AWS SDK retryable errors
	var retryable interface{ IsRetryable() bool }
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}

	return false
}
