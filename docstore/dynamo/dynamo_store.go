package dynamo

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hupe1980/sitestore/codec"
	"github.com/hupe1980/sitestore/docstore"
)

const (
	keyAttr = "k"
	docAttr = "doc"
)

// Options configures the DynamoDB document store.
type Options struct {
	// Codec serializes document values. Defaults to codec.Default.
	Codec codec.Codec
}

// Store implements docstore.DocumentStore on a DynamoDB table.
//
// Documents are stored as their JSON serialization in a string attribute,
// keyed by the document key. DynamoDB writes are atomic per item, so the
// local backup-rotation protocol has no counterpart here: there is no torn
// write to recover from.
type Store struct {
	client *dynamodb.Client
	table  string
	codec  codec.Codec
}

var _ docstore.DocumentStore = (*Store)(nil)

// NewStore creates a document store backed by the given table. The table
// must have a string partition key named "k".
func NewStore(client *dynamodb.Client, table string, optFns ...func(*Options)) *Store {
	opts := Options{Codec: codec.Default}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	return &Store{
		client: client,
		table:  table,
		codec:  opts.Codec,
	}
}

// Start verifies the table is reachable and active.
func (s *Store) Start(ctx context.Context) error {
	out, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(s.table),
	})
	if err != nil {
		return fmt.Errorf("dynamo: describe table %q: %w", s.table, err)
	}
	if out.Table.TableStatus != types.TableStatusActive {
		return fmt.Errorf("dynamo: table %q is %s, want ACTIVE", s.table, out.Table.TableStatus)
	}
	return nil
}

// Stop releases the client handle slot. The SDK client holds no persistent
// connections that need explicit teardown.
func (s *Store) Stop() error { return nil }

// Write persists v under key, replacing any previous item.
func (s *Store) Write(ctx context.Context, key string, v any) error {
	data, err := s.codec.Marshal(v)
	if err != nil {
		return fmt.Errorf("dynamo: encode %q: %w", key, err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: key},
			docAttr: &types.AttributeValueMemberS{Value: string(data)},
		},
	})
	if err != nil {
		return fmt.Errorf("dynamo: write %q: %w", key, err)
	}
	return nil
}

// Read decodes the document stored under key into out.
func (s *Store) Read(ctx context.Context, key string, out any) error {
	item, err := s.getItem(ctx, key)
	if err != nil {
		return fmt.Errorf("dynamo: read %q: %w", key, err)
	}
	if item == nil {
		return fmt.Errorf("dynamo: read %q: %w", key, docstore.ErrNotFound)
	}
	attr, ok := item[docAttr].(*types.AttributeValueMemberS)
	if !ok {
		return fmt.Errorf("dynamo: document %q: %w: missing %s attribute", key, docstore.ErrCorrupt, docAttr)
	}
	if err := s.codec.Unmarshal([]byte(attr.Value), out); err != nil {
		return fmt.Errorf("dynamo: document %q: %w: %w", key, docstore.ErrCorrupt, err)
	}
	return nil
}

// Exists reports whether an item is present under key. Errors collapse to
// false.
func (s *Store) Exists(ctx context.Context, key string) bool {
	item, err := s.getItem(ctx, key)
	return err == nil && item != nil
}

// Remove deletes the item. It returns ErrNotFound if absent.
func (s *Store) Remove(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: key},
		},
		ConditionExpression: aws.String("attribute_exists(#k)"),
		ExpressionAttributeNames: map[string]string{
			"#k": keyAttr,
		},
	})
	if err != nil {
		var cond *types.ConditionalCheckFailedException
		if errors.As(err, &cond) {
			return fmt.Errorf("dynamo: remove %q: %w", key, docstore.ErrNotFound)
		}
		return fmt.Errorf("dynamo: remove %q: %w", key, err)
	}
	return nil
}

func (s *Store) getItem(ctx context.Context, key string) (map[string]types.AttributeValue, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.table),
		ConsistentRead: aws.Bool(true),
		Key: map[string]types.AttributeValue{
			keyAttr: &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, err
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	return out.Item, nil
}
