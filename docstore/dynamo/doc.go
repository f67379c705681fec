// Package dynamo implements docstore.DocumentStore on DynamoDB.
//
// It exists for deployments that keep site metadata off the local disk
// while still serving content blobs locally or from object storage. Items
// carry the document's JSON serialization in a string attribute, so
// documents written locally and exported to DynamoDB stay byte-identical.
//
// DynamoDB item writes are atomic, so this backend has no analogue of the
// local store's backup rotation or read-time recovery.
package dynamo
