// Package s3 provides a BlobStore implementation backed by Amazon S3.
//
// Site blobs are stored under rootPrefix/site/innerPath. Streaming writes
// use the S3 upload manager for parallel multipart uploads.
//
// # Basic Usage
//
//	cfg, err := config.LoadDefaultConfig(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := s3blob.NewStore(s3.NewFromConfig(cfg), "my-bucket", "sites/")
//	err = blobstore.Mirror(ctx, local, store, "siteA", 1)
package s3
