// Package s3 provides an Amazon S3 implementation of the blobstore.Store
// interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("reports/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	name, err := sel.Export(ctx, store)
//
// # Features
//
//   - Range reads for partial fetches
//   - Multipart streaming uploads through the SDK upload manager
//   - CRC32C integrity checksums on Put
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
