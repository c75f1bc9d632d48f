// Package blobstore provides storage abstraction for exported search reports.
//
// Store is the interface for reading and writing immutable blobs.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: Local filesystem with atomic rename-on-close writes
//   - MemoryStore: In-memory store for tests
//   - minio.Store: MinIO and other S3-compatible storage
//   - s3.Store: Amazon S3 with range reads and multipart uploads
//
// # Custom Implementations
//
// Implement the Store interface to support custom storage backends:
//
//	type Store interface {
//	    Open(ctx, name) (Blob, error)            // Open for reading
//	    Create(ctx, name) (WritableBlob, error)  // Create for writing
//	    Put(ctx, name, data) error               // Atomic write
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
package blobstore
