// Package minio is the object-store client for videos and thumbnails.
//
// It wraps the MinIO S3 client with the narrow contract this system
// needs: download a source video, upload a generated thumbnail, and
// presign time-limited GET URLs for search results. Storage locations
// travel through the system as s3:// URIs; [ParseURI] and [BuildURI]
// convert between the URI form and (bucket, key) pairs.
//
// # Basic Usage
//
//	store, err := minio.NewStore(minio.StoreParams{
//	    Config: minio.DefaultConfig(),
//	    Logger: log,
//	})
//	if err != nil {
//	    return err
//	}
//
//	bucket, key, err := minio.ParseURI("s3://videos/raw/vid-123.mp4")
//	if err != nil {
//	    return err
//	}
//	if err := store.GetToFile(ctx, bucket, key, "/tmp/vid-123.mp4"); err != nil {
//	    return err
//	}
//
//	url, err := store.PresignGet(ctx, "thumbnails", "thumbnails/abc.jpg")
//
// An empty bucket argument falls back to the configured default bucket.
//
// # FX Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    minio.FXModule,
//	    fx.Provide(func() *minio.Config {
//	        return minio.DefaultConfig()
//	    }),
//	)
//
// # Configuration
//
// Environment variables (via the yaml/env tags on [Config]):
//
//	MINIO_ENDPOINT=localhost:9000
//	MINIO_ACCESS_KEY_ID=minioadmin
//	MINIO_SECRET_ACCESS_KEY=minioadmin
//	MINIO_USE_SSL=false
//	MINIO_BUCKET_NAME=thumbnails
//	MINIO_REGION=us-east-1
//	MINIO_PRESIGN_TTL=1h
package minio
