// Package ingest consumes embedding-ready clip batches from RabbitMQ
// and writes them through the indexer.
//
// Each delivery is a JSON array of clip records. The consumer
// optionally generates thumbnails for the batch, then upserts it.
// Acknowledgement follows the batch summary: validation skips and
// per-record failures still ack (the summary is the record of what
// happened), a store write failure nacks with requeue so the batch is
// retried, and a malformed payload nacks without requeue to keep
// poison messages out of the loop.
//
// # FX Integration
//
//	app := fx.New(
//	    logger.FXModule,
//	    qdrant.FXModule,
//	    indexer.FXModule,
//	    ingest.FXModule,
//	    fx.Provide(func() ingest.Config {
//	        return ingest.DefaultConfig()
//	    }),
//	)
//
// The module registers lifecycle hooks that start consuming on
// application start and drain the connection on stop.
package ingest
