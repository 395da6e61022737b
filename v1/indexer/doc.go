// Package indexer writes clip records into the vector store.
//
// It owns the write path: schema bootstrap, per-record validation with
// partial-failure summaries, merging per-modality records into one
// multi-vector document per clip, deletion of a video's clips, and
// collection-to-collection bulk copies for migrations.
//
// Records that fail validation are skipped and counted, never aborting
// the batch; write failures are counted per record. Callers inspect the
// returned [Summary] to decide whether a batch may be acknowledged.
//
// # Usage
//
//	svc := indexer.NewService(indexer.ServiceParams{
//	    Config: indexer.DefaultConfig(),
//	    Store:  store,
//	    Logger: log,
//	})
//
//	summary, err := svc.Upsert(ctx, clips)
//	if err != nil {
//	    return err
//	}
//	log.Info("batch indexed", nil, map[string]interface{}{
//	    "succeeded": summary.Succeeded,
//	    "skipped":   summary.Skipped,
//	})
package indexer
