// Package search orchestrates the read path: embed the query text,
// plan sub-queries, dispatch them against the store, fuse the results,
// and present them with presigned thumbnail URLs.
//
// The service degrades instead of failing where a partial answer
// exists: an unavailable embedding gateway turns hybrid and multimodal
// requests into keyword searches, and a store without a native fusion
// pipeline falls back to client-side fusion. Pure vector modes have no
// keyword leg to fall back on and surface the error.
//
// # Usage
//
//	svc := search.NewService(search.ServiceParams{
//	    Config:   search.DefaultConfig(),
//	    Store:    store,
//	    Planner:  pl,
//	    Engine:   engine,
//	    Embedder: embedder,
//	    Presign:  objects,
//	    Logger:   log,
//	})
//
//	resp, err := svc.Search(ctx, search.Request{
//	    QueryText:  "sunset over the harbor",
//	    SearchType: "hybrid",
//	})
package search
