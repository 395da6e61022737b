// Package clip defines the atomic indexed unit of the video search system:
// a time-bounded segment of a video together with one modality embedding.
//
// The package is intentionally free of I/O. It provides:
//
//   - [Clip], the record written to and read from the index store
//   - [DeriveClipID], the deterministic identity of a (video, time range) pair
//   - [ValidateEmbedding], the admission check every vector passes before
//     it may be written
//
// Identity is derived from (video_id, start, end) at 2-decimal precision,
// so re-ingesting the same time range collides onto the same document
// instead of duplicating it. Multiple modality records may share a ClipID
// but must agree on that triple.
package clip
