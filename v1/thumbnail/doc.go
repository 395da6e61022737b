// Package thumbnail generates clip preview images.
//
// For each clip it extracts a frame at the clip midpoint from the
// source video, uploads it to the object store, and stamps the clip
// record's thumbnail URI. Each source video is downloaded once per run
// and shared by all of its clips. Per-clip failures are counted, never
// job-fatal: a clip without a thumbnail is still searchable.
package thumbnail
