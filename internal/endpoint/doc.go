// Package endpoint opens transfer sources and sinks from CLI specs.
//
// Supported specs:
//   - "-"                          stdin (source) or stdout (sink)
//   - local file paths             read or created on open
//   - http:// and https:// URLs    sources only
//   - s3://, gs://, mem:// URLs    object storage via gocloud.dev/blob
//
// Blob specs take the form scheme://bucket/path/key; query parameters
// pass through to the bucket URL, so MinIO-style endpoint overrides work:
//
//	s3://mybucket/data.bin?endpoint=http://localhost:9000&use_path_style=true
//
// Each opened endpoint reports its total size when the backend can tell
// us (file Stat, HTTP HEAD, blob attributes), letting callers seed the
// transfer with an expected size for percent and ETA reporting.
package endpoint
