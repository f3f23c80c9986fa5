// Package http provides an HTTP client for fetching whole objects.
//
// This package handles:
//   - HEAD requests to learn the object size before a transfer starts
//   - GET requests returning the body as a stream
//   - Retry with exponential backoff while initiating requests
//
// Retries stop once a body has been handed to the caller: a failure in
// the middle of a streaming body surfaces as a read error on the stream,
// which the transfer core reports without retrying.
//
// # Usage
//
//	client := http.NewClient(http.DefaultOptions())
//
//	info, err := client.Head(ctx, url)
//	// info.Size, info.ContentType
//
//	body, length, err := client.Get(ctx, url)
//	defer body.Close()
package http
