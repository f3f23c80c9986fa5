// Package progress renders live transfer progress to a terminal.
//
// This package periodically samples a transfer and writes human-readable
// progress to stderr (or any writer), including bytes moved, transfer
// speed, and, when the total size is known, percent complete and ETA.
//
// # Usage
//
//	t := transfer.New(src, dst, transfer.WithExpectedSize(size))
//
//	reporter := progress.NewReporter(t, progress.Options{
//	    Units: transfer.Binary,
//	    Label: "example.bin -> s3://bucket/example.bin",
//	})
//	reporter.Start()
//
//	_, _, err := t.Finish()
//	reporter.Stop()
//
// # Output Format
//
//	[xfer] example.bin -> s3://bucket/example.bin
//	[xfer] 1.13 GiB | 98.20 MiB/s | 45.2% | ETA: 14s
//	[xfer] Total: 2.50 GiB in 26s (98.45 MiB/s average)
//
// [Bar] is an alternative renderer drawing a terminal progress bar.
package progress
