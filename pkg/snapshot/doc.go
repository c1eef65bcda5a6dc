// Package snapshot loads a site snapshot from a YAML or JSON dump on disk.
//
// Asset entries reference files instead of embedding bytes: each theme or
// content asset names a source path, resolved against the directory of the
// snapshot file, and the loader reads the file contents into the snapshot.
package snapshot
