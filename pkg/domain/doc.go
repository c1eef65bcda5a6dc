/*
Package domain contains the core models of the sitepush pipeline.

It defines the closed set of content domains a run can push, the read-only
site snapshot the writers consume, the authenticated Session shared by every
writer of a run, and the typed errors surfaced at the trust and writer
boundaries. This package is kept pure and free of I/O.

# Key Entities

  - Domain: A tagged variant naming one content domain (site, snippets, ...).
  - Snapshot: The fully loaded, in-memory representation of the source site.
  - Session: Endpoint, token and per-run trust material produced by the trust step.
  - WriterError: Identifies which domain failed and why.
*/
package domain
