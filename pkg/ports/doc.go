/*
Package ports defines the driven ports (interfaces) of the sitepush pipeline.

These interfaces decouple the runner from the remote Engine API, from the
concrete domain writers and from lock backends, so each can be replaced in
tests or swapped for another implementation.

# Key Interfaces

  - EngineAPI: Builds per-session trust material and requests API tokens.
  - Writer: The lifecycle every domain writer implements (Prepare, then Write once).
  - Host: What a writer may use from the runner (session, snapshot, shared asset writer).
  - AssetWriter: The shared content-assets sub-writer.
  - DistributedLocker: Keeps two runs from pushing to the same endpoint at once.
*/
package ports
