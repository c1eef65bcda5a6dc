/*
Package writers holds the bundled domain writers and the shared
content-assets writer.

Each writer pushes one slice of the snapshot to the Engine API through the
session's authenticated client. Resources are created first; when the engine
reports they already exist, they are updated only if the run was started
with "force", otherwise they are left untouched.
*/
package writers
