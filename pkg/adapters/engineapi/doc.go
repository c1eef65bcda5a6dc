/*
Package engineapi talks HTTP to the remote Engine API.

API implements ports.EngineAPI: it turns certificate files into a TLS
configuration scoped to one session and exchanges credentials for a token.
Client is the authenticated JSON/multipart client the bundled writers use.
*/
package engineapi
