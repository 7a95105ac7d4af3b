// Package http implements the HTTP transport of the vault server.
//
// It exposes the vault routes (create, login, identity verification,
// destruction) and the file routes (list, upload, download), plus the
// middleware chain in front of them: panic recovery, trace ids, access
// logging, CORS, compression and bearer authentication. Errors from the
// service layer are turned into {"detail": ...} answers by one status table.
package http
