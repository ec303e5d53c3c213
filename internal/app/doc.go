// Package app is the composition root of the storefront.
//
// Open loads the catalog seed, opens the persistence port (SQLite, or an
// in-memory map when storage.path is ":memory:") and builds the stores and
// use cases on top of it. Cart, order and session state are read from the
// port in parallel; a malformed record leaves that store empty.
//
// Serve exposes the shop over HTTP and shuts the server down gracefully when
// the context is cancelled.
package app
