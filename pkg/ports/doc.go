// Package ports declares the interfaces the navigation engine depends
// on. Adapters (session stores, action handlers) implement these; the
// engine never imports an adapter.
package ports
