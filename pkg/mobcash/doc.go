// Package mobcash provides types, interfaces, and helpers for working with the
// mobcash administration API.
//
// # Overview
//
// The mobcash package defines the resource records (Network, Platform,
// Telephone, Transaction, Recharge, ...), the interfaces of the resource
// clients, and the building blocks shared by them: filters, the response
// envelope, pagination, errors, cache backends and interceptors. A concrete
// client is provided by the icash package.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/codelabbj/icash-admin/pkg/icash"
//	  "github.com/codelabbj/icash-admin/pkg/mobcash"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := icash.New(ctx, &mobcash.Config{
//	    BaseURL:     "https://api.zefast.net/",
//	    AccessToken: "...",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  networks, err := cli.Networks().List(ctx, mobcash.DefaultListFilter())
//	  if err != nil { log.Fatal(err) }
//	  _ = networks
//	}
//
// # Filters and pagination
//
// A Filter maps query field names to scalars. Setters drop nil and empty
// values so that absent fields are never sent. Every resource has a typed
// filter (NetworkFilters, TransactionFilters, ...) converting to a Filter.
//
// Some endpoints answer with a bare JSON array and others with an
// Envelope{count, next, previous, results}. Normalize always yields an
// Envelope; NewPageInfo derives the page count and the prev/next controls
// from it.
//
// # Cached reads
//
// List reads go through a keyed cache: one entry per resource and filter,
// with CacheKey giving the same key for any ordering of the same filter
// fields. Concurrent reads of a key share one request. Mutations invalidate
// every entry of the resource they touch, so observed lists refetch.
//
// # Errors
//
// Backend failures are ResponseError values carrying the status code and the
// messages of the payload. Connection failures are TransportError values.
// Helpers such as IsNotFound, IsValidation and IsTransport branch on them and
// UserMessage gives the text shown to the operator.
package mobcash
