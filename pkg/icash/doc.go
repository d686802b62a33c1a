// Package icash provides the primary entry point for constructing a mobcash
// administration API client that implements the mobcash.Client interface.
//
// It layers configuration, HTTP transport, bearer-token injection and the
// query cache on top of the resource interfaces and types defined in the
// mobcash package.
//
// Quick start
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
//
//	  cli, err := icash.NewWithToken(ctx, "https://api.zefast.net/", "eyJhbGciOi...")
//	  if err != nil { log.Fatal(err) }
//
//	  enable := false
//	  _, err = cli.Networks().Update(ctx, "4", &mobcash.NetworkPatch{Enable: &enable})
//	  if err != nil { log.Fatal(err) }
//	}
//
// Caching
//
// Every list read goes through a process-wide query store owned by the
// client. Set Config.Cache to share payloads between processes, for example
// with a NATS JetStream key-value bucket:
//
//	cache, err := mobcash.NewCacheFromConfig(&mobcash.CacheConfig{
//	  Type: mobcash.CacheTypeNATS,
//	  NATS: &mobcash.NATSKVConfig{URL: "nats://127.0.0.1:4222"},
//	})
package icash
