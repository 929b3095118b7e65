// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes Prometheus instrumentation for the HTTP layer.

Middleware counts requests and observes latency per method/route/status.
Handler serves the scrape endpoint, mounted at GET /metrics by the router.
*/
package metrics
