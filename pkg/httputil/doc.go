// Package httputil provides the HTTP plumbing used by remote record sources.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only for
// NETWORK_ERROR failures:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    body, err = httputil.Fetch(ctx, client, url)
//	    return err
//	})
//
// # Fetch
//
// [Fetch] performs a GET and classifies the outcome. Network failures,
// 5xx responses and 429 rate limits are NETWORK_ERROR and retried; a 404 is
// NOT_FOUND; other non-2xx statuses are UPSTREAM_REJECTED and not retried. Every request is reported to the registered
// observability HTTP hooks.
//
// Defaults for [RetryWithBackoff]:
//
//   - Max attempts: 3
//   - Base backoff: 1 second, doubling
package httputil
