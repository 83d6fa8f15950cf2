// Package httputil holds the HTTP client plumbing shared by remote loaders.
//
// [Fetch] downloads a resource with a size limit and reports every request
// to the registered [observability.HTTPHooks]. Transient failures (network
// errors, 5xx and 429 responses) are retried on [DefaultBackoff]. A [Backoff]
// doubles its delay after each failed attempt, up to its cap; the Redis
// cache uses a shorter one.
//
//	body, err := httputil.Fetch(ctx, http.DefaultClient, url, 8<<20)
package httputil
