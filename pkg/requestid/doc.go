// Package requestid assigns each HTTP request a stable identifier for
// tracing across the authorization surface and its logs.
//
// The middleware accepts a well-formed inbound X-Request-ID header or
// generates a uuid, echoes it on the response, and makes it available via
// FromContext. LoggerExtractor plugs the id into the logger factory so
// every record emitted while handling the request carries it.
package requestid
