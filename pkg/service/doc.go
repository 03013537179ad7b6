/*
Package service exposes the multivar kernel to hosts.

A Service turns typed requests into kernel calls. Around each call it validates the request
against configured limits, consults a ResultCache, records the computation in a Journal,
counts it in Prometheus and wraps it in an OpenTelemetry span. Cache and journal failures are
logged and never fail the operation.

Transports (HTTP, MCP, CLI, worksheets) use Dispatch, which decodes loosely typed parameters
into the request of the named operation.
*/
package service
