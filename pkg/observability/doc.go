/*
Package observability provides tools for monitoring tours.

It turns the controller's lifecycle hooks into Prometheus metrics and structured
log lines, and chains several hook sets so they can be installed together.
*/
package observability
