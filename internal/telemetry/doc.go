// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing, logs and metrics across recipedesk.
//
// The package configures OTLP HTTP export, with support for endpoints that
// carry a base path (Grafana Cloud style "/otlp") or a bare host.
package telemetry
