// Package openapi exports schema documents as OpenAPI 3 component schemas so
// dictionaries can be consumed by API tooling. kin-openapi provides the schema
// model, validation, and round-trip loading.
package openapi
