// Package openapi loads the OpenAPI 3 description of the booking form HTTP
// API, serves it, and checks incoming requests against it. kin-openapi types
// stay behind the Description wrapper except for Spec.
package openapi
