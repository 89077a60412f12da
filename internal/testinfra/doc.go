// Package testinfra starts throwaway PostgreSQL and MongoDB containers for
// repository tests. Everything here is behind the integration build tag:
//
//	go test -tags integration ./internal/...
package testinfra
