// Package integration_test provides end-to-end tests against a real
// Cassandra node.
//
// # Running Integration Tests
//
// Integration tests are skipped by default when using -short flag:
//
//	go test -short ./...           # Skips integration tests
//	go test ./test/integration/... # Runs integration tests
//
// The tests require Docker and use testcontainers to spin up a Cassandra
// instance. They are resource-intensive and slower than the unit suites.
package integration_test
