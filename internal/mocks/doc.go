// Package mocks provides hand-rolled test doubles for the application's
// interfaces, with call tracking so tests can verify attempt counts and
// ordering without a mocking framework.
package mocks
