// Package test holds helper functions that remove common boilerplate from
// package tests.
//
// The Expect functions report a failure and let the test continue. The
// Demand functions stop the test, which is what you want when the value is
// used by later parts of the same test.
//
// Success and failure are decided by type: a bool succeeds when true and an
// error succeeds when nil. A nil value is a success, because that is how
// errors report that nothing went wrong.
package test
