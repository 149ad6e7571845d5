// Package memoryengine provides an in-process implementation of the lending journal.
//
// It has the same Query/Append semantics as postgresengine, including the optimistic concurrency
// check, and keeps the events in a slice. It is meant for demos and tests, nothing survives the process.
package memoryengine
