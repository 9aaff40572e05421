// Package remote defines the records and service contracts of the
// community backend that the cachedservices package decorates.
//
// Implementations talk to the real backend. The memory subpackage holds an
// in-process implementation used by tests and the cachectl demo.
package remote
