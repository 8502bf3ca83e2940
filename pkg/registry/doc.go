// Package registry provides the provider registration scopes used by the
// finder. A scope binds fully-qualified type names to constructors and keeps
// an ordered list of provider registrations per service type. The package
// also owns the process-wide default scope that implementations register
// into, in the manner of database/sql driver registration.
package registry
