// Package finder implements ordered provider resolution: given a logical
// factory identifier, it locates and instantiates exactly one concrete
// implementation by trying a fixed sequence of discovery strategies and
// stopping at the first success. Individual strategy failures never abort
// the search; only exhaustion of every strategy with no fallback supplied
// is a hard failure.
//
// The strategies, in order: provider registry via the ambient context
// loader, registry via the finder's own defining loader, the installation
// configuration file, a process property, a modular-runtime resource, and
// the caller-supplied fallback type name. Explicitly configured candidates
// that fail to instantiate are surfaced as errors; silent absences are not.
package finder
