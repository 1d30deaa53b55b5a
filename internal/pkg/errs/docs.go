// Package errs provides the typed errors shared by the dispatch service and matchctl.
//
// Every type pairs a sentinel with a struct carrying the offending parameter:
//   - ValueIsRequiredError: a missing value, such as an empty instance file
//   - ValueIsInvalidError: a malformed value, such as orders[2].revenue in an instance
//   - ValueIsOutOfRangeError: a value outside its bounds, such as a grid coordinate
//   - ObjectNotFoundError: a lookup that found no driver, order or run
//   - VersionIsInvalidError: an instance file written for another format version
//
// Unwrap returns the sentinel only, so callers classify with errors.Is and read
// details with errors.As. The HTTP adapter maps the sentinels to status codes.
package errs
