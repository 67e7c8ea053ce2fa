// Package errs holds the validation and lookup errors shared by the domain,
// the use cases and the repositories of the OTC desk.
//
// Every type pairs a sentinel with a struct carrying the offending parameter:
//   - ValueIsRequiredError (ErrValueIsRequired): a mandatory value is empty
//   - ValueIsInvalidError (ErrValueIsInvalid): a wallet, hash or asset fails its format
//   - ValueIsOutOfRangeError (ErrValueIsOutOfRange): a number outside [Min, Max], such as fee_bps
//   - ObjectNotFoundError (ErrObjectNotFound): no order or user with the given id
//   - ObjectAlreadyExistsError (ErrObjectAlreadyExists): an insert lost to an existing row
//   - VersionIsInvalidError (ErrVersionIsInvalid): a conditional order update matched no row
//
// Match with errors.Is against the sentinel; the HTTP adapter maps the
// validation family to 400 and ObjectNotFoundError to 404. Values are printed
// on a single line.
package errs
