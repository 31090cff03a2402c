// Package errs provides the error types shared by the ordering service.
//
// Every error kind pairs a sentinel with a detail struct:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: input validation
//   - CartIsInvalidError: a rejected cart, pointing at the offending group and item
//   - ObjectNotFoundError, ObjectExpiredError: lookups
//   - InvalidTransitionError: a status change the state machine refuses
//   - PersistenceError: a storage failure; the transaction was rolled back
//
// The detail structs unwrap to their sentinel, so callers classify with
// errors.Is and read the details with errors.As:
//
//	var cartErr *errs.CartIsInvalidError
//	if errors.As(err, &cartErr) {
//	    log.Printf("group %d item %d", cartErr.GroupIndex, cartErr.ItemIndex)
//	}
//
// ErrPermissionIsDenied and ErrCredentialIsInvalid are plain sentinels wrapped
// with fmt.Errorf where context helps.
package errs
