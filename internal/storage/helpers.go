package storage

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

// rollbackWithError rolls the transaction back on error, preserving the
// original failure.
func rollbackWithError(rb interface{ Rollback() error }, err *error) {
	if *err == nil {
		return
	}
	_ = rb.Rollback()
}
