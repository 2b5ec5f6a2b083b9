package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDuplicateKeyError(t *testing.T) {
	err := errors.New("Error 1062 (23000): Duplicate entry 'alice' for key 'users.uq_users_username'")
	assert.ErrorIs(t, duplicateKeyError(err), ErrDuplicateUsername)

	err = errors.New("Error 1062 (23000): Duplicate entry 'alice@x.com' for key 'users.uq_users_email'")
	assert.ErrorIs(t, duplicateKeyError(err), ErrDuplicateEmail)

	assert.Nil(t, duplicateKeyError(errors.New("Error 1045: Access denied")))
}

func TestDuplicateKeyErrorIgnoresEntryValue(t *testing.T) {
	// The duplicate entry value is user-controlled; a username containing
	// "email" must still classify by the key name.
	err := errors.New("Error 1062 (23000): Duplicate entry 'email_fan' for key 'users.uq_users_username'")
	assert.ErrorIs(t, duplicateKeyError(err), ErrDuplicateUsername)

	err = errors.New("Error 1062 (23000): Duplicate entry 'username@x.com' for key 'users.uq_users_email'")
	assert.ErrorIs(t, duplicateKeyError(err), ErrDuplicateEmail)
}

func TestTranslateConnectivityFaults(t *testing.T) {
	for _, err := range []error{
		driver.ErrBadConn,
		context.DeadlineExceeded,
		errors.New("dial tcp 127.0.0.1:3306: connect: connection refused"),
		errors.New("invalid connection"),
		fmt.Errorf("write: %w", errors.New("broken pipe")),
		errors.New("read tcp: i/o timeout"),
	} {
		assert.ErrorIs(t, translate(err), ErrUnavailable, "error %v", err)
	}
}

func TestTranslatePassesOtherErrorsThrough(t *testing.T) {
	err := errors.New("Error 1146: Table 'monitoring.users' doesn't exist")
	assert.Equal(t, err, translate(err))
	assert.NoError(t, translate(nil))
}
