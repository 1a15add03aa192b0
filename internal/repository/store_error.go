package repository

import (
	stderrors "errors"

	"gorm.io/gorm"

	"hotelhub/internal/errors"
)

// storeErr records the stack on unexpected store failures. Not-found and
// unique violations are classified later and pass through untouched.
func storeErr(err error) error {
	if err == nil || stderrors.Is(err, gorm.ErrRecordNotFound) || stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return err
	}
	return errors.WithStack(err)
}
