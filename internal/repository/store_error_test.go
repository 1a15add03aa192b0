package repository

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"hotelhub/internal/errors"
)

func TestStoreErr(t *testing.T) {
	assert.Nil(t, storeErr(nil))
	assert.Same(t, gorm.ErrRecordNotFound, storeErr(gorm.ErrRecordNotFound))
	assert.Same(t, gorm.ErrDuplicatedKey, storeErr(gorm.ErrDuplicatedKey))

	err := storeErr(stderrors.New("connection refused"))
	assert.EqualError(t, err, "connection refused")
	assert.Contains(t, errors.StackOf(err), "TestStoreErr")
}
