package storage

import (
	"errors"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
)

func TestWithinEnd(t *testing.T) {
	assert.True(t, withinEnd("meters/2024-01-01T00:00:00", ""))
	assert.True(t, withinEnd("meters/2024-01-01T00:00:00", "meters/2024-02-01T00:00:00"))
	assert.False(t, withinEnd("meters/2024-02-01T00:00:00", "meters/2024-02-01T00:00:00"))
	assert.True(t, withinEnd("config/meter_1.xml", "~"))
}

func TestTranslateErr(t *testing.T) {
	missing := minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	assert.ErrorIs(t, translateErr(missing), ErrNotFound)

	noBucket := minio.ErrorResponse{Code: "NoSuchBucket"}
	assert.ErrorIs(t, translateErr(noBucket), ErrNotFound)

	denied := minio.ErrorResponse{Code: "AccessDenied"}
	assert.NotErrorIs(t, translateErr(denied), ErrNotFound)

	plain := errors.New("boom")
	assert.Equal(t, plain, translateErr(plain))
}
