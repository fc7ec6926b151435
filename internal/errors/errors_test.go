package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := NotFoundf("book %s not found", "book-1")

	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrStorageFailure))
	assert.Equal(t, "book book-1 not found", err.Error())
}

func TestStorageFailureWrapsCause(t *testing.T) {
	cause := stderrors.New("disk gone")
	err := fmt.Errorf("handler: %w", StorageFailure("list books", cause))

	assert.True(t, Is(err, ErrStorageFailure))
	assert.True(t, Is(err, cause))
	assert.False(t, Is(err, ErrNotFound))
	assert.Equal(t, CodeStorageFailure, CodeOf(err))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeValidation, http.StatusBadRequest},
		{CodeStorageFailure, http.StatusInternalServerError},
		{CodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("boom")))
}

func TestWithDetailsKeepsCode(t *testing.T) {
	err := ErrValidation.WithDetails(map[string]string{"publish_date": "bad"})

	assert.Equal(t, CodeValidation, err.Code)
	assert.NotNil(t, err.Details)
	assert.Nil(t, ErrValidation.Details)
}
