package service

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"

	"tobehealthy_backend/internals/features/lessonhistories/errs"
)

func fh(size int64) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "file.png", Size: size}
}

func TestCheckMaximumFiles(t *testing.T) {
	assert.NoError(t, CheckMaximumFiles(nil))
	assert.NoError(t, CheckMaximumFiles([]*multipart.FileHeader{fh(10), fh(10), fh(10)}))

	err := CheckMaximumFiles([]*multipart.FileHeader{fh(10), fh(10), fh(10), fh(10)})
	assert.ErrorIs(t, err, errs.ErrExceedMaximumFiles)
}

func TestCheckMaximumFiles_EmptyPartsCountTowardCap(t *testing.T) {
	// The cap applies to the raw part count, so an empty part in a
	// four-part batch still pushes it over the limit.
	files := []*multipart.FileHeader{fh(10), fh(0), fh(10), fh(10)}
	assert.ErrorIs(t, CheckMaximumFiles(files), errs.ErrExceedMaximumFiles)

	// At the cap an empty part is accepted, just never stored.
	assert.NoError(t, CheckMaximumFiles([]*multipart.FileHeader{fh(10), fh(0), fh(10)}))
}

func TestHasNonEmpty(t *testing.T) {
	assert.False(t, hasNonEmpty(nil))
	assert.False(t, hasNonEmpty([]*multipart.FileHeader{nil, fh(0)}))
	assert.True(t, hasNonEmpty([]*multipart.FileHeader{fh(0), fh(1)}))
}
