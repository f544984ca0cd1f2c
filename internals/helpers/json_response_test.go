package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(25, 2, 10)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 10, p.PerPage)
	assert.EqualValues(t, 25, p.Total)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)
}

func TestBuildPaginationFromPage_EmptyResult(t *testing.T) {
	p := BuildPaginationFromPage(0, 1, 10)
	assert.Equal(t, 1, p.TotalPages)
	assert.False(t, p.HasNext)
	assert.False(t, p.HasPrev)
}

func TestBuildPaginationFromPage_NormalizesBadInput(t *testing.T) {
	p := BuildPaginationFromPage(5, 0, 0)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
}

func TestStatusToErrorCode(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", statusToErrorCode(fiber.StatusNotFound))
	assert.Equal(t, "BAD_REQUEST", statusToErrorCode(fiber.StatusBadRequest))
	assert.Equal(t, "INTERNAL_ERROR", statusToErrorCode(fiber.StatusBadGateway))
	assert.Equal(t, "ERROR", statusToErrorCode(fiber.StatusTeapot))
}
