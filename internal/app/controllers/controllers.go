// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/eokonkwo/campuscore/internal/app/models/dto"
)

// parseIDParam reads a positive int64 path parameter. On failure it writes
// a 400 response and returns false; callers must return immediately.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		errorDetail = errorDetail.WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// queryInt64 reads an optional int64 query parameter, returning 0 when the
// parameter is absent or not a number.
func queryInt64(ctx *gin.Context, name string) int64 {
	v, err := strconv.ParseInt(ctx.Query(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// queryInt reads an optional int query parameter, returning 0 when the
// parameter is absent or not a number.
func queryInt(ctx *gin.Context, name string) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil {
		return 0
	}
	return v
}
