package handler

import (
	"strconv"
	"time"

	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/request"
	"github.com/elitemotors/detailing-api/internal/presentation/http/dto/response"
	"github.com/elitemotors/detailing-api/pkg/apperror"
	"github.com/elitemotors/detailing-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// parseID reads a UUID path parameter, writing a 400 on failure
func parseID(c *gin.Context, param, label string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		response.BadRequest(c, "Invalid "+label+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// yearQuery reads ?year=, defaulting to the current year
func yearQuery(c *gin.Context, now time.Time) (int, bool) {
	raw := c.Query("year")
	if raw == "" {
		return now.Year(), true
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{
			{Field: "year", Message: "must be a number"},
		}))
		return 0, false
	}
	return year, true
}

func paginationQuery(q request.ListQuery) *pagination.PaginationParams {
	return &pagination.PaginationParams{Page: q.Page, PerPage: q.PerPage}
}

// dateBound parses an optional query date, writing a 422 on failure
func dateBound(c *gin.Context, field, raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, true
	}
	t, err := request.ParseDate(field, raw)
	if err != nil {
		response.Error(c, err)
		return time.Time{}, false
	}
	return t, true
}

// dateUpperBound is dateBound for an inclusive "to". A calendar date covers
// the whole day, so it becomes the start of the next one.
func dateUpperBound(c *gin.Context, field, raw string) (time.Time, bool) {
	t, ok := dateBound(c, field, raw)
	if !ok || raw == "" {
		return t, ok
	}
	if _, err := time.Parse(request.DateLayout, raw); err == nil {
		t = t.AddDate(0, 0, 1)
	}
	return t, true
}
