package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/crackgrid/internal/middleware"
)

// yearParam reads the :year path parameter, answering 400 when it is not a number
func yearParam(ctx *gin.Context) (int, bool) {
	year, err := strconv.Atoi(ctx.Param("year"))
	if err != nil {
		middleware.HandleBadParam(ctx, "year", "Year must be a valid number")
		return 0, false
	}
	return year, true
}

// idParam reads a positive int64 path parameter
func idParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		middleware.HandleBadParam(ctx, name, name+" must be a positive number")
		return 0, false
	}
	return id, true
}

// parseIDList parses a comma-separated list such as "1,2,3"
func parseIDList(raw string) ([]int64, error) {
	ids := []int64{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
