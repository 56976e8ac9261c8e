package helper_util

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// maxPageSize caps list responses regardless of what the client asks for.
const maxPageSize = 100

func GetPaginationParams(c *gin.Context) (limit int, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		return 0, 0, errors.New("invalid limit parameter")
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, errors.New("invalid offset parameter")
	}
	return limit, offset, nil
}
