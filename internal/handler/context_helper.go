package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/school-records/pkg/errors"
	"github.com/noah-isme/school-records/pkg/response"
)

// indexParam reads a path parameter holding a record index. It writes a
// validation error and returns false when the value is not an integer.
func indexParam(c *gin.Context, name string) (int, bool) {
	raw := c.Param(name)
	index, err := strconv.Atoi(raw)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s must be an integer, got %q", name, raw)))
		return 0, false
	}
	return index, true
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}
