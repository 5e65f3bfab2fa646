package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/org-user-api/internal/errors"
)

// parseIDParam reads a positive integer path parameter. Malformed values are
// reported the same way as invalid body fields.
func parseIDParam(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apierrors.NewValidationParamError(name + " must be a positive integer")
	}
	return id, nil
}

func invalidBody(err error) error {
	return apierrors.NewValidationParamError("invalid request body: " + err.Error())
}
