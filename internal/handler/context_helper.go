package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/abitur-registration/internal/middleware"
	"github.com/noah-isme/abitur-registration/internal/models"
	appErrors "github.com/noah-isme/abitur-registration/pkg/errors"
)

func sessionFromContext(c *gin.Context) *models.Session {
	return middleware.SessionFromContext(c)
}

// pathID parses a positive integer route parameter.
func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "invalid "+name)
	}
	return id, nil
}
