package middleware

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"habla-jungla/internal/api/errors"
)

// MaxUploadSize caps request bodies at maxMB megabytes. Reads past the cap
// fail with *http.MaxBytesError.
func MaxUploadSize(maxMB int) gin.HandlerFunc {
	limit := int64(maxMB) << 20
	return func(c *gin.Context) {
		if c.Request.ContentLength > limit {
			HandleError(c, errors.NewTooLargeError(fmt.Sprintf("Upload exceeds %d MB", maxMB)))
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}

// IsTooLarge reports whether err came from reading past the upload cap
func IsTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}
