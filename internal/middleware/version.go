package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/openblogdev/blogapi/internal/dto"
)

const versionKey = "api_version"

// APIVersion pins the route group's version on the context so handlers can
// shape version-dependent responses.
func APIVersion(version dto.Version) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(versionKey, version)
		c.Next()
	}
}

func Version(c *gin.Context) dto.Version {
	v, exists := c.Get(versionKey)
	if !exists {
		return dto.DefaultVersion
	}
	version, ok := v.(dto.Version)
	if !ok {
		return dto.DefaultVersion
	}
	return version
}
