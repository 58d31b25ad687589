// Package web serves the browser recorder page.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var content embed.FS

// Register mounts the recorder page at / and its assets under /static.
func Register(router gin.IRoutes) {
	assets, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}

	router.GET("/", func(c *gin.Context) {
		c.FileFromFS("/", http.FS(assets))
	})
	router.StaticFS("/static", http.FS(assets))
}
