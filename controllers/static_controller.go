package controllers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

// StaticController serves the admin dashboard page and its sibling assets.
type StaticController struct {
	dir           string
	dashboardFile string
}

func NewStaticController(dir, dashboardFile string) *StaticController {
	return &StaticController{
		dir:           dir,
		dashboardFile: dashboardFile,
	}
}

func (sc *StaticController) Dashboard(c *gin.Context) {
	sc.serve(c, sc.dashboardFile)
}

// NoRoute serves a static asset when one matches the path and reports an
// unknown endpoint otherwise.
func (sc *StaticController) NoRoute(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Error(endpointNotFound())
		return
	}
	sc.serve(c, c.Request.URL.Path)
}

func (sc *StaticController) serve(c *gin.Context, name string) {
	file, ok := sc.resolve(name)
	if !ok {
		c.Error(endpointNotFound())
		return
	}
	c.File(file)
}

// resolve maps a request path to a regular file inside the static
// directory. Paths cannot climb out of it, and dotfiles are never served.
func (sc *StaticController) resolve(name string) (string, bool) {
	cleaned := path.Clean("/" + name)
	if cleaned == "/" {
		return "", false
	}
	for _, segment := range strings.Split(cleaned, "/") {
		if strings.HasPrefix(segment, ".") {
			return "", false
		}
	}

	file := filepath.Join(sc.dir, filepath.FromSlash(cleaned))
	info, err := os.Stat(file)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return file, true
}

func endpointNotFound() error {
	return utils.ServiceError{Kind: utils.ErrNotFound, Message: "Endpoint not found"}
}
