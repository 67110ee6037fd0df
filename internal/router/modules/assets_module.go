package modules

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-auth-service/pkg/response"
)

// AssetsModule serves the static front end for any path no route claims.
type AssetsModule struct {
	Engine *gin.Engine
	Dir    string
}

func NewAssetsModule(engine *gin.Engine, dir string) *AssetsModule {
	return &AssetsModule{Engine: engine, Dir: dir}
}

func (m *AssetsModule) Register(_ *gin.RouterGroup) {
	m.Engine.NoRoute(m.serve)
}

func (m *AssetsModule) serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	name := path.Clean("/" + c.Request.URL.Path)
	if strings.HasSuffix(name, "/") {
		name += "index.html"
	}
	file := filepath.Join(m.Dir, filepath.FromSlash(name))
	info, err := os.Stat(file)
	if err == nil && info.IsDir() {
		file = filepath.Join(file, "index.html")
		info, err = os.Stat(file)
	}
	if err != nil || info.IsDir() {
		response.Error[any](c, http.StatusNotFound, "not found", nil)
		return
	}
	c.File(file)
}
