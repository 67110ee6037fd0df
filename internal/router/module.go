package router

import "github.com/gin-gonic/gin"

// Module registers one feature's routes on the root group.
type Module interface {
	Register(rg *gin.RouterGroup)
}
