package node

import "github.com/gin-gonic/gin"

// Node is one addressable service process in the coordination mesh.
type Node interface {
	NodeID() string
	Kind() string
	HTTPRouter() *gin.Engine
}
