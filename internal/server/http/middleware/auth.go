package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	// AdminCodeHeader carries the shared admin secret.
	AdminCodeHeader = "X-Admin-Code"
	// UnauthorizedMessage is returned for a missing or wrong admin code.
	UnauthorizedMessage = "Unauthorized"
)

// Authorizer validates the admin credential.
type Authorizer interface {
	Authorize(credential string) error
}

type errorBody struct {
	Error string `json:"error"`
}

// AdminRequired rejects requests without a valid admin code before any handler runs.
func AdminRequired(gate Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.Authorize(c.GetHeader(AdminCodeHeader)); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, errorBody{Error: UnauthorizedMessage})
			return
		}
		c.Next()
	}
}
