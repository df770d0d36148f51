package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/divergex-backend/internal/http/response"
	"github.com/yungbote/divergex-backend/internal/requestdata"
)

// currentUserID pulls the authenticated user out of the request context and
// writes the 401 itself when it is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondError(c, 401, "unauthorized", fmt.Errorf("no request data in context"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}
