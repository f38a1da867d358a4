package utils

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every backend endpoint answers with. The
// dev server writes it and the API client decodes it.
type JSONResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	raw, err := json.Marshal(data)
	if err != nil {
		RespondError(c, 500, err)
		return
	}
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    raw,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}
