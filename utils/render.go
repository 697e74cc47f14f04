package utils

import (
	"github.com/gin-gonic/gin"
)

// MessageView renders confirmations and errors for HTML clients.
const MessageView = "mensaje.html"

// Responder writes the outcome of a handler in one output encoding.
type Responder interface {
	Respond(c *gin.Context, code int, message string, data interface{})
	Fail(c *gin.Context, code int, err error)
}

// JSONResponder writes the JSONResponse envelope.
type JSONResponder struct{}

func (JSONResponder) Respond(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, code, message, data)
}

func (JSONResponder) Fail(c *gin.Context, code int, err error) {
	RespondError(c, code, err)
}

// HTMLResponder renders View with the same status/message/data triple the JSON
// envelope carries. Failures always render MessageView.
type HTMLResponder struct {
	View string
}

func (h HTMLResponder) Respond(c *gin.Context, code int, message string, data interface{}) {
	c.HTML(code, h.View, gin.H{
		"Status":  code >= 200 && code < 300,
		"Message": message,
		"Data":    data,
	})
}

func (h HTMLResponder) Fail(c *gin.Context, code int, err error) {
	c.HTML(code, MessageView, gin.H{
		"Status":  false,
		"Code":    code,
		"Message": err.Error(),
	})
}

// Negotiate picks the responder from the Accept header. JSON wins unless the client
// prefers HTML.
func Negotiate(c *gin.Context, view string) Responder {
	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		return HTMLResponder{View: view}
	}
	return JSONResponder{}
}
