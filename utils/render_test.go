package utils

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newContext(accept string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, engine := gin.CreateTestContext(w)
	engine.SetHTMLTemplate(template.Must(template.New(MessageView).Parse(`{{.Code}} {{.Message}}`)))
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if accept != "" {
		c.Request.Header.Set("Accept", accept)
	}
	return c, w
}

func TestNegotiate(t *testing.T) {
	tests := []struct {
		accept string
		html   bool
	}{
		{"", false},
		{"application/json", false},
		{"*/*", false},
		{"text/html,application/xhtml+xml", true},
	}
	for _, tt := range tests {
		c, _ := newContext(tt.accept)
		_, isHTML := Negotiate(c, "x.html").(HTMLResponder)
		assert.Equal(t, tt.html, isHTML, tt.accept)
	}
}

func TestJSONResponderFail(t *testing.T) {
	c, w := newContext("")
	JSONResponder{}.Fail(c, http.StatusNotFound, errors.New("Mesa no encontrada"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"status":false,"message":"Mesa no encontrada"}`, w.Body.String())
}

func TestHTMLResponderFailRendersMessageView(t *testing.T) {
	c, w := newContext("text/html")
	HTMLResponder{View: "mesa.html"}.Fail(c, http.StatusBadRequest, errors.New("id inválido"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "400 id inválido", w.Body.String())
}
