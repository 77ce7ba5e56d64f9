// Package render selects a response representation from the request's Accept
// header. The offered formats are a fixed set: JSON (default), XML and YAML.
package render

import (
	"encoding/xml"

	"github.com/gin-gonic/gin"
	sharedError "github.com/members-api/go-api-server/internal/shared/error"
	"github.com/members-api/go-api-server/internal/shared/handler"
	"gopkg.in/yaml.v3"
)

const (
	MIMEJSON = "application/json"
	MIMEXML  = "application/xml"
	MIMEYAML = "text/yaml"

	yamlContentType = "text/yaml; charset=utf-8"
)

// Negotiated writes obj in the format matched against the Accept header.
// Clients that accept none of the offered formats get JSON, so errors on the
// negotiated paths stay machine-readable.
func Negotiated(c *gin.Context, code int, obj any) {
	switch c.NegotiateFormat(MIMEJSON, MIMEXML, MIMEYAML) {
	case MIMEXML:
		XML(c, code, obj)
	case MIMEYAML:
		YAML(c, code, obj)
	default:
		c.JSON(code, obj)
	}
}

// XML writes obj as an XML document with an explicit declaration. Gin's own
// XML render omits the prolog, and this API's documents must start with it.
func XML(c *gin.Context, code int, obj any) {
	body, err := xml.Marshal(obj)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.Data(code, MIMEXML, append([]byte(xml.Header), body...))
}

// YAML writes obj as a YAML mapping with a text/yaml content type.
func YAML(c *gin.Context, code int, obj any) {
	body, err := yaml.Marshal(obj)
	if err != nil {
		handler.RespondError(c, err, sharedError.InternalServerError)
		return
	}

	c.Data(code, yamlContentType, body)
}
