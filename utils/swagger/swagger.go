package swagger

import (
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swaggo/swag"
)

type SwaggerConfig struct {
	Title         string
	SwaggerDocURL string
	AuthURL       string
}

const swaggerHTML = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>{{.Title}}</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@5.17.14/swagger-ui.css" />
</head>
<body>
    <p style="font-family: sans-serif; margin: 12px;">
        Reviewer endpoints need a bearer token from <code>POST {{.AuthURL}}</code>.
    </p>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5.17.14/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            window.ui = SwaggerUIBundle({
                url: "{{.SwaggerDocURL}}",
                dom_id: "#swagger-ui",
                persistAuthorization: true
            });
        };
    </script>
</body>
</html>`

var swaggerTemplate = template.Must(template.New("swagger").Parse(swaggerHTML))

// ServeSwaggerUI serves the Swagger UI page for the registered API document
func ServeSwaggerUI(config SwaggerConfig) gin.HandlerFunc {
	if config.Title == "" {
		config.Title = "API Documentation"
	}
	if config.SwaggerDocURL == "" {
		config.SwaggerDocURL = "/swagger/doc.json"
	}
	if config.AuthURL == "" {
		config.AuthURL = "/api/admin/login"
	}

	return func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		if err := swaggerTemplate.Execute(c.Writer, config); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render Swagger UI"})
		}
	}
}

// ServeDoc serves the OpenAPI document registered with swag
func ServeDoc() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "API documentation is not registered"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}
