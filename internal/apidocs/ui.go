package apidocs

import (
	"html/template"
	"net/http"

	"github.com/phrazzld/signup-api/internal/platform/logger"
)

var uiTemplate = template.Must(template.New("swagger").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js" crossorigin></script>
  <script>
    window.onload = function () {
      window.ui = SwaggerUIBundle({ url: {{.SpecURL}}, dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>
`))

// UIHandler serves a Swagger UI page that loads the document from specURL.
func UIHandler(title, specURL string) http.Handler {
	data := struct {
		Title   string
		SpecURL string
	}{title, specURL}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := uiTemplate.Execute(w, data); err != nil {
			logger.FromContext(r.Context()).Error("failed to render Swagger UI", "error", err)
		}
	})
}
