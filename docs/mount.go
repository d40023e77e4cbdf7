package docs

import (
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"
)

// Mount publica la UI en /docs (documento en /docs/swagger.json) y el documento
// registrado en swag en /openapi.json. Todo sale del binario, no del directorio de trabajo.
func Mount(app fiber.Router) {
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FilePath:    "docs/swagger.json",
		FileContent: []byte(swaggerJSON),
		Path:        "docs",
		Title:       SwaggerInfo.Title,
	}))

	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})
}
