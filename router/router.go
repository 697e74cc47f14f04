package router

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xgrece/bodegon/config"
	"github.com/xgrece/bodegon/controllers"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/middlewares"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templatesFS embed.FS

// LoadTemplates parses the embedded HTML views.
func LoadTemplates() (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"title": func(s string) map[string]string { return map[string]string{"Title": s} },
	}).ParseFS(templatesFS, "templates/*.html")
}

// SetupRouter wires every route. hub receives record events for the websocket screens;
// relay, when not nil, receives them as well.
func SetupRouter(db *gorm.DB, cfg *config.Config, hub *kds.Hub, relay kds.Notifier) *gin.Engine {
	r := gin.New()

	r.SetHTMLTemplate(template.Must(LoadTemplates()))

	rateLimiter := middlewares.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst)
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(cfg.Server.CORSOrigin))
	r.Use(rateLimiter.RateLimit())

	if hub == nil {
		hub = kds.NewHub()
	}
	var notifier kds.Notifier = hub
	if relay != nil {
		notifier = kds.Fanout{hub, relay}
	}

	clientCtrl := controllers.NewClientController(db, notifier)
	tableCtrl := controllers.NewTableController(db, notifier)
	orderCtrl := controllers.NewOrderController(db, notifier)
	exportCtrl := controllers.NewExportController(db)
	feedCtrl := controllers.NewFeedController(hub)

	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", nil)
	})
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// CLIENTES
	clientes := r.Group("/clientes")
	{
		clientes.POST("/", clientCtrl.Create)
		clientes.GET("/", clientCtrl.List)
		clientes.GET("/:id", clientCtrl.Get)
		clientes.PUT("/:id", clientCtrl.Update)
		clientes.DELETE("/:id", clientCtrl.Delete)
	}

	// MESAS
	mesas := r.Group("/mesas")
	{
		mesas.POST("/", tableCtrl.Create)
		mesas.GET("/", tableCtrl.List)
		mesas.GET("/:id", tableCtrl.Get)
		mesas.PUT("/:id", tableCtrl.Update)
		mesas.DELETE("/:id", tableCtrl.Delete)
	}

	// PEDIDOS
	pedidos := r.Group("/pedidos")
	{
		pedidos.POST("/", orderCtrl.Create)
		pedidos.GET("/", orderCtrl.List)
		pedidos.GET("/:id", orderCtrl.Get)
		pedidos.PUT("/:id", orderCtrl.Update)
		pedidos.DELETE("/:id", orderCtrl.Delete)
		pedidos.GET("/:id/comanda", middlewares.TicketLogger(), exportCtrl.Ticket)
	}

	// Form pages
	r.GET("/pedido", orderCtrl.OrderPage)
	r.POST("/create_pedido", orderCtrl.SubmitOrderForm)

	r.GET("/exportar", exportCtrl.Workbook)

	// Kitchen / floor display screens
	r.GET("/ws/:screen", feedCtrl.Subscribe)

	return r
}
