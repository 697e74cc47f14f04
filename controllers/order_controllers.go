package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/models"
	"github.com/xgrece/bodegon/utils"
	"gorm.io/gorm"
)

const ordersPageView = "pedidos.html"

type OrderInput struct {
	TableID uint   `json:"mesa" form:"mesa" binding:"required"`
	Product string `json:"producto" form:"producto" binding:"required"`
}

// OrderController adds the order form pages to the shared resource handlers.
type OrderController struct {
	*ResourceController[models.Order, *models.Order, OrderInput]
}

func NewOrderController(db *gorm.DB, notifier kds.Notifier) *OrderController {
	return &OrderController{&ResourceController[models.Order, *models.Order, OrderInput]{
		Repo:     database.NewRepository[models.Order](db),
		Notifier: notifier,
		Resource: "order",
		Build: func(in OrderInput) models.Order {
			return models.Order{TableID: in.TableID, Product: in.Product}
		},
		Text: ResourceText{
			Created:  "Pedido creado",
			Detail:   "Detalle del pedido",
			Listed:   "Lista de pedidos",
			Updated:  "Pedido actualizado",
			Deleted:  "Pedido eliminado",
			NotFound: "Pedido no encontrado",
		},
		Views: ResourceViews{List: ordersPageView, Detail: "pedido.html"},
	}}
}

// OrderPage renders every order together with the submission form.
func (oc *OrderController) OrderPage(c *gin.Context) {
	oc.renderPage(c, http.StatusOK, oc.Text.Listed)
}

// SubmitOrderForm persists a form-posted order and renders the updated list.
func (oc *OrderController) SubmitOrderForm(c *gin.Context) {
	out := utils.HTMLResponder{View: ordersPageView}

	var in OrderInput
	if err := c.ShouldBind(&in); err != nil {
		out.Fail(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Repo.Create(c.Request.Context(), oc.Build(in))
	if err != nil {
		oc.internalError(c, out, err)
		return
	}

	oc.notify(kds.ActionCreate, order)
	utils.InfoLogger.Printf("Order %d submitted for table %d: %s", order.ID, order.TableID, order.Product)
	oc.renderPage(c, http.StatusOK, oc.Text.Created)
}

func (oc *OrderController) renderPage(c *gin.Context, code int, message string) {
	out := utils.HTMLResponder{View: ordersPageView}

	orders, err := collect(c.Request.Context(), oc.Repo)
	if err != nil {
		oc.internalError(c, out, err)
		return
	}
	out.Respond(c, code, message, orders)
}
