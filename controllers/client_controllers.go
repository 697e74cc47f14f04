package controllers

import (
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/models"
	"gorm.io/gorm"
)

// ClientInput is the create/replace body of a client, as JSON or form fields.
type ClientInput struct {
	FirstName string `json:"nombre" form:"nombre" binding:"required"`
	LastName  string `json:"apellido" form:"apellido" binding:"required"`
	Email     string `json:"email" form:"email" binding:"required"`
}

type ClientController = ResourceController[models.Client, *models.Client, ClientInput]

func NewClientController(db *gorm.DB, notifier kds.Notifier) *ClientController {
	return &ClientController{
		Repo:     database.NewRepository[models.Client](db),
		Notifier: notifier,
		Resource: "client",
		Build: func(in ClientInput) models.Client {
			return models.Client{
				FirstName: in.FirstName,
				LastName:  in.LastName,
				Email:     in.Email,
			}
		},
		Text: ResourceText{
			Created:  "Cliente creado",
			Detail:   "Detalle del cliente",
			Listed:   "Lista de clientes",
			Updated:  "Cliente actualizado",
			Deleted:  "Cliente eliminado",
			NotFound: "Cliente no encontrado",
		},
		Views: ResourceViews{List: "clientes.html", Detail: "cliente.html"},
	}
}
