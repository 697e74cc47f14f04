package controllers

import (
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/kds"
	"github.com/xgrece/bodegon/models"
	"gorm.io/gorm"
)

type TableInput struct {
	Number   string `json:"numero" form:"numero" binding:"required"`
	Capacity int    `json:"capacidad" form:"capacidad" binding:"required,gt=0"`
	Status   string `json:"estado" form:"estado"` // optional, default "disponible"
}

type TableController = ResourceController[models.Table, *models.Table, TableInput]

func NewTableController(db *gorm.DB, notifier kds.Notifier) *TableController {
	return &TableController{
		Repo:     database.NewRepository[models.Table](db),
		Notifier: notifier,
		Resource: "table",
		Build: func(in TableInput) models.Table {
			table := models.Table{
				Number:   in.Number,
				Capacity: in.Capacity,
				Status:   models.TableStatusAvailable,
			}
			if in.Status != "" {
				table.Status = in.Status
			}
			return table
		},
		Text: ResourceText{
			Created:  "Mesa creada",
			Detail:   "Detalle de la mesa",
			Listed:   "Lista de mesas",
			Updated:  "Mesa actualizada",
			Deleted:  "Mesa eliminada",
			NotFound: "Mesa no encontrada",
		},
		Views: ResourceViews{List: "mesas.html", Detail: "mesa.html"},
	}
}
