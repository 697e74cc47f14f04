package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"
	"github.com/xgrece/bodegon/database"
	"github.com/xgrece/bodegon/models"
	"github.com/xgrece/bodegon/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ExportController produces downloadable documents from the stored records.
type ExportController struct {
	Clients *database.Repository[models.Client, *models.Client]
	Tables  *database.Repository[models.Table, *models.Table]
	Orders  *database.Repository[models.Order, *models.Order]
}

func NewExportController(db *gorm.DB) *ExportController {
	return &ExportController{
		Clients: database.NewRepository[models.Client](db),
		Tables:  database.NewRepository[models.Table](db),
		Orders:  database.NewRepository[models.Order](db),
	}
}

// collect pages through every record of repo.
func collect[T any, P database.Record[T]](ctx context.Context, repo *database.Repository[T, P]) ([]T, error) {
	var all []T
	for offset := 0; ; offset += database.MaxListLimit {
		page, err := repo.List(ctx, offset, database.MaxListLimit)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < database.MaxListLimit {
			return all, nil
		}
	}
}

// Workbook returns every client, table and order as one xlsx file.
func (ec *ExportController) Workbook(c *gin.Context) {
	ctx := c.Request.Context()
	out := utils.Negotiate(c, utils.MessageView)

	clients, err := collect(ctx, ec.Clients)
	if err != nil {
		ec.fail(c, out, err)
		return
	}
	tables, err := collect(ctx, ec.Tables)
	if err != nil {
		ec.fail(c, out, err)
		return
	}
	orders, err := collect(ctx, ec.Orders)
	if err != nil {
		ec.fail(c, out, err)
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	clientRows := make([][]interface{}, 0, len(clients))
	for _, cl := range clients {
		clientRows = append(clientRows, []interface{}{cl.ID, cl.FirstName, cl.LastName, cl.Email, cl.CreatedAt.Format(time.DateTime)})
	}
	tableRows := make([][]interface{}, 0, len(tables))
	for _, t := range tables {
		tableRows = append(tableRows, []interface{}{t.ID, t.Number, t.Capacity, t.Status})
	}
	orderRows := make([][]interface{}, 0, len(orders))
	for _, o := range orders {
		orderRows = append(orderRows, []interface{}{o.ID, o.TableID, o.Product, o.CreatedAt.Format(time.DateTime)})
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{"Clientes", []interface{}{"id", "nombre", "apellido", "email", "creado"}, clientRows},
		{"Mesas", []interface{}{"id", "numero", "capacidad", "estado"}, tableRows},
		{"Pedidos", []interface{}{"id", "mesa", "producto", "creado"}, orderRows},
	}
	for i, s := range sheets {
		if i == 0 {
			err = f.SetSheetName("Sheet1", s.name)
		} else {
			_, err = f.NewSheet(s.name)
		}
		if err != nil {
			ec.fail(c, out, err)
			return
		}
		if err := writeSheet(f, s.name, s.header, s.rows); err != nil {
			ec.fail(c, out, err)
			return
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		ec.fail(c, out, err)
		return
	}

	filename := fmt.Sprintf("bodegon-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, mimeXLSX, buf.Bytes())
}

func writeSheet(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

// Ticket renders the kitchen ticket of one order as a PDF.
func (ec *ExportController) Ticket(c *gin.Context) {
	out := utils.Negotiate(c, utils.MessageView)

	id, ok := parseID(c, out)
	if !ok {
		return
	}

	order, err := ec.Orders.Get(c.Request.Context(), id)
	if errors.Is(err, database.ErrNotFound) {
		out.Fail(c, http.StatusNotFound, errors.New("Pedido no encontrado"))
		return
	}
	if err != nil {
		ec.fail(c, out, err)
		return
	}

	doc, err := renderTicket(order)
	if err != nil {
		ec.fail(c, out, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="%s.pdf"`, order.TicketNumber()))
	c.Data(http.StatusOK, mimePDF, doc)
}

func renderTicket(order *models.Order) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A6", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Comanda", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, order.TicketNumber(), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, fmt.Sprintf("Mesa %d", order.TableID), "B", 1, "L", false, 0, "")
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 7, tr(order.Product), "", "L", false)
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, order.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket: %w", err)
	}
	return buf.Bytes(), nil
}

func (ec *ExportController) fail(c *gin.Context, out utils.Responder, err error) {
	_ = c.Error(err)
	utils.ErrorLogger.WithError(err).WithField("path", c.Request.URL.Path).Error("export failed")
	out.Fail(c, http.StatusInternalServerError, ErrInternal)
}
