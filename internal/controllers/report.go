package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"delivery-system/internal/entities"
	"delivery-system/internal/services"
	"delivery-system/pkg/utils"
)

type ReportController struct {
	statsService *services.StatsService
	logger       *zap.Logger
}

func NewReportController(statsService *services.StatsService, logger *zap.Logger) *ReportController {
	return &ReportController{statsService: statsService, logger: logger}
}

// GetReport выгружает строки заказов всех водителей за период. При
// format=xlsx отдает файл, иначе обычный JSON-список.
func (c *ReportController) GetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	rng := parseStatsRange(ctx)
	format := strings.ToLower(ctx.QueryParam("format"))

	orders, err := c.statsService.OrdersInRange(reqCtx, rng)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, orders)
	}
	return utils.SuccessResponse(ctx, orders, "Отчет успешно сформирован", http.StatusOK)
}

var reportHeaders = []string{
	"Водитель", "Заказ", "Клиент", "Телефон", "Адрес", "Теги", "Магазин",
	"Статус доставки", "Дата сканирования", "Сумма", "Тариф", "Выплата",
}

func reportRow(o *entities.Order) []interface{} {
	payoutID := ""
	if o.PayoutID != nil {
		payoutID = *o.PayoutID
	}
	return []interface{}{
		o.Driver, o.OrderName, o.CustomerName, o.CustomerPhone, o.Address,
		o.Tags, o.Store, o.DeliveryStatus, utils.FormatDate(o.ScanDate),
		o.CashAmount, o.DriverFee, payoutID,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, orders []entities.Order) error {
	f := excelize.NewFile()
	sheet := "Заказы"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i := range orders {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRow(&orders[i])
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 14)
	f.SetColWidth(sheet, "C", "E", 25)
	f.SetColWidth(sheet, "H", "I", 18)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
