package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"delivery-system/internal/controllers"
	"delivery-system/internal/services"
)

func runEmployeeRouter(api *echo.Group, employeeService *services.EmployeeService, logger *zap.Logger) {
	employeeCtrl := controllers.NewEmployeeController(employeeService, logger)

	api.POST("/employee/log", employeeCtrl.CreateLog)
	api.GET("/employee/logs", employeeCtrl.GetLogs)
}
