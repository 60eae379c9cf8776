package apiv1

import (
	"access-request-backend/controllers"
	requesthandler "access-request-backend/lib/request"
	"access-request-backend/middleware"
	apimodels "access-request-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type managerApiController struct {
	controllers.BaseAPIController
}

func InitManagerApiRouters(app *fiber.App) {
	controller := managerApiController{}
	app.Route("manager", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.ManagerRequired())
		router.Get("dashboard", controller.dashboard)
	})
}

// @Summary Рабочий стол руководителя
// @Tags Руководитель
// @Description Счетчики и списки заявок текущего руководителя
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=requestapimodels.DashboardView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/manager/dashboard [get]
func (c *managerApiController) dashboard(ctx *fiber.Ctx) error {
	managerID := middleware.GetUserID(ctx)
	// администратор видит сводку по всем заявкам
	if middleware.GetUserRole(ctx).IsAdmin() {
		managerID = ""
	}
	view, err := requesthandler.Instance.Dashboard(managerID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}
