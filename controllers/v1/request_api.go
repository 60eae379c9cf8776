package apiv1

import (
	"access-request-backend/controllers"
	requesthandler "access-request-backend/lib/request"
	"access-request-backend/middleware"
	apimodels "access-request-backend/models/api"
	requestapimodels "access-request-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type requestApiController struct {
	controllers.BaseAPIController
}

func InitRequestApiRouters(app *fiber.App) {
	controller := requestApiController{}
	// подача заявки доступна без авторизации
	app.Post("public/request", controller.createPublic)
	app.Route("request", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get(":id", controller.getByID)
		router.Get(":id/history", controller.history)
		router.Get(":id/pdf", controller.downloadPdf)
		router.Post(":id/acknowledge", controller.acknowledge)
		router.Post(":id/manager-decision", controller.managerDecision)
		router.Post(":id/final-decision", middleware.AdminRequired(), controller.finalDecision)
		router.Post(":id/cancel", controller.cancelByUser)
		router.Post(":id/cancel-by-manager", controller.cancelByManager)
	})
}

func errStatus(err error) int {
	switch err {
	case requesthandler.ErrNotFound:
		return fiber.StatusNotFound
	case requesthandler.ErrForbidden:
		return fiber.StatusForbidden
	case requesthandler.ErrInvalidTransition:
		return fiber.StatusConflict
	case requesthandler.ErrCredentials:
		return fiber.StatusUnauthorized
	}
	return fiber.StatusInternalServerError
}

// @Summary Подать заявку без авторизации
// @Tags Заявки на доступ
// @Description Подать заявку без авторизации, учетная запись заводится по почте заявителя
// @Param	body				body		requestapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/public/request [post]
func (c *requestApiController) createPublic(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if payload.UserEmail == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указана почта заявителя"))
	}
	id, err := requesthandler.Instance.Create("", payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Подать заявку
// @Tags Заявки на доступ
// @Description Подать заявку от имени текущего пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request [post]
func (c *requestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := requesthandler.Instance.Create(middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список заявок
// @Tags Заявки на доступ
// @Description Список заявок с фильтром и пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/list [post]
func (c *requestApiController) list(ctx *fiber.Ctx) error {
	var filter requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	// не администратор видит только свои заявки
	role := middleware.GetUserRole(ctx)
	if !role.IsAdmin() {
		if role.IsManager() {
			filter.ManagerID = middleware.GetUserID(ctx)
		} else {
			filter.UserID = middleware.GetUserID(ctx)
		}
	}
	list, rowCount, err := requesthandler.Instance.List(filter)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Карточка заявки
// @Tags Заявки на доступ
// @Description Карточка заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id} [get]
func (c *requestApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := requesthandler.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if view == nil {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Журнал заявки
// @Tags Заявки на доступ
// @Description Журнал переходов заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Success 200 {object} apimodels.Response{data=[]requestapimodels.HistoryView}
// @Failure 400 {object} apimodels.Response
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/history [get]
func (c *requestApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := requesthandler.Instance.History(id)
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Скачать печатную форму
// @Tags Заявки на доступ
// @Description Скачать печатную форму согласованной заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/pdf [get]
func (c *requestApiController) downloadPdf(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := requesthandler.Instance.GetByID(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if view == nil || view.PdfPath == "" {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return ctx.Download(view.PdfPath)
}

// @Summary Принять условия раскрытия информации
// @Tags Заявки на доступ
// @Description Принять условия раскрытия информации и передать заявку на согласование
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/acknowledge [post]
func (c *requestApiController) acknowledge(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = requesthandler.Instance.AcknowledgeDisclosure(id, middleware.GetUserID(ctx))
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Решение руководителя
// @Tags Заявки на доступ
// @Description Решение руководителя с повторным подтверждением учетных данных
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Param	body				body		requestapimodels.ManagerDecisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/manager-decision [post]
func (c *requestApiController) managerDecision(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.ManagerDecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = requesthandler.Instance.ManagerDecision(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Финальное решение
// @Tags Заявки на доступ
// @Description Финальное решение по заявке, доступно администратору
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Param	body				body		requestapimodels.FinalDecisionData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/final-decision [post]
func (c *requestApiController) finalDecision(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.FinalDecisionData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = requesthandler.Instance.FinalDecision(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отменить заявку
// @Tags Заявки на доступ
// @Description Отмена заявки заявителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/cancel [post]
func (c *requestApiController) cancelByUser(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = requesthandler.Instance.CancelByUser(id, middleware.GetUserID(ctx))
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

type cancelData struct {
	Reason string `json:"reason"`
}

// @Summary Отменить заявку руководителем
// @Tags Заявки на доступ
// @Description Отмена заявки назначенным руководителем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"ИД заявки"
// @Param	body				body		cancelData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/request/{id}/cancel-by-manager [post]
func (c *requestApiController) cancelByManager(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload cancelData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = requesthandler.Instance.CancelByManager(id, middleware.GetUserID(ctx), payload.Reason)
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
