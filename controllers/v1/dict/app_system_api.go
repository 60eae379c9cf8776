package dict

import (
	"access-request-backend/controllers"
	appsystemprovider "access-request-backend/lib/dicts/app-system"
	"access-request-backend/middleware"
	apimodels "access-request-backend/models/api"
	dictapimodels "access-request-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type appSystemDictApiController struct {
	controllers.BaseAPIController
}

func InitAppSystemDictApiRouters(app *fiber.App) {
	controller := appSystemDictApiController{}
	app.Route("app-system", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Post("", middleware.AdminRequired(), controller.create)
		router.Put(":id", middleware.AdminRequired(), controller.update)
		router.Delete(":id", middleware.AdminRequired(), controller.delete)
	})
}

// @Summary Список систем
// @Tags Справочник. Системы
// @Description Список систем, доступных для запроса доступа
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	with_inactive		query		bool	false	"включая неактивные"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.AppSystemView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/app-system [get]
func (c *appSystemDictApiController) list(ctx *fiber.Ctx) error {
	onlyActive := !ctx.QueryBool("with_inactive")
	list, err := appsystemprovider.Instance.List(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка систем")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Справочник. Системы
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.AppSystemView}
// @Failure 400 {object} apimodels.Response
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/app-system/{id} [get]
func (c *appSystemDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := appsystemprovider.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения данных по системе")
	}
	if view == nil {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Создание записи
// @Tags Справочник. Системы
// @Description Создание записи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dictapimodels.AppSystemData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/app-system [post]
func (c *appSystemDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.AppSystemData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := appsystemprovider.Instance.Create(payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания системы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление записи
// @Tags Справочник. Системы
// @Description Обновление записи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Param	body				body		dictapimodels.AppSystemData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/app-system/{id} [put]
func (c *appSystemDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.AppSystemData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := appsystemprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления системы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление записи
// @Tags Справочник. Системы
// @Description Мягкое удаление записи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/app-system/{id} [delete]
func (c *appSystemDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := appsystemprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления системы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
