package dict

import (
	"access-request-backend/controllers"
	formtemplateprovider "access-request-backend/lib/dicts/form-template"
	"access-request-backend/middleware"
	apimodels "access-request-backend/models/api"
	dictapimodels "access-request-backend/models/api/dict"

	"github.com/gofiber/fiber/v2"
)

type formTemplateDictApiController struct {
	controllers.BaseAPIController
}

func InitFormTemplateDictApiRouters(app *fiber.App) {
	controller := formTemplateDictApiController{}
	app.Route("form-template", func(router fiber.Router) {
		router.Use(middleware.AdminRequired())
		router.Get("", controller.list)
		router.Get(":id", controller.get)
		router.Post("", controller.create)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

// @Summary Список шаблонов форм
// @Tags Справочник. Шаблоны форм
// @Description Список шаблонов форм
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	with_inactive		query		bool	false	"включая неактивные"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.FormTemplateView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/form-template [get]
func (c *formTemplateDictApiController) list(ctx *fiber.Ctx) error {
	onlyActive := !ctx.QueryBool("with_inactive")
	list, err := formtemplateprovider.Instance.List(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов форм")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение по ИД
// @Tags Справочник. Шаблоны форм
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=dictapimodels.FormTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/form-template/{id} [get]
func (c *formTemplateDictApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := formtemplateprovider.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона формы")
	}
	if view == nil {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Создание записи
// @Tags Справочник. Шаблоны форм
// @Description Создание записи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		dictapimodels.FormTemplateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/form-template [post]
func (c *formTemplateDictApiController) create(ctx *fiber.Ctx) error {
	var payload dictapimodels.FormTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := formtemplateprovider.Instance.Create(payload, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона формы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление записи
// @Tags Справочник. Шаблоны форм
// @Description Обновление записи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Param	body				body		dictapimodels.FormTemplateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/form-template/{id} [put]
func (c *formTemplateDictApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload dictapimodels.FormTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := formtemplateprovider.Instance.Update(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления шаблона формы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление записи
// @Tags Справочник. Шаблоны форм
// @Description Мягкое удаление записи
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/form-template/{id} [delete]
func (c *formTemplateDictApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := formtemplateprovider.Instance.Delete(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона формы")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
