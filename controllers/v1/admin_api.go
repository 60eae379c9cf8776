package apiv1

import (
	"access-request-backend/controllers"
	xlsexport "access-request-backend/lib/export/xls"
	"access-request-backend/lib/notify"
	requesthandler "access-request-backend/lib/request"
	"access-request-backend/lib/users"
	"access-request-backend/middleware"
	apimodels "access-request-backend/models/api"
	authapimodels "access-request-backend/models/api/auth"
	notifyapimodels "access-request-backend/models/api/notify"
	requestapimodels "access-request-backend/models/api/request"

	"github.com/gofiber/fiber/v2"
)

type adminApiController struct {
	controllers.BaseAPIController
}

func InitAdminApiRouters(app *fiber.App) {
	controller := adminApiController{}
	app.Route("admin", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Use(middleware.AdminRequired())

		router.Get("managers", controller.listManagers)
		router.Post("user", controller.createUser)
		router.Put("user/:id/role", controller.setRole)
		router.Put("user/:id/active", controller.setActive)
		router.Post("user/import-directory", controller.importDirectory)

		router.Get("email-template", controller.listEmailTemplates)
		router.Get("email-template/:id", controller.getEmailTemplate)
		router.Post("email-template", controller.createEmailTemplate)
		router.Put("email-template/:id", controller.updateEmailTemplate)
		router.Delete("email-template/:id", controller.deleteEmailTemplate)

		router.Post("request/:id/change-manager", controller.changeManager)
		router.Post("request/export", controller.exportRequests)
	})
}

// @Summary Список руководителей
// @Tags Администрирование
// @Description Список активных руководителей
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]authapimodels.UserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/managers [get]
func (c *adminApiController) listManagers(ctx *fiber.Ctx) error {
	list, err := users.Instance.ListManagers()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка руководителей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Создание пользователя
// @Tags Администрирование
// @Description Создание пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		authapimodels.UserCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/user [post]
func (c *adminApiController) createUser(ctx *fiber.Ctx) error {
	var payload authapimodels.UserCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := users.Instance.Create(payload)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Смена роли пользователя
// @Tags Администрирование
// @Description Смена роли пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Param	body				body		authapimodels.SetRoleData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/user/{id}/role [put]
func (c *adminApiController) setRole(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload authapimodels.SetRoleData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := users.Instance.SetRole(id, payload.Role); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены роли")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

type setActiveData struct {
	IsActive bool `json:"is_active"`
}

// @Summary Блокировка/разблокировка пользователя
// @Tags Администрирование
// @Description Блокировка/разблокировка пользователя
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Param	body				body		setActiveData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/user/{id}/active [put]
func (c *adminApiController) setActive(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload setActiveData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := users.Instance.SetActive(id, payload.IsActive); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка смены статуса пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Синхронизация пользователей из каталога
// @Tags Администрирование
// @Description Синхронизация учетных записей из службы каталогов
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=int}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/user/import-directory [post]
func (c *adminApiController) importDirectory(ctx *fiber.Ctx) error {
	imported, err := users.Instance.ImportFromDirectory()
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка синхронизации пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(imported))
}

// @Summary Список шаблонов писем
// @Tags Администрирование
// @Description Список шаблонов писем
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	with_inactive		query		bool	false	"включая неактивные"
// @Success 200 {object} apimodels.Response{data=[]notifyapimodels.EmailTemplateView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/email-template [get]
func (c *adminApiController) listEmailTemplates(ctx *fiber.Ctx) error {
	onlyActive := !ctx.QueryBool("with_inactive")
	list, err := notify.Instance.ListTemplates(onlyActive)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка шаблонов писем")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Получение шаблона письма
// @Tags Администрирование
// @Description Получение шаблона письма по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Success 200 {object} apimodels.Response{data=notifyapimodels.EmailTemplateView}
// @Failure 400 {object} apimodels.Response
// @Failure 404
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/email-template/{id} [get]
func (c *adminApiController) getEmailTemplate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := notify.Instance.GetTemplate(id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения шаблона письма")
	}
	if view == nil {
		return ctx.SendStatus(fiber.StatusNotFound)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Создание шаблона письма
// @Tags Администрирование
// @Description Создание шаблона письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		notifyapimodels.EmailTemplateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/email-template [post]
func (c *adminApiController) createEmailTemplate(ctx *fiber.Ctx) error {
	var payload notifyapimodels.EmailTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	id, err := notify.Instance.CreateTemplate(payload, middleware.GetUserID(ctx))
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания шаблона письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление шаблона письма
// @Tags Администрирование
// @Description Обновление шаблона письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Param	body				body		notifyapimodels.EmailTemplateData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/email-template/{id} [put]
func (c *adminApiController) updateEmailTemplate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload notifyapimodels.EmailTemplateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := notify.Instance.UpdateTemplate(id, payload); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления шаблона письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Удаление шаблона письма
// @Tags Администрирование
// @Description Мягкое удаление шаблона письма
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/email-template/{id} [delete]
func (c *adminApiController) deleteEmailTemplate(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := notify.Instance.DeleteTemplate(id); err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления шаблона письма")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Смена руководителя заявки
// @Tags Администрирование
// @Description Назначение нового руководителя и возврат заявки на согласование
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    	string	true	"ИД заявки"
// @Param	body				body		requestapimodels.ChangeManagerData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/request/{id}/change-manager [post]
func (c *adminApiController) changeManager(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload requestapimodels.ChangeManagerData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	err = requesthandler.Instance.ChangeManager(id, middleware.GetUserID(ctx), payload)
	if err != nil {
		return ctx.Status(errStatus(err)).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка заявок в XLSX
// @Tags Администрирование
// @Description Выгрузка заявок по фильтру в XLSX
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestFilter	true	"request body"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/admin/request/export [post]
func (c *adminApiController) exportRequests(ctx *fiber.Ctx) error {
	var filter requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := requesthandler.Instance.ListForExport(filter)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заявок")
	}
	buf, err := xlsexport.Instance.ExportRequestList(list)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка формирования выгрузки")
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="requests.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}
