package apiv1

import (
	"access-request-backend/controllers"
	"access-request-backend/lib/users"
	"access-request-backend/middleware"
	apimodels "access-request-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type searchApiController struct {
	controllers.BaseAPIController
}

func InitSearchApiRouters(app *fiber.App) {
	controller := searchApiController{}
	app.Route("search", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Get("users", controller.users)
	})
}

// @Summary Поиск согласующих
// @Tags Поиск
// @Description Поиск руководителей по локальной базе и службе каталогов
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	term				query		string	true	"строка поиска"
// @Param	limit				query		int		false	"максимум записей"
// @Success 200 {object} apimodels.Response{data=[]searchapimodels.UserSearchResult}
// @Failure 400 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/search/users [get]
func (c *searchApiController) users(ctx *fiber.Ctx) error {
	term := ctx.Query("term")
	if term == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указана строка поиска"))
	}
	limit := ctx.QueryInt("limit")
	list, err := users.Instance.Search(term, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}
