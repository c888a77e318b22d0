package controller

import (
	"net/http"
	"strconv"
	"tender-service/internal/entity"
	"tender-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type tenderRoutesHandler struct {
	tenderService service.Tender
	validate      *validator.Validate
}

func newTenderRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *tenderRoutesHandler {
	h := &tenderRoutesHandler{tenderService: services.Tender, validate: v}

	outer.GET("/tenders", h.GetTenders)
	outer.POST("/tenders/new", h.PostTender)
	outer.GET("/tenders/my", h.GetUserTenders)
	outer.GET("/tenders/:tenderId/status", h.GetTenderStatus)
	outer.PUT("/tenders/:tenderId/status", h.UpdateTenderStatus)
	outer.PATCH("/tenders/:tenderId/edit", h.EditTender)
	outer.PUT("/tenders/:tenderId/rollback/:version", h.RollbackTenderVersion)

	return h
}

type getTendersInput struct {
	Limit        int32    `query:"limit" validate:"gte=0,lte=50"`
	Offset       int32    `query:"offset" validate:"gte=0"`
	ServiceTypes []string `query:"service_type" validate:"dive,oneof=Construction Delivery Manufacture"`
}

// /tenders
func (h *tenderRoutesHandler) GetTenders(c echo.Context) error {
	input := getTendersInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "input data is not formed correctly")
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	tenders, err := h.tenderService.GetTenders(c.Request().Context(), input.ServiceTypes, pg)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tenders)
}

type postTenderInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"required,max=500"`
	ServiceType     string `json:"serviceType" validate:"required,oneof=Construction Delivery Manufacture"`
	OrganizationId  string `json:"organizationId" validate:"required,max=100"`
	CreatorUsername string `json:"creatorUsername" validate:"required"`
}

// /tenders/new
func (h *tenderRoutesHandler) PostTender(c echo.Context) error {
	var input postTenderInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "input data is not formed correctly")
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	model := &entity.CreateTenderInput{
		Name:            input.Name,
		Description:     input.Description,
		ServiceType:     input.ServiceType,
		OrganizationId:  input.OrganizationId,
		CreatorUsername: input.CreatorUsername,
	}

	tender, err := h.tenderService.CreateTender(c.Request().Context(), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

type getUserTendersInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /tenders/my
func (h *tenderRoutesHandler) GetUserTenders(c echo.Context) error {
	input := getUserTendersInput{Limit: defaultLimit, Offset: defaultOffset}
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "input data is not formed correctly")
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	username := c.QueryParam("username")
	if username == "" {
		return unauthorized(c)
	}

	pg := entity.NewPaginationInput(int(input.Limit), int(input.Offset))
	tenders, err := h.tenderService.GetUserTenders(c.Request().Context(), username, pg)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tenders)
}

// /tenders/:tenderId/status
func (h *tenderRoutesHandler) GetTenderStatus(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return unauthorized(c)
	}

	status, err := h.tenderService.GetTenderStatusById(c.Request().Context(), c.Param("tenderId"), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

type updateTenderStatusInput struct {
	TenderId string `validate:"required,max=100"`
	Status   string `validate:"required,oneof=Created Published Closed"`
	Username string `validate:"required"`
}

// /tenders/:tenderId/status
func (h *tenderRoutesHandler) UpdateTenderStatus(c echo.Context) error {
	input := updateTenderStatusInput{
		TenderId: c.Param("tenderId"),
		Status:   c.QueryParam("status"),
		Username: c.QueryParam("username"),
	}
	if input.Username == "" {
		return unauthorized(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	tender, err := h.tenderService.UpdateTenderStatusById(c.Request().Context(), input.TenderId, input.Status, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

type editTenderInput struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
	ServiceType string `json:"serviceType" validate:"omitempty,oneof=Construction Delivery Manufacture"`
}

// /tenders/:tenderId/edit
func (h *tenderRoutesHandler) EditTender(c echo.Context) error {
	var input editTenderInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "input data is not formed correctly")
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	username := c.QueryParam("username")
	if username == "" {
		return unauthorized(c)
	}

	tender, err := h.tenderService.EditTenderById(c.Request().Context(), c.Param("tenderId"), username,
		input.Name, input.Description, input.ServiceType)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}

// /tenders/:tenderId/rollback/:version
func (h *tenderRoutesHandler) RollbackTenderVersion(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return unauthorized(c)
	}

	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		return badRequest(c, "version should be a positive integer")
	}

	tender, err := h.tenderService.RollbackTenderVersion(c.Request().Context(), c.Param("tenderId"), version, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, tender)
}
