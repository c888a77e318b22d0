package controller

import (
	"net/http"
	"strconv"
	"tender-service/internal/entity"
	"tender-service/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo"
)

type bidRoutesHandler struct {
	bidService service.Bid
	validate   *validator.Validate
}

func newBidRoutesHandler(outer *echo.Group, services *service.Services, v *validator.Validate) *bidRoutesHandler {
	h := &bidRoutesHandler{bidService: services.Bid, validate: v}

	outer.POST("/bids/new", h.PostBid)
	outer.GET("/bids/my", h.GetUserBids)
	outer.GET("/bids/:bidId/status", h.GetBidStatus)
	outer.PUT("/bids/:bidId/status", h.UpdateBidStatus)
	outer.PATCH("/bids/:bidId/edit", h.EditBid)
	outer.PUT("/bids/:bidId/rollback/:version", h.RollbackBidVersion)
	outer.GET("/bids/:tenderId/list", h.GetBidsForTender)

	return h
}

type postBidInput struct {
	Name            string `json:"name" validate:"required,max=100"`
	Description     string `json:"description" validate:"required,max=500"`
	TenderId        string `json:"tenderId" validate:"required,max=100"`
	OrganizationId  string `json:"organizationId" validate:"required,max=100"`
	CreatorUsername string `json:"creatorUsername" validate:"required"`
}

// /bids/new
func (h *bidRoutesHandler) PostBid(c echo.Context) error {
	var input postBidInput
	if err := c.Bind(&input); err != nil {
		return badRequest(c, "input data is not formed correctly")
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	model := &entity.CreateBidInput{
		Name:            input.Name,
		Description:     input.Description,
		TenderId:        input.TenderId,
		OrganizationId:  input.OrganizationId,
		CreatorUsername: input.CreatorUsername,
	}

	bid, err := h.bidService.CreateBid(c.Request().Context(), model)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type getUserBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /bids/my
func (h *bidRoutesHandler) GetUserBids(c echo.Context) error {
	input := getUserBidsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	bids, err := h.bidService.GetUserBids(c.Request().Context(), username, pg)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bids)
}

// /bids/:bidId/status
func (h *bidRoutesHandler) GetBidStatus(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return unauthorized(c)
	}

	status, err := h.bidService.GetBidStatusById(c.Request().Context(), c.Param("bidId"), username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, status)
}

type updateBidStatusInput struct {
	BidId    string `validate:"required,max=100"`
	Status   string `validate:"required,oneof=Created Published Canceled"`
	Username string `validate:"required"`
}

// /bids/:bidId/status
func (h *bidRoutesHandler) UpdateBidStatus(c echo.Context) error {
	input := updateBidStatusInput{
		BidId:    c.Param("bidId"),
		Status:   c.QueryParam("status"),
		Username: c.QueryParam("username"),
	}
	if input.Username == "" {
		return unauthorized(c)
	}
	if err := h.validate.Struct(input); err != nil {
		return badRequest(c, validationMessages(err))
	}

	bid, err := h.bidService.UpdateBidStatusById(c.Request().Context(), input.BidId, input.Status, input.Username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type editBidInput struct {
	Name        string `json:"name" validate:"max=100"`
	Description string `json:"description" validate:"max=500"`
}

// /bids/:bidId/edit
func (h *bidRoutesHandler) EditBid(c echo.Context) error {
	var input editBidInput
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

	bid, err := h.bidService.EditBidById(c.Request().Context(), c.Param("bidId"), username,
		input.Name, input.Description)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

// /bids/:bidId/rollback/:version
func (h *bidRoutesHandler) RollbackBidVersion(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return unauthorized(c)
	}

	version, err := strconv.Atoi(c.Param("version"))
	if err != nil || version < 1 {
		return badRequest(c, "version should be a positive integer")
	}

	bid, err := h.bidService.RollbackBidVersion(c.Request().Context(), c.Param("bidId"), version, username)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bid)
}

type getTenderBidsInput struct {
	Limit  int32 `query:"limit" validate:"gte=0,lte=50"`
	Offset int32 `query:"offset" validate:"gte=0"`
}

// /bids/:tenderId/list
func (h *bidRoutesHandler) GetBidsForTender(c echo.Context) error {
	input := getTenderBidsInput{Limit: defaultLimit, Offset: defaultOffset}
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
	bids, err := h.bidService.GetBidsForTenderById(c.Request().Context(), c.Param("tenderId"), username, pg)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(http.StatusOK, bids)
}
