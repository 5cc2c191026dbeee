package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"preauth-tracker/internal/domain/user"
	"preauth-tracker/internal/usecase/credential"
	"preauth-tracker/internal/usecase/stats"
)

type UserHandler struct {
	creds *credential.Store
	stats *stats.Usecase
}

func NewUserHandler(creds *credential.Store, st *stats.Usecase) *UserHandler {
	return &UserHandler{creds: creds, stats: st}
}

type createUserReq struct {
	Username string `json:"username" validate:"required,max=191"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,role"`
}

type updateUserReq struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=191"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Role     *string `json:"role"     validate:"omitempty,role"`
}

func (h *UserHandler) List(c echo.Context) error {
	out, err := h.creds.ListUsers(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}

	id, err := h.creds.CreateUser(c.Request().Context(), credential.CreateUserInput{
		Username: req.Username,
		Password: req.Password,
		Role:     user.Role(req.Role),
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, id)
}

func (h *UserHandler) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}

	in := credential.UpdateUserInput{Username: req.Username, Password: req.Password}
	if req.Role != nil {
		r := user.Role(*req.Role)
		in.Role = &r
	}
	out, err := h.creds.UpdateUser(c.Request().Context(), id, in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *UserHandler) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return badID(c)
	}
	if err := h.creds.DeleteUser(c.Request().Context(), id); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (h *UserHandler) Stats(c echo.Context) error {
	out, err := h.stats.EmployeeStats(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
