package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	"github.com/celebigilfatih/omt/internal/usecase"
)

type TeamHandler struct {
	service *usecase.TeamService
	logger  *zap.Logger
}

func NewTeamHandler(service *usecase.TeamService, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{
		service: service,
		logger:  logger,
	}
}

// DeleteTeamResponse tells the caller whether the source application was re-opened.
type DeleteTeamResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Reverted      bool   `json:"reverted"`
	ApplicationID string `json:"applicationId,omitempty"`
}

// List handles GET /teams?stage=&age_group=&q=&sort=&order=&page=&limit=
func (h *TeamHandler) List(c echo.Context) error {
	page, err := queryInt(c, "page")
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit")
	if err != nil {
		return err
	}

	filter := entity.TeamFilter{
		Stage:            entity.Stage(c.QueryParam("stage")),
		AgeGroup:         entity.AgeGroup(c.QueryParam("age_group")),
		Query:            c.QueryParam("q"),
		Sort:             entity.TeamSortField(c.QueryParam("sort")),
		Order:            entity.SortOrder(c.QueryParam("order")),
		PaginationParams: entity.PaginationParams{Page: page, Limit: limit},
	}

	teams, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, teams)
}

// Stats handles GET /teams/stats
func (h *TeamHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Get handles GET /teams/:id
func (h *TeamHandler) Get(c echo.Context) error {
	team, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// Update handles PUT /teams/:id
func (h *TeamHandler) Update(c echo.Context) error {
	var in usecase.UpdateTeamInput
	if err := bindJSON(c, &in); err != nil {
		return err
	}

	team, err := h.service.Update(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, team)
}

// Delete handles DELETE /teams/:id
func (h *TeamHandler) Delete(c echo.Context) error {
	result, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	message := "Team deleted"
	if result.Reverted {
		message = "Team deleted and its application returned to pending"
	}
	return c.JSON(http.StatusOK, DeleteTeamResponse{
		Success:       true,
		Message:       message,
		Reverted:      result.Reverted,
		ApplicationID: result.ApplicationID,
	})
}
