package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"taskboard/internal/dto"
	"taskboard/internal/service"
)

type taskHandlers struct {
	tasks TaskService
}

func (h *taskHandlers) list(c echo.Context) error {
	var filter *bool
	if raw := strings.TrimSpace(c.QueryParam("isCompleted")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid isCompleted value")
		}
		filter = &v
	}

	tasks, err := h.tasks.List(c.Request().Context(), filter)
	if err != nil {
		return internalError(err)
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *taskHandlers) get(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *taskHandlers) create(c echo.Context) error {
	var input dto.CreateTaskItem
	if err := decodeBody(c, &input); err != nil {
		return err
	}

	task, err := h.tasks.Create(c.Request().Context(), input)
	if err != nil {
		return internalError(err)
	}

	location := fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Request().URL.Path, "/"), task.ID)
	c.Response().Header().Set(echo.HeaderLocation, location)
	return c.JSON(http.StatusCreated, task)
}

func (h *taskHandlers) update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var input dto.UpdateTaskItem
	if err := decodeBody(c, &input); err != nil {
		return err
	}

	if err := h.tasks.Update(c.Request().Context(), id, input); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *taskHandlers) delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid task id")
	}
	return uint(id), nil
}

func decodeBody(c echo.Context, v any) error {
	if c.Request().ContentLength == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "request body is required")
	}
	return c.Echo().JSONSerializer.Deserialize(c, v)
}

// serviceError maps service errors onto HTTP statuses. Unresolved
// concurrency conflicts and storage failures become 500.
func serviceError(err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return echo.ErrNotFound
	}
	return internalError(err)
}

func internalError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError).SetInternal(err)
}
