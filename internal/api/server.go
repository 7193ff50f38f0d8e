// Package api exposes the task operations over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"taskboard/internal/dto"
)

// TaskService is what the handlers need from the service layer.
type TaskService interface {
	List(ctx context.Context, completed *bool) ([]dto.TaskItem, error)
	Get(ctx context.Context, id uint) (dto.TaskItem, error)
	Create(ctx context.Context, input dto.CreateTaskItem) (dto.TaskItem, error)
	Update(ctx context.Context, id uint, input dto.UpdateTaskItem) error
	Delete(ctx context.Context, id uint) error
}

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// taskRoutePrefixes are the mount points of the task resource. The second
// one keeps older clients that use the /api prefix working.
var taskRoutePrefixes = []string{"/tasks", "/api/tasks"}

// New builds the Echo instance with middleware and all routes registered.
func New(tasks TaskService, health Pinger, log logrus.FieldLogger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = newSonicSerializer()

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLogger(log))
	e.Use(Metrics())
	e.Use(middleware.Recover())

	Register(e, tasks, health)
	return e
}

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, tasks TaskService, health Pinger) {
	h := &taskHandlers{tasks: tasks}
	for _, prefix := range taskRoutePrefixes {
		e.GET(prefix, h.list)
		e.POST(prefix, h.create)
		e.GET(prefix+"/:id", h.get)
		e.PUT(prefix+"/:id", h.update)
		e.DELETE(prefix+"/:id", h.delete)
	}
	e.GET("/healthz", healthz(health))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

func healthz(p Pinger) echo.HandlerFunc {
	return func(c echo.Context) error {
		if p == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable").SetInternal(err)
		}
		return c.NoContent(http.StatusOK)
	}
}

// Serve runs e on addr until ctx is cancelled, then shuts it down within
// shutdownTimeout.
func Serve(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration) error {
	e.Server.ReadHeaderTimeout = 5 * time.Second

	errCh := make(chan error, 1)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}
