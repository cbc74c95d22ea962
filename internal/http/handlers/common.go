package handlers

import (
	"database/sql"
	"net/http"

	intconfig "smartcab/internal/config"
	"smartcab/internal/http/middleware"
	"smartcab/internal/repositories"
	"smartcab/internal/services"

	"github.com/gin-gonic/gin"
)

// API carries the shared dependencies into the handlers. Services are built
// per request so they pick up the request id for event logging.
type API struct {
	DB  *sql.DB
	Env intconfig.Env
}

func New(env intconfig.Env, db *sql.DB) *API {
	return &API{DB: db, Env: env}
}

func (a *API) bookingService(c *gin.Context) services.BookingService {
	return services.BookingService{
		Repo:      repositories.BookingRepository{DB: a.DB, Timeout: a.Env.DBTimeout},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) rideService(c *gin.Context) services.RideService {
	return services.RideService{
		Repo:      repositories.RideRepository{DB: a.DB, Timeout: a.Env.DBTimeout},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) authService(c *gin.Context) services.AuthService {
	return services.AuthService{
		Repo:      repositories.UserRepository{DB: a.DB, Timeout: a.Env.DBTimeout},
		RequestID: middleware.GetRequestID(c),
	}
}

func (a *API) docsService(c *gin.Context) services.DocsService {
	return services.DocsService{
		BookingRepo: repositories.BookingRepository{DB: a.DB, Timeout: a.Env.DBTimeout},
		RequestID:   middleware.GetRequestID(c),
	}
}

// Respond sends the standard success envelope. data is omitted when nil.
func Respond(c *gin.Context, status int, message string, data any) {
	payload := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		payload["data"] = data
	}
	c.JSON(status, payload)
}

// RespondError sends the standard failure envelope. No partial data ever
// rides along with an error.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"message": message,
	})
}

// BindOrError decodes a JSON or form body into dst, reporting 400 on garbage.
func BindOrError[T any](c *gin.Context, dst *T) bool {
	if err := c.ShouldBind(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}
