package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type loginRequest struct {
	UserName  string `json:"userName" form:"userName"`
	UserPhone string `json:"userPhone" form:"userPhone"`
}

// POST /api/auth/login
//
// Phone-based find-or-create. Possession of the phone number is the whole
// identity proof here; the issued token inherits that weakness on purpose.
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindOrError(c, &req) {
		return
	}

	user, created, err := a.authService(c).FindOrCreate(c.Request.Context(), req.UserName, req.UserPhone)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"phone":   user.Phone,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	tokenString, err := token.SignedString([]byte(a.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "Failed to create token")
		return
	}

	message := "Login successful."
	if created {
		message = "User created and logged in successfully."
	}

	Respond(c, http.StatusOK, message, gin.H{
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"phone":    user.Phone,
		},
		"token": tokenString,
	})
}

// GET /api/auth/users/:id
func (a *API) GetUserByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		RespondError(c, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := a.authService(c).GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	Respond(c, http.StatusOK, "User found", gin.H{
		"id":       user.ID,
		"fullName": user.FullName,
		"phone":    user.Phone,
	})
}
