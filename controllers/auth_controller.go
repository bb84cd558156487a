package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"netflix-clone-backend/middleware"
	"netflix-clone-backend/models"
	"netflix-clone-backend/services"
)

type AuthController struct {
	authService *services.AuthService
	log         *logrus.Logger
}

func NewAuthController(authService *services.AuthService, log *logrus.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		log:         log,
	}
}

// bindingMessage converts validator errors into the messages the
// frontend shows in its alerts. Only the first error is reported.
func bindingMessage(err error, fallback string) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, e := range ve {
			switch e.Field() {
			case "Name":
				return "Name is required"
			case "Email":
				return "Please provide a valid email address"
			case "Password":
				if e.Tag() == "min" {
					return "Password must be at least 6 characters long"
				}
				return "Password is required"
			default:
				return "Invalid input data"
			}
		}
	}
	return fallback
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetCookie(middleware.CookieName, token, int(services.SessionCookieTTL.Seconds()), "/", "", false, true)
}

func (c *AuthController) internalError(ctx *gin.Context, message string, err error) {
	c.log.WithError(err).Error(message)
	ctx.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": message,
	})
}

func (c *AuthController) Signup(ctx *gin.Context) {
	var req models.SignupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": bindingMessage(err, "Invalid request format"),
		})
		return
	}

	user, err := c.authService.Register(ctx.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserExists):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "User Already Exists",
			})
		case errors.Is(err, models.ErrInvalidRole):
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Invalid role",
			})
		default:
			c.internalError(ctx, "User cannot be registered, please try again later", err)
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User Created Successfully",
		"data":    user.Sanitized(),
	})
}

func (c *AuthController) Login(ctx *gin.Context) {
	var req models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Please fill all the details carefully",
		})
		return
	}

	token, user, err := c.authService.Authenticate(ctx.Request.Context(), &req, ctx.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUserNotFound):
			ctx.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "User does not exist",
			})
		case errors.Is(err, models.ErrInvalidCredentials):
			ctx.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Password does not match",
			})
		case errors.Is(err, models.ErrTooManyAttempts):
			ctx.JSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many login attempts, please try again later",
			})
		default:
			c.internalError(ctx, "Login failed", err)
		}
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Sanitized(),
		"message": "User logged in successfully",
	})
}

func (c *AuthController) CheckUser(ctx *gin.Context) {
	var req models.CheckUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email is required",
		})
		return
	}

	exists, err := c.authService.CheckExists(ctx.Request.Context(), req.Email)
	if err != nil {
		c.internalError(ctx, "Error checking user", err)
		return
	}

	message := "User does not exist"
	if exists {
		message = "User exists"
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"exists":  exists,
		"message": message,
	})
}

func (c *AuthController) VerifyToken(ctx *gin.Context) {
	token := middleware.ExtractToken(ctx)

	user, err := c.authService.VerifySession(ctx.Request.Context(), token)
	if err != nil {
		message := "Invalid token"
		switch {
		case errors.Is(err, models.ErrNoToken):
			message = "No token provided"
		case errors.Is(err, models.ErrUserNotFound):
			message = "User not found"
		default:
			c.log.WithError(err).Warn("token verification failed")
		}
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"valid":   false,
			"message": message,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   true,
		"user": gin.H{
			"_id":   user.ID.Hex(),
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token":   token,
		"message": "Token is valid",
	})
}

func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	var req models.GoogleLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email and name are required",
		})
		return
	}

	token, user, err := c.authService.GoogleAuthenticate(ctx.Request.Context(), &req)
	if err != nil {
		c.internalError(ctx, "Google login failed", err)
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user.Sanitized(),
		"message": "Google login successful",
	})
}

// Profile returns the authenticated user. Mounted behind the Auth
// middleware.
func (c *AuthController) Profile(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user.Sanitized(),
	})
}
