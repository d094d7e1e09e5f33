package auth

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes configures the controller's route paths
type AuthControllerRoutes struct {
	Login    string
	Register string
}

// AuthController is the thin JSON surface over the Authenticator: POST login
// exchanges credentials for a bearer token, POST register creates an account.
type AuthController struct {
	Debug  bool
	Logger Logger
	Auther Authenticator
	Routes *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(auther Authenticator, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Auther: auther,
		Routes: &AuthControllerRoutes{
			Login:    "/login",
			Register: "/register",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	return c
}

// RegisterAuthRoutes wires the authentication endpoints on the given router
func RegisterAuthRoutes[T any](app router.Router[T], controller *AuthController) {
	app.
		Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")

	app.
		Post(controller.Routes.Register, controller.RegisterPost).
		SetName("auth.register")
}

// LoginRequest payload
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return ctx.JSON(http.StatusBadRequest, router.ViewContext{
			"errors": map[string]string{"body": "failed to parse request body"},
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, router.ViewContext{
			"errors": formatValidationErrors(err),
		})
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(router.ViewContext{"username": payload.Username}))
		fmt.Println("=========================")
	}

	identity, ok := a.Auther.ValidateCredentials(ctx.Context(), payload.Username, payload.Password)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, router.ViewContext{
			"error": "invalid username or password",
		})
	}

	token, err := a.Auther.IssueToken(ctx.Context(), identity)
	if err != nil {
		a.Logger.Error("login token issuance failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, router.ViewContext{
			"error": "could not issue token",
		})
	}

	return ctx.JSON(http.StatusOK, router.ViewContext{
		"token": token,
	})
}

// RegisterRequest payload
type RegisterRequest struct {
	FirstName string   `form:"first_name" json:"first_name"`
	LastName  string   `form:"last_name" json:"last_name"`
	Username  string   `form:"username" json:"username"`
	Email     string   `form:"email" json:"email"`
	Password  string   `form:"password" json:"password"`
	Roles     []string `form:"roles" json:"roles"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(
			&r.Username,
			validation.Required,
		),
		validation.Field(
			&r.Email,
			validation.Required,
			is.Email,
		),
		validation.Field(
			&r.Password,
			validation.Required,
		),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("register parse payload", "error", err)
		return ctx.JSON(http.StatusBadRequest, router.ViewContext{
			"errors": map[string]string{"body": "failed to parse request body"},
		})
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, router.ViewContext{
			"errors": formatValidationErrors(err),
		})
	}

	result, err := a.Auther.RegisterUser(ctx.Context(), RegisterUserRequest{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Username:  payload.Username,
		Email:     payload.Email,
		Password:  payload.Password,
		Roles:     payload.Roles,
	})
	if err != nil {
		a.Logger.Error("register user failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, router.ViewContext{
			"error": "could not register user",
		})
	}

	if !result.Succeeded {
		return ctx.JSON(http.StatusUnprocessableEntity, router.ViewContext{
			"errors": result.FieldErrors,
		})
	}

	return ctx.JSON(http.StatusCreated, router.ViewContext{
		"id":       result.User.ID.String(),
		"username": result.User.Username,
	})
}

// formatValidationErrors flattens ozzo validation errors into a field map
func formatValidationErrors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}

	if errs, ok := err.(validation.Errors); ok {
		for field, fieldErr := range errs {
			if fieldErr != nil {
				out[field] = fieldErr.Error()
			}
		}
		return out
	}

	out["payload"] = err.Error()
	return out
}
