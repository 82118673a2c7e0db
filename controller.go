package console

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"
)

// ConsoleControllerRoutes are the route paths the controller mounts.
type ConsoleControllerRoutes struct {
	Home       string
	Login      string
	Signup     string
	Logout     string
	AdminLogin string
	AdminHome  string
	AdminUsers string
}

// ConsoleControllerViews are the view names rendered for GET navigations.
type ConsoleControllerViews struct {
	Login      string
	Signup     string
	AdminLogin string
	Dashboard  string
}

// ConsoleController is the dispatch boundary between navigations and the
// session stores: it binds payloads, runs validation before any dispatch,
// and folds store outcomes into flash messages and redirects. Presentation
// itself stays in the views.
type ConsoleController struct {
	Debug        bool
	Logger       Logger
	Sessions     *SessionStore
	Admin        *AdminStore
	Routes       *ConsoleControllerRoutes
	Views        *ConsoleControllerViews
	UserGuard    *RouteGuard
	AdminGuard   *RouteGuard
	ErrorHandler router.ErrorHandler
}

type ConsoleControllerOption func(*ConsoleController) *ConsoleController

// WithControllerStores wires the two session stores.
func WithControllerStores(sessions *SessionStore, admin *AdminStore) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Sessions = sessions
		c.Admin = admin
		return c
	}
}

// WithControllerLogger overrides the controller logger.
func WithControllerLogger(l Logger) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		if l != nil {
			c.Logger = l
		}
		return c
	}
}

// WithControllerDebug toggles payload dumps on dispatch.
func WithControllerDebug(debug bool) ConsoleControllerOption {
	return func(c *ConsoleController) *ConsoleController {
		c.Debug = debug
		return c
	}
}

func NewConsoleController(opts ...ConsoleControllerOption) *ConsoleController {
	c := &ConsoleController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &ConsoleControllerRoutes{
			Home:       "/",
			Login:      "/login",
			Signup:     "/signup",
			Logout:     "/logout",
			AdminLogin: "/admin/login",
			AdminHome:  "/admin/dashboard",
			AdminUsers: "/admin/users",
		},
		Views: &ConsoleControllerViews{
			Login:      "login",
			Signup:     "signup",
			AdminLogin: "admin_login",
			Dashboard:  "admin_dashboard",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Sessions == nil {
		panic("Missing session store in console controller...")
	}

	if c.Admin == nil {
		panic("Missing admin store in console controller...")
	}

	if c.UserGuard == nil {
		c.UserGuard = NewRouteGuard(c.Sessions,
			WithGuardLoginRoute("sign-in.get"),
			WithGuardLandingRoute("home.get"),
		)
	}

	if c.AdminGuard == nil {
		c.AdminGuard = NewRouteGuard(c.Admin,
			WithGuardLoginRoute("admin.sign-in.get"),
			WithGuardLandingRoute("admin.dashboard.get"),
			WithGuardRejectedRouteKey("admin_rejected_route"),
		)
	}

	return c
}

// RegisterConsoleRoutes mounts the console flows: anonymous-only guards on
// the login and signup pages, authenticated-only guards on the admin area.
func RegisterConsoleRoutes[T any](app router.Router[T], opts ...ConsoleControllerOption) *ConsoleController {
	controller := NewConsoleController(opts...)

	anonymous := controller.UserGuard.AnonymousOnly()
	adminAnonymous := controller.AdminGuard.AnonymousOnly()
	adminOnly := controller.AdminGuard.Protected()

	app.Get(controller.Routes.Login, anonymous(controller.LoginShow)).
		SetName("sign-in.get")
	app.Post(controller.Routes.Login, anonymous(controller.LoginPost)).
		SetName("sign-in.post")

	app.Get(controller.Routes.Signup, anonymous(controller.SignupShow)).
		SetName("sign-up.get")
	app.Post(controller.Routes.Signup, anonymous(controller.SignupPost)).
		SetName("sign-up.post")

	app.Get(controller.Routes.Logout, controller.LogOut).
		SetName("sign-out.get")

	app.Get(controller.Routes.AdminLogin, adminAnonymous(controller.AdminLoginShow)).
		SetName("admin.sign-in.get")
	app.Post(controller.Routes.AdminLogin, adminAnonymous(controller.AdminLoginPost)).
		SetName("admin.sign-in.post")

	app.Get(controller.Routes.AdminHome, adminOnly(controller.DashboardShow)).
		SetName("admin.dashboard.get")
	app.Get(controller.Routes.Logout+"/admin", adminOnly(controller.AdminLogOut)).
		SetName("admin.sign-out.get")

	app.Post(controller.Routes.AdminUsers, adminOnly(controller.UserCreate)).
		SetName("admin.users.create")
	app.Post(controller.Routes.AdminUsers+"/:id/update", adminOnly(controller.UserUpdate)).
		SetName("admin.users.update")
	app.Post(controller.Routes.AdminUsers+"/:id/delete", adminOnly(controller.UserDelete)).
		SetName("admin.users.delete")

	return controller
}

func (a *ConsoleController) LoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.Login, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

func (a *ConsoleController) LoginPost(ctx router.Context) error {
	payload := new(Credentials)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	// ValidationError path: a payload that fails here never reaches the
	// store, so no request lifecycle starts.
	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.Login, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	if a.Debug {
		a.Logger.Debug("login payload: %s", print.MaybePrettyJSON(payload))
	}

	if err := a.Sessions.Login(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": DisplayMessage(err),
		}).Render(a.Views.Login, router.ViewContext{
			"record": payload,
		})
	}

	redirect := a.UserGuard.GetRedirect(ctx, a.Routes.Home)
	return ctx.Redirect(redirect, fiber.StatusSeeOther)
}

func (a *ConsoleController) SignupShow(ctx router.Context) error {
	return ctx.Render(a.Views.Signup, router.ViewContext{
		"errors": map[string]string{},
		"record": SignupPayload{},
	})
}

func (a *ConsoleController) SignupPost(ctx router.Context) error {
	payload := new(SignupPayload)

	if err := ctx.Bind(payload); err != nil {
		a.Logger.Error("signup parse payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(fiber.StatusBadRequest).Render(a.Views.Signup, router.ViewContext{
			"record": payload,
		})
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("signup validate payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(a.Views.Signup, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	if err := a.Sessions.Signup(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": DisplayMessage(err),
		}).Render(a.Views.Signup, router.ViewContext{
			"record": payload,
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": a.Sessions.Status().Message,
	}).Redirect(a.Routes.Home, fiber.StatusSeeOther)
}

func (a *ConsoleController) LogOut(ctx router.Context) error {
	a.Sessions.Logout(ctx.Context())
	return ctx.Redirect(a.Routes.Login, fiber.StatusTemporaryRedirect)
}

func (a *ConsoleController) AdminLoginShow(ctx router.Context) error {
	return ctx.Render(a.Views.AdminLogin, router.ViewContext{
		"errors": nil,
		"record": nil,
	})
}

func (a *ConsoleController) AdminLoginPost(ctx router.Context) error {
	payload := new(Credentials)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.Render(a.Views.AdminLogin, router.ViewContext{
			"record":     payload,
			"validation": err.Error(),
		})
	}

	if err := a.Admin.Login(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": DisplayMessage(err),
		}).Render(a.Views.AdminLogin, router.ViewContext{
			"record": payload,
		})
	}

	redirect := a.AdminGuard.GetRedirect(ctx, a.Routes.AdminHome)
	return ctx.Redirect(redirect, fiber.StatusSeeOther)
}

func (a *ConsoleController) AdminLogOut(ctx router.Context) error {
	a.Admin.Logout(ctx.Context())
	return ctx.Redirect(a.Routes.AdminLogin, fiber.StatusTemporaryRedirect)
}

func (a *ConsoleController) DashboardShow(ctx router.Context) error {
	if a.Admin.RefreshDue() {
		if err := a.Admin.FetchUsers(ctx.Context()); err != nil {
			a.Logger.Error("dashboard roster fetch: %v", err)
		}
	}

	return ctx.Render(a.Views.Dashboard, router.ViewContext{
		"admin": a.Admin.Current(),
		"users": a.Admin.Users(),
	})
}

func (a *ConsoleController) UserCreate(ctx router.Context) error {
	payload := new(CreateUserPayload)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("create user validate payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
	}

	if a.Debug {
		a.Logger.Debug("create user payload: %s", print.MaybePrettyJSON(payload))
	}

	if err := a.Admin.CreateUser(ctx.Context(), *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": DisplayMessage(err),
		}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": a.Admin.Status().Message,
	}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
}

func (a *ConsoleController) UserUpdate(ctx router.Context) error {
	userID := ctx.Param("id", "")
	payload := new(UpdateUserPayload)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("update user validate payload: %v", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
	}

	if err := a.Admin.UpdateUser(ctx.Context(), userID, *payload); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": DisplayMessage(err),
		}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": a.Admin.Status().Message,
	}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
}

func (a *ConsoleController) UserDelete(ctx router.Context) error {
	userID := ctx.Param("id", "")

	if err := a.Admin.DeleteUser(ctx.Context(), userID); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message": DisplayMessage(err),
		}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": a.Admin.Status().Message,
	}).Redirect(a.Routes.AdminHome, fiber.StatusSeeOther)
}

func defaultErrHandler(c router.Context, err error) error {
	return c.Render("errors/500", router.ViewContext{
		"message": err.Error(),
	})
}
