package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/lawshop/internal/auth"
	"github.com/iliyamo/lawshop/internal/config"
	"github.com/iliyamo/lawshop/internal/logger"
	"github.com/iliyamo/lawshop/internal/model"
	"github.com/iliyamo/lawshop/internal/repository"
	"github.com/iliyamo/lawshop/internal/utils"
)

// AuthHandler bundles dependencies for registration, sign-in and profile
// endpoints.
type AuthHandler struct {
	Cfg           config.Config
	Users         *repository.UserRepo
	Registrar     *auth.Registrar
	Authenticator *auth.Authenticator
	Profiles      *auth.Profiles
	Passwords     *auth.PasswordGenerator
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo) *AuthHandler {
	hasher := auth.Hasher{Cost: cfg.BcryptCost}
	return &AuthHandler{
		Cfg:           cfg,
		Users:         users,
		Registrar:     auth.NewRegistrar(users, hasher),
		Authenticator: auth.NewAuthenticator(users, hasher),
		Profiles:      auth.NewProfiles(users),
		Passwords:     auth.NewPasswordGenerator(),
	}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type nicknameReq struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// Attempts is how many regenerations the form has already made.
	Attempts int `json:"attempts"`
}

type authResp struct {
	User              model.User        `json:"user"`
	Access            utils.AccessToken `json:"access"`
	GeneratedPassword string            `json:"generatedPassword,omitempty"`
}

func (h *AuthHandler) issue(c echo.Context, status int, u model.User, generated string) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID.String(), string(u.Role), h.Cfg.AccessTTLMin)
	if err != nil {
		logger.Error(c.Request().Context(), "issue access token failed", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}
	return c.JSON(status, authResp{User: u.Public(), Access: access, GeneratedPassword: generated})
}

// Register creates a customer account and signs it in. In auto password
// mode an empty password is generated here and returned once in the
// response.
func (h *AuthHandler) Register(c echo.Context) error {
	var in auth.RegistrationInput
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	generated := ""
	if in.PasswordMode == model.PasswordAuto && in.Password == "" {
		p, err := h.Passwords.Generate()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		in.Password, generated = p, p
	}

	u, err := h.Registrar.Submit(c.Request().Context(), nil, in)
	if err != nil {
		return writeError(c, err)
	}
	return h.issue(c, http.StatusCreated, u, generated)
}

// Login verifies credentials and returns a fresh access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	u, err := h.Authenticator.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}
	logger.Info(c.Request().Context(), "user signed in", zap.String("user_id", u.ID.String()))
	return h.issue(c, http.StatusOK, u, "")
}

// CheckEmail answers the registration form's blur check.
func (h *AuthHandler) CheckEmail(c echo.Context) error {
	checks := auth.NewUniquenessCache(h.Users)
	email, err := auth.ValidateEmail(c.Request().Context(), checks, c.QueryParam("email"))
	return availability(c, "email", email, err, auth.MsgEmailTaken, auth.MsgEmailUnverified)
}

// CheckNickname answers the manual nickname field's blur check.
func (h *AuthHandler) CheckNickname(c echo.Context) error {
	nick, err := auth.ValidateManualNickname(c.QueryParam("nickname"))
	if err == nil {
		unique, perr := auth.NewUniquenessCache(h.Users).NicknameUnique(c.Request().Context(), nick)
		switch {
		case perr != nil:
			logger.Warn(c.Request().Context(), "nickname uniqueness probe failed", zap.Error(perr))
			err = auth.MsgNicknameUnverified
		case !unique:
			err = auth.MsgNicknameTaken
		}
	}
	return availability(c, "nickname", nick, err, auth.MsgNicknameTaken, auth.MsgNicknameUnverified)
}

func availability(c echo.Context, field, value string, err error, taken, unverified auth.Message) error {
	switch err {
	case nil:
		return c.JSON(http.StatusOK, echo.Map{field: value, "available": true})
	case taken:
		return c.JSON(http.StatusOK, echo.Map{field: value, "available": false, "error": err.Error()})
	case unverified:
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
}

// SuggestNickname draws an unused nickname from the names. The response
// says whether manual entry is available, which happens once the form has
// regenerated MaxNicknameRegenerations times.
func (h *AuthHandler) SuggestNickname(c echo.Context) error {
	var req nicknameReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": auth.MsgRequired.Error()})
	}
	flow := auth.NewNicknameFlow(auth.NewNicknameGenerator(auth.NewUniquenessCache(h.Users)))
	flow.Attempts = max(req.Attempts, 0)
	flow.ManualEnabled = flow.Attempts >= auth.MaxNicknameRegenerations

	nick, unlocked, err := flow.Regenerate(c.Request().Context(), req.FirstName, req.LastName)
	if err != nil && nick == "" && !flow.ManualEnabled {
		return writeError(c, err)
	}
	resp := echo.Map{"nickname": nick, "attempts": flow.Attempts, "manualEnabled": flow.ManualEnabled, "unlocked": unlocked}
	if err != nil {
		resp["error"] = err.Error()
	}
	return c.JSON(http.StatusOK, resp)
}

// SuggestPassword returns one generated password that satisfies the policy.
func (h *AuthHandler) SuggestPassword(c echo.Context) error {
	p, err := h.Passwords.Generate()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"password": p})
}

// Me returns the signed-in user.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, u)
}

// UpdateMe edits the signed-in user's profile.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	u, err := currentUser(c, h.Users)
	if err != nil {
		return writeError(c, err)
	}
	in := auth.ProfileFrom(*u)
	if err := c.Bind(&in); err != nil {
		return badBody(c)
	}
	updated, err := h.Profiles.Update(c.Request().Context(), *u, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, updated)
}
