package auth

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Messages flashed after successful account actions.
const (
	MsgRegistered = "Registered successfully!"
	MsgLoggedIn   = "You have been logged in!"

	MsgTooManyAttempts = "Too many login attempts. Please try again later."
)

// AuthController handles registration, login and logout.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	renderer       *Renderer
	limiter        *LoginLimiter
}

// NewAuthController creates a new authentication controller.
// A nil limiter disables login throttling.
func NewAuthController(service *Service, sessionManager *SessionManager, renderer *Renderer, limiter *LoginLimiter) *AuthController {
	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		renderer:       renderer,
		limiter:        limiter,
	}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *AuthController) RegisterRoutes(router gin.IRoutes) {
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.GET("/logout", ac.Logout)
	router.POST("/logout", ac.Logout)
}

// RegisterPage renders the sign-up form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	ac.renderer.Render(c, http.StatusOK, "register.html", gin.H{
		"Title": "Register",
	})
}

// Register handles the sign-up form submission. Any rejection is flashed
// and the user is sent back to the form; nothing is stored.
func (ac *AuthController) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	confirm := c.PostForm("password2")

	user, err := ac.service.Register(c.Request.Context(), username, password, confirm)
	if err != nil {
		if IsUserError(err) {
			ac.renderer.FlashRedirect(c, FlashDanger, err.Error(), "/register")
			return
		}
		ac.internalError(c, "register user", err)
		return
	}

	log.Printf("Registered user %q (id %d)", user.Username, user.ID)
	ac.renderer.FlashRedirect(c, FlashSuccess, MsgRegistered, "/")
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}

	ac.renderer.Render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Login",
	})
}

// Login verifies the submitted credentials and only then establishes the session.
func (ac *AuthController) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	clientIP := c.ClientIP()

	if allowed, retryAfter := ac.limiter.Allow(clientIP, username); !allowed {
		c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
		ac.renderer.FlashRedirect(c, FlashDanger, MsgTooManyAttempts, LoginPath)
		return
	}

	user, err := ac.service.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			if ac.limiter.RecordFailure(clientIP, username) {
				log.Printf("Locked out login for %q from %s", username, clientIP)
			}
		}
		if IsUserError(err) {
			ac.renderer.FlashRedirect(c, FlashDanger, err.Error(), LoginPath)
			return
		}
		ac.internalError(c, "authenticate", err)
		return
	}
	ac.limiter.RecordSuccess(clientIP, username)

	if err := ac.sessionManager.CreateSession(c.Request, user); err != nil {
		ac.internalError(c, "create session", err)
		return
	}

	ac.renderer.FlashRedirect(c, FlashPrimary, MsgLoggedIn, "/")
}

// Logout destroys the session. It is safe to call without a session.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	c.Redirect(http.StatusFound, "/")
}

func (ac *AuthController) internalError(c *gin.Context, action string, err error) {
	log.Printf("Failed to %s: %v", action, err)
	ac.renderer.Render(c, http.StatusInternalServerError, "error.html", gin.H{
		"Title": "Error",
		"error": "internal server error",
	})
}
