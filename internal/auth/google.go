package auth

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/kritika0598/AiFace/cmd/api/config"
	"github.com/kritika0598/AiFace/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	stateCookie    = "oauth_state"
	userInfoURL    = "https://www.googleapis.com/oauth2/v2/userinfo"
	stateCookieAge = 600
)

func SetupRoutes(r *gin.Engine, userService *services.UserService, cfg *config.Config) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.GET("/google", googleLogin)
		authGroup.GET("/google/callback", googleCallback(userService, cfg))
		authGroup.GET("/me", AuthMiddleware(userService), getMe)
	}
}

func oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  backendURL() + "/api/auth/google/callback",
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     google.Endpoint,
	}
}

func googleLogin(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to start login"})
		return
	}

	c.SetCookie(stateCookie, state, stateCookieAge, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, oauthConfig().AuthCodeURL(state))
}

func googleCallback(userService *services.UserService, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		expectedState, err := c.Cookie(stateCookie)
		if err != nil || c.Query("state") != expectedState {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid OAuth state"})
			return
		}

		conf := oauthConfig()
		token, err := conf.Exchange(c.Request.Context(), c.Query("code"))
		if err != nil {
			log.Error().Err(err).Msg("Failed to exchange OAuth code")
			c.Redirect(http.StatusTemporaryRedirect, clientURL()+"/#/login")
			return
		}

		profile, err := fetchGoogleProfile(c, conf, token)
		if err != nil {
			log.Error().Err(err).Msg("Failed to fetch Google profile")
			c.Redirect(http.StatusTemporaryRedirect, clientURL()+"/#/login")
			return
		}

		user, err := userService.CreateOrUpdateUser(profile.ID, profile.Email, profile.Name, profile.Picture)
		if err != nil {
			log.Error().Err(err).Msg("Failed to create or update user")
			c.Redirect(http.StatusTemporaryRedirect, clientURL()+"/#/login")
			return
		}

		sessionToken, err := SignToken(user, cfg.TokenExpiry)
		if err != nil {
			log.Error().Err(err).Msg("Failed to sign session token")
			c.Redirect(http.StatusTemporaryRedirect, clientURL()+"/#/login")
			return
		}

		c.Redirect(http.StatusTemporaryRedirect,
			fmt.Sprintf("%s/#/auth-success?token=%s", clientURL(), sessionToken))
	}
}

func getMe(c *gin.Context) {
	user, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found in context"})
		return
	}
	c.JSON(http.StatusOK, user)
}

type googleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func fetchGoogleProfile(c *gin.Context, conf *oauth2.Config, token *oauth2.Token) (*googleProfile, error) {
	resp, err := conf.Client(c.Request.Context(), token).Get(userInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request returned %d", resp.StatusCode)
	}

	var profile googleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func backendURL() string {
	url := os.Getenv("BACKEND_URL")
	if url == "" {
		url = "http://localhost:5000"
	}
	return url
}

func clientURL() string {
	url := os.Getenv("CLIENT_URL")
	if url == "" {
		url = "https://kritika0598.github.io/AiFace"
	}
	return url
}
