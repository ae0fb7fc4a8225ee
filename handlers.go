package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"spendwise/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionTTL = 7 * 24 * time.Hour

func setupRoutes(r *gin.Engine) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if origin := os.Getenv("CLIENT_URL"); origin != "" {
		corsCfg.AllowOrigins = []string{origin}
	} else {
		corsCfg.AllowOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(corsCfg))

	auth := r.Group("/auth")
	auth.POST("/signup", signUpHandler)
	auth.POST("/login", loginHandler)
	auth.GET("/", jwtAuthMiddleware(), pingHandler)
	auth.GET("/logout", jwtAuthMiddleware(), logoutHandler)

	tx := r.Group("/transactions", jwtAuthMiddleware())
	tx.GET("", listTransactionsHandler)
	tx.POST("", addTransactionHandler)
	tx.PUT("/:id", updateTransactionHandler)
	tx.DELETE("/:id", deleteTransactionHandler)

	dash := r.Group("/dashboard", jwtAuthMiddleware())
	dash.GET("/stats", dashboardStatsHandler)
	dash.GET("/category-stats", categoryStatsHandler)
	dash.POST("/recompute", recomputeExpenseHandler)

	ins := r.Group("/insight", jwtAuthMiddleware())
	ins.POST("/budget", setBudgetHandler)
	ins.GET("/category", categoryInsightsHandler)
	ins.GET("/monthly", monthlyInsightsHandler)
}

// jwtAuthMiddleware resolves the session token, preferring the httpOnly
// cookie set at login and falling back to an Authorization bearer header.
func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie("token")
		if tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				tokenString = authHeader[len("Bearer "):]
			}
		}
		if tokenString == "" {
			respondError(c, http.StatusUnauthorized, "missing session token", nil)
			c.Abort()
			return
		}
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, "invalid token", nil)
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			respondError(c, http.StatusUnauthorized, "invalid claims", nil)
			c.Abort()
			return
		}
		uid, _ := claims["userId"].(float64)
		if uid <= 0 {
			respondError(c, http.StatusUnauthorized, "invalid claims", nil)
			c.Abort()
			return
		}
		c.Set("userID", uint(uid))
		c.Next()
	}
}

// currentUser fetches the authenticated user using the id set by
// jwtAuthMiddleware. On failure it writes the error envelope (404 when the
// token's user is gone, 500 on a store fault) and returns false.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("userID")
	if !ok {
		respondError(c, http.StatusNotFound, "User not found", nil)
		return nil, false
	}
	var user models.User
	if err := db.First(&user, v.(uint)).Error; err != nil {
		respondLookupError(c, "User not found", err)
		return nil, false
	}
	return &user, true
}

func signUpHandler(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "missing required fields", err.Error())
		return
	}
	user, err := RegisterUser(req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	respondOK(c, http.StatusOK, user, "User registered successfully")
}

func loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "missing required fields", err.Error())
		return
	}
	user, err := Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": user.ID,
		"exp":    time.Now().Add(sessionTTL).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to generate token", nil)
		return
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", tokenString, int(sessionTTL.Seconds()), "/", "", true, true)
	respondOK(c, http.StatusOK, gin.H{}, "Login successful")
}

func logoutHandler(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
	respondOK(c, http.StatusOK, gin.H{}, "Logged out successfully")
}

// pingHandler returns the authenticated user, confirming the session is live.
func pingHandler(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, user, "User found")
}
