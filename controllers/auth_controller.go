package controllers

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resetTokenTTL = 30 * time.Minute

type AuthController struct {
	db *gorm.DB
}

func NewAuthController() *AuthController {
	return &AuthController{db: utils.GetDB()}
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	secret := os.Getenv("JWT_SECRET")
	token, err := utils.GenerateJWT(user.ID, user.Role, secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	refresh, _, err := utils.GenerateRefreshToken(user.ID, secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":         token,
		"refresh_token": refresh,
		"user":          user,
	})
}

// POST /auth/logout
// The presented token goes on the blacklist until it would expire anyway.
func (ac *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No token provided"})
		return
	}

	ttl := time.Hour * 72
	if claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET")); err == nil {
		if exp, ok := claims["exp"].(float64); ok {
			remaining := time.Until(time.Unix(int64(exp), 0))
			if remaining > 0 {
				ttl = remaining
			}
		}
	}

	if store := utils.GetCache(); store != nil {
		if err := store.Set(c.Request.Context(), "blacklist:"+token, "1", ttl); err != nil {
			utils.LogError(err, "blacklist token")
		}
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Logged out"})
}

// POST /auth/reset_password
// The response never reveals whether the address exists; the email send
// runs in the background and its failure is swallowed.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err == nil {
		if store := utils.GetCache(); store != nil {
			token := uuid.NewString()
			if err := store.Set(c.Request.Context(), "reset:"+token, user.Email, resetTokenTTL); err != nil {
				utils.LogError(err, "store reset token")
			} else {
				link := fmt.Sprintf("%s/reset-password-confirm/?token=%s&email=%s",
					os.Getenv("FRONTEND_URL"), token, user.Email)
				body := "Click the link to reset your password:\n" + link
				go func(to string) {
					err := utils.SendEmail(to, "Password Reset Link", body,
						os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"),
						os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
					if err != nil {
						utils.LogError(err, "send reset email")
					}
				}(user.Email)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"detail": "If the email exists, instructions were sent."})
}

// POST /auth/reset_password_confirm
func (ac *AuthController) ResetPasswordConfirm(c *gin.Context) {
	var req struct {
		Email       string `json:"email" binding:"required,email"`
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	store := utils.GetCache()
	if store == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	key := "reset:" + req.Token
	email, err := store.Get(c.Request.Context(), key)
	if err != nil || email != req.Email {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	var user models.User
	if err := ac.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = hash
	if err := ac.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if err := store.Del(c.Request.Context(), key); err != nil {
		utils.LogError(err, "consume reset token")
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Password changed successfully."})
}

// PUT /auth/change_password
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID := currentUserID(c)

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := ac.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if !utils.CheckPasswordHash(req.OldPassword, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Old password does not match"})
		return
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	user.Password = hash
	if err := ac.db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"detail": "Password changed successfully."})
}

// POST /auth/refresh
func (ac *AuthController) Refresh(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	secret := os.Getenv("JWT_SECRET")
	claims, err := utils.ParseJWT(req.RefreshToken, secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}
	if typ, _ := claims["type"].(string); typ != "refresh" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
		return
	}
	userIDf, ok := claims["user_id"].(float64)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token payload"})
		return
	}

	var user models.User
	if err := ac.db.First(&user, uint(userIDf)).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	token, err := utils.GenerateJWT(user.ID, user.Role, secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
