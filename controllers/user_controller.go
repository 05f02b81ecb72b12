package controllers

import (
	"net/http"

	"github.com/enosgb/admarket-back/models"
	"github.com/enosgb/admarket-back/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController implements the admin-or-self policy: staff may do
// anything; a regular caller may only read and update their own record.
type UserController struct {
	db *gorm.DB
}

func NewUserController() *UserController {
	return &UserController{db: utils.GetDB()}
}

var userOrderings = map[string]string{
	"id":         "id",
	"email":      "email",
	"name":       "name",
	"created_at": "created_at",
}

// GET /users (admin only)
func (uc *UserController) List(c *gin.Context) {
	if !isAdminRequest(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
		return
	}

	page, pageSize, offset := parsePagination(c)

	query := uc.db.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(name) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
		return
	}

	order := "id DESC"
	if requested := c.Query("ordering"); requested != "" {
		direction := "ASC"
		field := requested
		if field[0] == '-' {
			direction = "DESC"
			field = field[1:]
		}
		if column, ok := userOrderings[field]; ok {
			order = column + " " + direction
		}
	}

	var users []models.User
	if err := query.Order(order).Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	listResponse(c, total, page, users)
}

// POST /users (admin only)
func (uc *UserController) Create(c *gin.Context) {
	if !isAdminRequest(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
		return
	}

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Name     string `json:"name"`
		Image    string `json:"image"`
		Password string `json:"password" binding:"required,min=6"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be user or admin"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:    req.Email,
		Name:     req.Name,
		Image:    req.Image,
		Password: hash,
		Role:     role,
	}
	if err := uc.db.Create(&user).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GET /users/:id (admin or self)
func (uc *UserController) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !isAdminRequest(c) && id != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to read other users"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// PUT/PATCH /users/:id (admin or self)
func (uc *UserController) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	admin := isAdminRequest(c)
	if !admin && id != currentUserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to update other users"})
		return
	}

	var req struct {
		Email    *string `json:"email"`
		Name     *string `json:"name"`
		Image    *string `json:"image"`
		Password *string `json:"password"`
		Role     *string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	var user models.User
	if err := uc.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.Email != nil {
		if *req.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email cannot be empty"})
			return
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Image != nil {
		user.Image = *req.Image
	}
	if req.Password != nil {
		if len(*req.Password) < 6 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password too short"})
			return
		}
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.Password = hash
	}
	if req.Role != nil {
		// only staff may change roles
		if !admin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to change role"})
			return
		}
		if *req.Role != models.RoleUser && *req.Role != models.RoleAdmin {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role must be user or admin"})
			return
		}
		user.Role = *req.Role
	}

	if err := uc.db.Save(&user).Error; err != nil {
		if isDuplicateKeyErr(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already in use"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// DELETE /users/:id (admin only)
// The user's favorites go with the account.
func (uc *UserController) Delete(c *gin.Context) {
	if !isAdminRequest(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Admin privileges required"})
		return
	}

	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := uc.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	err := uc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		utils.LogError(err, "delete user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	utils.InvalidateAdCache(c.Request.Context())

	c.JSON(http.StatusNoContent, nil)
}
