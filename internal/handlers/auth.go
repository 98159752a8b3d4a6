package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/ridebuddy/ridebuddy-backend/internal/models"
	"github.com/ridebuddy/ridebuddy-backend/pkg/utils"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=6"`
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	IsDriver      bool   `json:"isDriver"`
	DriverLicense string `json:"driverLicense"`
	VehicleInfo   string `json:"vehicleInfo"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(400, gin.H{"error": "User already exists"})
			return
		}

		user := models.User{
			Email:         input.Email,
			Password:      input.Password,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			PhoneNumber:   input.Phone,
			IsDriver:      input.IsDriver,
			DriverLicense: input.DriverLicense,
			VehicleInfo:   input.VehicleInfo,
		}

		if err := user.HashPassword(); err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		if result := db.Create(&user); result.Error != nil {
			c.JSON(500, gin.H{"error": "Failed to create user"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(201, gin.H{
			"message": "User registered successfully",
			"user":    user,
			"token":   token,
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		token, err := utils.GenerateToken(&user)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    user,
		})
	}
}
