package complaintControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FabioFebre/tienda-api/middleware"
	"github.com/FabioFebre/tienda-api/models"
)

type ComplaintInput struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// POST /reclamos
//
// Open to everyone; a logged-in session attaches the user id to the report.
func CreateComplaint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ComplaintInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		complaint := models.Complaint{
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		}
		if sess := middleware.GetSession(c); sess.IsLoggedIn {
			complaint.UserID = sess.User.ID
		}

		if err := db.Create(&complaint).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create complaint"})
			return
		}
		c.JSON(http.StatusCreated, complaint)
	}
}

// GET /admin/reclamos (staff)
func GetAllComplaints(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var complaints []models.Complaint
		if err := db.Order("created_at desc").Find(&complaints).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch complaints"})
			return
		}
		c.JSON(http.StatusOK, complaints)
	}
}

// DELETE /admin/reclamos/:id (staff)
func DeleteComplaint(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.Complaint{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete complaint"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted"})
	}
}
