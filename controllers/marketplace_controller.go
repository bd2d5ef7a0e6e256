package controllers

import (
	"net/http"
	"strconv"

	"fitcoach/config"
	"fitcoach/models"

	"github.com/gin-gonic/gin"
)

// GET /marketplace/products?category=supplements
func ListProducts(c *gin.Context) {
	q := config.DB.Model(&models.Product{})
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}

	var products []models.Product
	if err := q.Order("rating desc").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GET /marketplace/products/:id
func GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(id)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}
