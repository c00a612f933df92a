package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/healbridge/telehealth-api/internal/models"
)

// nearbyShops is a fixed list; a real location API is out of scope.
var nearbyShops = []models.Shop{
	{
		ID:           1,
		Name:         "Apollo Pharmacy",
		Distance:     "0.5 km",
		Rating:       4.5,
		Address:      "123 Main Street, City Center",
		Phone:        "+91 98765 43210",
		OpenNow:      true,
		DeliveryTime: "20-30 mins",
	},
	{
		ID:           2,
		Name:         "MedPlus",
		Distance:     "1.2 km",
		Rating:       4.3,
		Address:      "456 Park Avenue, Downtown",
		Phone:        "+91 98765 43211",
		OpenNow:      true,
		DeliveryTime: "30-40 mins",
	},
	{
		ID:           3,
		Name:         "Wellness Forever",
		Distance:     "2.1 km",
		Rating:       4.7,
		Address:      "789 Health Road, Medical District",
		Phone:        "+91 98765 43212",
		OpenNow:      true,
		DeliveryTime: "40-50 mins",
	},
}

func (h *Handler) GetNearbyShops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"shops": nearbyShops})
}
