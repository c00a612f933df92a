package models

type Shop struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Distance     string  `json:"distance"`
	Rating       float64 `json:"rating"`
	Address      string  `json:"address"`
	Phone        string  `json:"phone"`
	OpenNow      bool    `json:"openNow"`
	DeliveryTime string  `json:"deliveryTime"`
}
