package handlers

import (
	"net/http"
	"time"

	"railbooking/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GET /api/trains?from=&to=&date=
func (a *API) SearchTrains(c *gin.Context) {
	trains, err := a.Catalog.ListTrains(c.Request.Context(),
		c.Query("from"), c.Query("to"), c.Query("date"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

// GET /api/trains/:number/seats?date=&class=
func (a *API) SeatMap(c *gin.Context) {
	number := c.Param("number")
	date := c.Query("date")
	class := models.FareClass(c.Query("class"))
	if date == "" || !class.Valid() {
		RespondError(c, http.StatusBadRequest, "date and a valid class are required", nil)
		return
	}
	if _, err := a.Catalog.GetTrain(c.Request.Context(), number); err != nil {
		RespondDomainError(c, err)
		return
	}

	seats := a.Inventory.SeatMap(number, date, class)
	c.JSON(http.StatusOK, gin.H{
		"train": number,
		"date":  date,
		"class": class,
		"seats": seats,
	})
}

type stationProgress struct {
	models.StationStop
	Status string `json:"status"` // completed / current / upcoming
}

// GET /api/trains/:number/status returns schedule-derived running status.
func (a *API) TrainStatus(c *gin.Context) {
	train, err := a.Catalog.GetTrain(c.Request.Context(), c.Param("number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if len(train.Stops) == 0 {
		c.JSON(http.StatusOK, gin.H{"train": train, "stations": []stationProgress{}})
		return
	}

	now := time.Now().Format("15:04")
	stations := make([]stationProgress, len(train.Stops))
	current := ""
	for i, stop := range train.Stops {
		status := "upcoming"
		arrival := stop.Arrival
		if arrival == "Source" {
			arrival = stop.Departure
		}
		if arrival <= now {
			status = "completed"
		}
		stations[i] = stationProgress{StationStop: stop, Status: status}
	}
	// last completed stop is where the train currently is
	for i := len(stations) - 1; i >= 0; i-- {
		if stations[i].Status == "completed" {
			stations[i].Status = "current"
			current = stations[i].Name
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"train":           train,
		"current_station": current,
		"stations":        stations,
	})
}
