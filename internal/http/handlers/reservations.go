package handlers

import (
	"context"
	"net/http"

	"railbooking/internal/domain/models"
	"railbooking/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type submitQueryRequest struct {
	Query    models.TripQuery   `json:"query"`
	Manifest []models.Passenger `json:"manifest"`
}

// POST /api/reservations
func (a *API) SubmitQuery(c *gin.Context) {
	var req submitQueryRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := a.Workflow.SubmitQuery(c.Request.Context(), req.Query, req.Manifest, middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

type selectTrainRequest struct {
	TrainNumber string           `json:"train_number"`
	Class       models.FareClass `json:"class"`
}

// POST /api/reservations/:id/train
func (a *API) SelectTrain(c *gin.Context) {
	var req selectTrainRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := a.Workflow.SelectTrainAndClass(c.Request.Context(), c.Param("id"), req.TrainNumber, req.Class)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type identityRequest struct {
	DocumentID string `json:"document_id"`
}

// POST /api/reservations/:id/identity
func (a *API) RequestIdentity(c *gin.Context) {
	var req identityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, challengeID, err := a.Workflow.GateIdentity(c.Request.Context(), c.Param("id"), req.DocumentID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res, "challenge_id": challengeID})
}

type verifyIdentityRequest struct {
	Code string `json:"code"`
}

// POST /api/reservations/:id/identity/verify
func (a *API) VerifyIdentity(c *gin.Context) {
	var req verifyIdentityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := a.Workflow.ConfirmIdentity(c.Request.Context(), c.Param("id"), req.Code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type selectSeatsRequest struct {
	SeatCodes []string `json:"seat_codes"`
}

// POST /api/reservations/:id/seats
func (a *API) SelectSeats(c *gin.Context) {
	var req selectSeatsRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := a.Workflow.SelectSeats(c.Request.Context(), c.Param("id"), req.SeatCodes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type payRequest struct {
	Token  string `json:"token"`
	Method string `json:"method"` // card / upi / netbanking
}

// POST /api/reservations/:id/pay
func (a *API) Pay(c *gin.Context) {
	var req payRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), a.payTimeout())
	defer cancel()

	res, err := a.Workflow.Pay(ctx, c.Param("id"), req.Token, req.Method)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/reservations/:id is an in-flight lookup by reservation id, with
// PNR fallback for confirmed tickets.
func (a *API) GetReservation(c *gin.Context) {
	id := c.Param("id")
	if res, err := a.Workflow.Get(c.Request.Context(), id); err == nil {
		c.JSON(http.StatusOK, res)
		return
	}
	res, err := a.Workflow.Status(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// DELETE /api/reservations/:id abandons an unconfirmed reservation.
func (a *API) Abandon(c *gin.Context) {
	res, err := a.Workflow.Abandon(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

type cancelRequest struct {
	PassengerIndices []int `json:"passenger_indices"`
	Confirm          bool  `json:"confirm"`
}

// POST /api/reservations/:pnr/cancel
func (a *API) Cancel(c *gin.Context) {
	var req cancelRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, refund, err := a.Workflow.Cancel(c.Request.Context(), models.CancellationRequest{
		PNR:              c.Param("id"),
		PassengerIndices: req.PassengerIndices,
		Confirm:          req.Confirm,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": res, "refund": refund})
}

// GET /api/reservations/:id/eticket
func (a *API) ETicket(c *gin.Context) {
	docs := a.Docs
	docs.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := docs.GenerateETicket(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/reservations/:id/refund-receipt
func (a *API) RefundReceipt(c *gin.Context) {
	docs := a.Docs
	docs.RequestID = middleware.GetRequestID(c)
	pdf, filename, err := docs.GenerateRefundReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// GET /api/bookings lists history for the authenticated user.
func (a *API) MyBookings(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == 0 {
		RespondError(c, http.StatusUnauthorized, "login required", nil)
		return
	}
	list, err := a.Workflow.Registry.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}
