package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// BookingHandler atende o site público: catálogo, horários livres,
// agendamento e a área do cliente (listar, editar, cancelar).
type BookingHandler struct {
	services     *domain.ServiceCatalog
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.Book
	byClient     *ucAppointment.ListByClient
	edit         *ucAppointment.EditAppointment
	cancel       *ucAppointment.CancelAppointment
}

func NewBookingHandler(
	services *domain.ServiceCatalog,
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.Book,
	byClient *ucAppointment.ListByClient,
	edit *ucAppointment.EditAppointment,
	cancel *ucAppointment.CancelAppointment,
) *BookingHandler {
	return &BookingHandler{
		services:     services,
		availability: availability,
		book:         book,
		byClient:     byClient,
		edit:         edit,
		cancel:       cancel,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	ServiceType string `json:"service_type"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // H:mm
}

type EditAppointmentRequest struct {
	ServiceType string `json:"service_type"`
	Date        string `json:"date"`
	Time        string `json:"time"`
}

// ======================================================
// SERVICES
// ======================================================

func (h *BookingHandler) Services(c *gin.Context) {
	httpresp.List(c, h.services.All())
}

// ======================================================
// AVAILABILITY
// ======================================================

type availabilityResponse struct {
	Date string `json:"date"`
	*domain.Availability
}

func (h *BookingHandler) Availability(c *gin.Context) {
	raw := c.Query("date")
	if raw == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := timezone.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida. Use o formato AAAA-MM-DD.")
		return
	}

	av, err := h.availability.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, availabilityResponse{
		Date:         timezone.FormatDate(date),
		Availability: av,
	})
}

// ======================================================
// BOOK
// ======================================================

func (h *BookingHandler) Book(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, client, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		Name:        req.Name,
		Phone:       req.Phone,
		ServiceType: req.ServiceType,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": dto.ToAppointment(ap),
		"client_id":   client.ID,
	})
}

// ======================================================
// CLIENT AREA
// ======================================================

func (h *BookingHandler) ClientAppointments(c *gin.Context) {
	client, apps, err := h.byClient.Execute(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"client":       client,
		"appointments": dto.ToAppointments(apps),
	})
}

func (h *BookingHandler) Edit(c *gin.Context) {
	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.edit.Execute(
		c.Request.Context(),
		c.Param("id"),
		c.Param("clientId"),
		ucAppointment.EditInput{
			ServiceType: req.ServiceType,
			Date:        req.Date,
			Time:        req.Time,
		},
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointment(ap))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("id"), c.Param("clientId"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointment(ap))
}
