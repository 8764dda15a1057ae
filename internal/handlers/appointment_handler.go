package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// AppointmentHandler é o painel administrativo.
type AppointmentHandler struct {
	list       *ucAppointment.ListAppointments
	transition *ucAppointment.TransitionStatus
	complete   *ucAppointment.CompleteAppointment
	bulk       *ucAppointment.BulkTransition
	edit       *ucAppointment.EditAppointment
	remove     *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(
	list *ucAppointment.ListAppointments,
	transition *ucAppointment.TransitionStatus,
	complete *ucAppointment.CompleteAppointment,
	bulk *ucAppointment.BulkTransition,
	edit *ucAppointment.EditAppointment,
	remove *ucAppointment.DeleteAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		list:       list,
		transition: transition,
		complete:   complete,
		bulk:       bulk,
		edit:       edit,
		remove:     remove,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BulkStatusRequest struct {
	IDs    []string `json:"ids"`
	Status string   `json:"status" binding:"required"`
}

type BulkStatusFailure struct {
	httperr.HTTPError
	Data []ucAppointment.BulkResult `json:"data"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	from, err := parseOptionalDay(c.Query("from"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inicial inválida.")
		return
	}
	to, err := parseOptionalDay(c.Query("to"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data final inválida.")
		return
	}

	rows, err := h.list.Execute(c.Request.Context(), domain.AppointmentFilter{
		Status: domain.Status(c.Query("status")),
		From:   from,
		To:     to,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, rows)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.transition.Execute(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointment(ap))
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.complete.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointment(ap))
}

func (h *AppointmentHandler) BulkStatus(c *gin.Context) {
	var req BulkStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	results, err := h.bulk.Execute(c.Request.Context(), req.IDs, req.Status)
	if err != nil && results != nil {
		// parte do lote já foi gravada: devolve o que aconteceu com cada id
		zap.L().Error("bulk status aborted", zap.Error(err))
		c.JSON(http.StatusInternalServerError, BulkStatusFailure{
			HTTPError: httperr.HTTPError{
				Code:    "internal_error",
				Message: "Erro interno do servidor. Parte dos agendamentos pode ter sido atualizada.",
			},
			Data: results,
		})
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, results)
}

// ======================================================
// EDIT / DELETE
// ======================================================

func (h *AppointmentHandler) Edit(c *gin.Context) {
	var req EditAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.edit.Execute(c.Request.Context(), c.Param("id"), "", ucAppointment.EditInput{
		ServiceType: req.ServiceType,
		Date:        req.Date,
		Time:        req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.ToAppointment(ap))
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.remove.Execute(c.Request.Context(), c.Param("id")); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
