package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reqdto "github.com/JulianHBuecher/ev-server/internal/handler/dto/request"
	resdto "github.com/JulianHBuecher/ev-server/internal/handler/dto/response"
	"github.com/JulianHBuecher/ev-server/internal/handler/httperr"
	"github.com/JulianHBuecher/ev-server/internal/handler/middleware"
	"github.com/JulianHBuecher/ev-server/internal/infra"
	"github.com/JulianHBuecher/ev-server/internal/pkg/errs"
	"github.com/JulianHBuecher/ev-server/internal/usecase/commands"
	"github.com/JulianHBuecher/ev-server/internal/usecase/queries"
)

type ReservationHandler struct {
	commands commands.ReservationCommands
	queries  queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, qrys queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{commands: cmds, queries: qrys}
}

func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	tenantID, actor, ok := callerContext(c)
	if !ok {
		return
	}

	var req reqdto.UpsertReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid request format", err.Error())
		return
	}

	res, err := h.commands.Create(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.Success(res.ID()))
}

func (h *ReservationHandler) UpdateReservation(c *gin.Context) {
	tenantID, actor, ok := callerContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req reqdto.UpsertReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid request format", err.Error())
		return
	}

	res, err := h.commands.Update(c.Request.Context(), tenantID, actor, id, req)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.Success(res.ID()))
}

func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	tenantID, actor, ok := callerContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	res, err := h.commands.Cancel(c.Request.Context(), tenantID, actor, id)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.Success(res.ID()))
}

func (h *ReservationHandler) DeleteReservation(c *gin.Context) {
	tenantID, actor, ok := callerContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.commands.Delete(c.Request.Context(), tenantID, actor, id); err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.Success(id))
}

func (h *ReservationHandler) GetReservation(c *gin.Context) {
	tenantID, _, ok := callerContext(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	resp, err := resdto.FromReservationView(view)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) GetReservations(c *gin.Context) {
	tenantID, filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.queries.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	resp, err := resdto.FromReservationList(result)
	if err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReservationHandler) ExportReservations(c *gin.Context) {
	tenantID, filter, ok := h.bindListFilter(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="exported-reservations.csv"`)
	if err := h.queries.ExportCSV(c.Request.Context(), tenantID, filter, c.Writer); err != nil {
		abortWithTaxonomyError(c, err)
		return
	}
}

func (h *ReservationHandler) bindListFilter(c *gin.Context) (uuid.UUID, queries.ReservationFilter, bool) {
	tid, _, okCaller := callerContext(c)
	if !okCaller {
		return uuid.Nil, queries.ReservationFilter{}, false
	}

	var req reqdto.ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "VALIDATION", "Invalid query parameters", err.Error())
		return uuid.Nil, queries.ReservationFilter{}, false
	}

	filter := queries.ReservationFilter{
		StationID:       req.ChargingStationID,
		ConnectorID:     req.ConnectorID,
		Statuses:        req.Statuses(),
		Type:            req.Type,
		UserID:          req.UserID,
		CarID:           req.CarID,
		From:            req.StartDateTime,
		To:              req.EndDateTime,
		Search:          req.Search,
		Limit:           req.Limit,
		Offset:          req.Skip,
		SortField:       req.SortField,
		SortDescending:  req.SortDescending,
		OnlyRecordCount: req.OnlyRecordCount,
	}
	return tid, filter, true
}

func callerContext(c *gin.Context) (uuid.UUID, commands.Actor, bool) {
	tenantID, ok := middleware.GetTenantID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("tenant missing from context"), "INTERNAL", "Internal server error", nil)
		return uuid.Nil, commands.Actor{}, false
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("user missing from context"), "INTERNAL", "Internal server error", nil)
		return uuid.Nil, commands.Actor{}, false
	}
	return tenantID, actor, true
}

func isRepoNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.New("invalid reservation id"), "VALIDATION", "Reservation id must be a positive integer", nil)
		return 0, false
	}
	return id, true
}

// abortWithTaxonomyError maps command/query errors onto the stable error
// codes of the REST contract.
func abortWithTaxonomyError(c *gin.Context, err error) {
	type mapping struct {
		sentinel error
		status   int
		code     string
		message  string
	}
	mappings := []mapping{
		{errs.ErrValidation, http.StatusBadRequest, "VALIDATION", "Request validation failed"},
		{errs.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "Referenced entity does not exist"},
		{errs.ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS", "Reservation id already belongs to another credential"},
		{errs.ErrConnectorOccupied, http.StatusConflict, "OCCUPIED", "Connector already carries a live reservation"},
		{errs.ErrCollision, http.StatusConflict, "COLLISION", "Reservation collides with an existing reservation"},
		{errs.ErrMultipleReserveNow, http.StatusConflict, "MULTIPLE_RESERVE_NOW", "An active reserve-now reservation already exists"},
		{errs.ErrInvalidTransition, http.StatusConflict, "INVALID_STATUS_TRANSITION", "Status transition not permitted"},
		{errs.ErrRemoteRejected, http.StatusConflict, "REMOTE_REJECTED", "Charge point rejected the command"},
		{errs.ErrRemoteFaulted, http.StatusConflict, "REMOTE_FAULTED", "Charge point reported a fault"},
		{errs.ErrRemoteOccupied, http.StatusConflict, "REMOTE_OCCUPIED", "Charge point reported the connector occupied"},
		{errs.ErrRemoteUnavailable, http.StatusConflict, "REMOTE_UNAVAILABLE", "Charge point reported the connector unavailable"},
		{errs.ErrBackendUnreachable, http.StatusBadGateway, "BACKEND_UNREACHABLE", "No live connection to the charging station"},
		{errs.ErrAuthorization, http.StatusForbidden, "AUTHORIZATION", "Not authorized for this reservation"},
	}
	for _, m := range mappings {
		if errors.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, m.code, m.message, err.Error())
			return
		}
	}
	if isRepoNotFound(err) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "NOT_FOUND", "Referenced entity does not exist", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "INTERNAL", "Internal server error", nil)
}
