package team

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/handler"
	"github.com/campfirehq/youthorg-api/internal/middleware"
	"github.com/campfirehq/youthorg-api/internal/model"
	conflictService "github.com/campfirehq/youthorg-api/internal/service/conflict"
	kidService "github.com/campfirehq/youthorg-api/internal/service/kid"
	teamService "github.com/campfirehq/youthorg-api/internal/service/team"
	"github.com/campfirehq/youthorg-api/internal/service/vehicleswap"
)

type Handler struct {
	service   *teamService.Service
	conflicts *conflictService.Service
	swaps     *vehicleswap.Service
	kids      *kidService.Service
}

func NewHandler(
	service *teamService.Service,
	conflicts *conflictService.Service,
	swaps *vehicleswap.Service,
	kids *kidService.Service,
) *Handler {
	return &Handler{
		service:   service,
		conflicts: conflicts,
		swaps:     swaps,
		kids:      kids,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	teams := r.Group("/teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.ListTeams)
		teams.GET("/:id", h.GetTeam)
		teams.DELETE("/:id", h.DeleteTeam)

		teams.POST("/:id/kids/:kidId", h.AssignKid)
		teams.DELETE("/:id/kids/:kidId", h.RemoveKid)
		teams.POST("/:id/instructors/:instructorId", h.AssignInstructor)
		teams.DELETE("/:id/instructors/:instructorId", h.RemoveInstructor)
		teams.POST("/:id/kids/:kidId/instructor", h.AssignInstructorToKid)
		teams.DELETE("/:id/kids/:kidId/instructor", h.RemoveInstructorFromKid)

		teams.POST("/:id/vehicles", h.AssignVehicle)
		teams.DELETE("/:id/vehicles/:vehicleId", h.RemoveVehicle)
		teams.POST("/:id/vehicles/check", h.CheckVehicleConflicts)
		teams.POST("/:id/vehicles/check-multiple", h.CheckMultipleVehicleConflicts)
		teams.POST("/:id/kids/:kidId/vehicle", h.AssignVehicleToKid)

		teams.POST("/:id/swaps", h.SwapVehicles)
		teams.POST("/:id/swaps/validate", h.ValidateSwap)
		teams.GET("/:id/kids/:kidId/swappable", h.SwappableKids)
	}
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func actorID(c *gin.Context) uuid.UUID {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (h *Handler) CreateTeam(c *gin.Context) {
	var req model.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	team, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(team))
}

func (h *Handler) GetTeam(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	team, err := h.service.GetTeam(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(team))
}

func (h *Handler) ListTeams(c *gin.Context) {
	teams, err := h.service.ListTeams(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(teams))
}

func (h *Handler) DeleteTeam(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) AssignKid(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	kidID, ok := pathUUID(c, "kidId")
	if !ok {
		return
	}

	if err := h.service.AssignKid(c.Request.Context(), teamID, kidID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveKid(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	kidID, ok := pathUUID(c, "kidId")
	if !ok {
		return
	}

	if err := h.service.RemoveKid(c.Request.Context(), teamID, kidID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) AssignInstructor(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	instructorID, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}

	if err := h.service.AssignInstructor(c.Request.Context(), teamID, instructorID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveInstructor(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	instructorID, ok := pathUUID(c, "instructorId")
	if !ok {
		return
	}

	if err := h.service.RemoveInstructor(c.Request.Context(), teamID, instructorID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

type assignInstructorToKidRequest struct {
	InstructorID uuid.UUID `json:"instructor_id" binding:"required"`
}

func (h *Handler) AssignInstructorToKid(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	kidID, ok := pathUUID(c, "kidId")
	if !ok {
		return
	}

	var req assignInstructorToKidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.AssignInstructorToKid(c.Request.Context(), teamID, kidID, req.InstructorID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveInstructorFromKid(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	kidID, ok := pathUUID(c, "kidId")
	if !ok {
		return
	}

	if err := h.service.RemoveInstructorFromKid(c.Request.Context(), teamID, kidID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

// AssignVehicle attaches a vehicle to the team's pool. A kid-level conflict
// on another team blocks outright; a team-level conflict warns unless the
// request sets force.
func (h *Handler) AssignVehicle(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.AssignVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.AssignVehicle(c.Request.Context(), teamID, req.VehicleID, req.Force)
	if err != nil {
		status := handler.StatusFromError(err)
		c.JSON(status, &handler.Response{
			Status:  "error",
			Message: err.Error(),
			Data:    result,
		})
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func (h *Handler) RemoveVehicle(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	vehicleID, ok := pathUUID(c, "vehicleId")
	if !ok {
		return
	}

	if err := h.service.RemoveVehicle(c.Request.Context(), teamID, vehicleID); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

type checkVehicleRequest struct {
	VehicleID uuid.UUID `json:"vehicle_id" binding:"required"`
}

// CheckVehicleConflicts is the read-only check: it reports conflicts for
// assigning the vehicle to this team without changing anything.
func (h *Handler) CheckVehicleConflicts(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req checkVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result := h.conflicts.CheckVehicleConflicts(c.Request.Context(), req.VehicleID, &teamID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"result":  result,
		"summary": h.conflicts.Summary(result),
	}))
}

type checkMultipleRequest struct {
	VehicleIDs []uuid.UUID `json:"vehicle_ids" binding:"required,min=1"`
}

func (h *Handler) CheckMultipleVehicleConflicts(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req checkMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	results := h.conflicts.CheckMultipleVehicleConflicts(c.Request.Context(), req.VehicleIDs, &teamID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(results))
}

func (h *Handler) AssignVehicleToKid(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	kidID, ok := pathUUID(c, "kidId")
	if !ok {
		return
	}

	var req model.AssignVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result, err := h.service.AssignVehicleToKid(c.Request.Context(), teamID, kidID, req.VehicleID, actorID(c))
	if err != nil {
		status := handler.StatusFromError(err)
		c.JSON(status, &handler.Response{
			Status:  "error",
			Message: err.Error(),
			Data:    result,
		})
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

// SwapVehicles exchanges the vehicle assignments of two kids. Failures come
// back as a tagged result, not a transport error.
func (h *Handler) SwapVehicles(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	result := h.swaps.SwapVehiclesBetweenKids(c.Request.Context(), req.KidAID, req.KidBID, &teamID, actorID(c))
	if !result.Success {
		c.JSON(swapStatus(result.ErrorCode), &handler.Response{
			Status:  "error",
			Message: result.Message,
			Data:    result,
		})
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(result))
}

func swapStatus(code string) int {
	switch code {
	case model.SwapErrNotFound:
		return http.StatusNotFound
	case model.SwapErrNoOp:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) ValidateSwap(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req model.SwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	kids, err := h.kids.ListKidsByTeam(c.Request.Context(), teamID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	validation := vehicleswap.ValidateSwap(req.KidAID, req.KidBID, kids, teamID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(validation))
}

// SwappableKids lists the same-team kids the subject could swap with.
func (h *Handler) SwappableKids(c *gin.Context) {
	teamID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	kidID, ok := pathUUID(c, "kidId")
	if !ok {
		return
	}

	kids, err := h.kids.ListKidsByTeam(c.Request.Context(), teamID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	subject, err := h.kids.GetKid(c.Request.Context(), kidID)
	if err != nil {
		handler.Error(c, err)
		return
	}

	candidates := vehicleswap.SwappableKids(subject, kids, teamID)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(candidates))
}
