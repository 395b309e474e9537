package controllers

import (
	"swiftaid/models"
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

// DispatchController serves ambulances and hospital assignments.
type DispatchController struct {
	ambulanceService  *services.AmbulanceService
	assignmentService *services.AssignmentService
}

func NewDispatchController(ambulanceService *services.AmbulanceService, assignmentService *services.AssignmentService) *DispatchController {
	return &DispatchController{
		ambulanceService:  ambulanceService,
		assignmentService: assignmentService,
	}
}

// ListAmbulanceAssignments returns every dispatched ambulance
// @Summary Dispatched ambulances
// @Tags Dispatch
// @Produce json
// @Success 200 {object} models.AmbulanceAssignmentsResponse
// @Router /admin/ambulance-assignments [get]
func (dc *DispatchController) ListAmbulanceAssignments(c *gin.Context) {
	assignments, err := dc.ambulanceService.ListAssignments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, assignments)
}

func (dc *DispatchController) GetAmbulance(c *gin.Context) {
	ambulance, err := dc.ambulanceService.GetAmbulance(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, ambulance)
}

// AssignAmbulance dispatches an ambulance to an existing incident
func (dc *DispatchController) AssignAmbulance(c *gin.Context) {
	var req models.AssignAmbulanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(utils.NewBadRequestError("incident_id is required"))
		return
	}

	if err := dc.ambulanceService.AssignAmbulance(c.Request.Context(), c.Param("id"), req.IncidentID); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "Ambulance assigned successfully")
}

// UnassignAmbulance frees an ambulance from its incident
// @Summary Unassign ambulance
// @Tags Dispatch
// @Produce json
// @Param id path string true "Ambulance ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /admin/ambulances/{id}/unassign [post]
func (dc *DispatchController) UnassignAmbulance(c *gin.Context) {
	if err := dc.ambulanceService.UnassignAmbulance(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "Ambulance unassigned successfully")
}

func (dc *DispatchController) DeleteAmbulance(c *gin.Context) {
	if err := dc.ambulanceService.DeleteAmbulance(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "Ambulance deleted successfully")
}

// GetIncidentHospitals returns the hospital and ambulance response to one
// incident
// @Summary Incident response state
// @Tags Dispatch
// @Produce json
// @Param incident_id path string true "Incident ID"
// @Success 200 {object} models.IncidentResponseState
// @Failure 404 {object} models.APIResponse
// @Router /admin/incident-hospitals/{incident_id} [get]
func (dc *DispatchController) GetIncidentHospitals(c *gin.Context) {
	state, err := dc.assignmentService.GetIncidentResponseState(c.Request.Context(), c.Param("incident_id"))
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, state)
}

// ListIncidentAssignments summarises the response to every incident
// @Summary Incident response summaries
// @Tags Dispatch
// @Produce json
// @Success 200 {array} models.IncidentResponseSummary
// @Router /admin/incident-assignments [get]
func (dc *DispatchController) ListIncidentAssignments(c *gin.Context) {
	summaries, err := dc.assignmentService.GetAllIncidentResponseStates(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, summaries)
}

// CreateTestAssignments seeds demo assignments for the newest incidents
func (dc *DispatchController) CreateTestAssignments(c *gin.Context) {
	result, err := dc.assignmentService.CreateTestAssignments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, result)
}
