package controllers

import (
	"swiftaid/models"
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

type IncidentController struct {
	incidentService *services.IncidentService
}

func NewIncidentController(incidentService *services.IncidentService) *IncidentController {
	return &IncidentController{
		incidentService: incidentService,
	}
}

// ListIncidents returns a page of incidents, newest first
// @Summary List incidents
// @Tags Incidents
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(50)
// @Success 200 {array} models.IncidentResponse
// @Router /dashboard/incidents [get]
func (ic *IncidentController) ListIncidents(c *gin.Context) {
	var page models.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		c.Error(utils.NewBadRequestError("Invalid pagination parameters"))
		return
	}

	incidents, err := ic.incidentService.ListIncidents(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, incidents)
}

// GetIncident returns one incident
// @Summary Get incident
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} models.IncidentResponse
// @Failure 404 {object} models.APIResponse
// @Router /dashboard/incidents/{id} [get]
func (ic *IncidentController) GetIncident(c *gin.Context) {
	incident, err := ic.incidentService.GetIncident(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, incident)
}

// DeleteIncident removes one incident
// @Summary Delete incident
// @Tags Incidents
// @Produce json
// @Param id path string true "Incident ID"
// @Success 200 {object} models.APIResponse
// @Failure 404 {object} models.APIResponse
// @Router /dashboard/incidents/{id} [delete]
func (ic *IncidentController) DeleteIncident(c *gin.Context) {
	if err := ic.incidentService.DeleteIncident(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "Incident deleted successfully")
}
