package controllers

import (
	"swiftaid/services"
	"swiftaid/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryController serves the hospital and police account directories.
type DirectoryController struct {
	hospitalService *services.HospitalService
	policeService   *services.PoliceService
}

func NewDirectoryController(hospitalService *services.HospitalService, policeService *services.PoliceService) *DirectoryController {
	return &DirectoryController{
		hospitalService: hospitalService,
		policeService:   policeService,
	}
}

func (dc *DirectoryController) ListHospitals(c *gin.Context) {
	hospitals, err := dc.hospitalService.ListHospitals(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, hospitals)
}

func (dc *DirectoryController) GetHospital(c *gin.Context) {
	hospital, err := dc.hospitalService.GetHospital(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, hospital)
}

func (dc *DirectoryController) DeleteHospital(c *gin.Context) {
	if err := dc.hospitalService.DeleteHospital(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "Hospital deleted successfully")
}

func (dc *DirectoryController) ListPoliceOfficers(c *gin.Context) {
	officers, err := dc.policeService.ListOfficers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, officers)
}

func (dc *DirectoryController) GetPoliceOfficer(c *gin.Context) {
	officer, err := dc.policeService.GetOfficer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	utils.SuccessResponse(c, officer)
}

func (dc *DirectoryController) DeletePoliceOfficer(c *gin.Context) {
	if err := dc.policeService.DeleteOfficer(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	utils.MessageResponse(c, "Police officer deleted successfully")
}
