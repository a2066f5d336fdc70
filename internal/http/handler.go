package http

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sabbajohn/ERP---geradores-sub000/internal/http/middleware"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/model"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/repository"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/schedule"
	"github.com/sabbajohn/ERP---geradores-sub000/internal/service"
)

type Handler struct {
	assignmentService *service.AssignmentService
	reportService     *service.ReportService
	customerService   *service.CustomerService
	generatorService  *service.GeneratorService
	technicianService *service.TechnicianService
	checklistService  *service.ChecklistService
	log               zerolog.Logger
}

func NewHandler(
	assignmentService *service.AssignmentService,
	reportService *service.ReportService,
	customerService *service.CustomerService,
	generatorService *service.GeneratorService,
	technicianService *service.TechnicianService,
	checklistService *service.ChecklistService,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		assignmentService: assignmentService,
		reportService:     reportService,
		customerService:   customerService,
		generatorService:  generatorService,
		technicianService: technicianService,
		checklistService:  checklistService,
		log:               log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	protected := r.Group("/")
	protected.Use(authMiddleware)

	admin := protected.Group("/admin")
	{
		admin.POST("/technicians", h.createTechnician)
		admin.GET("/technicians", h.listTechnicians)
		admin.GET("/technicians/:id", h.getTechnician)
		admin.PUT("/technicians/:id", h.updateTechnician)
		admin.DELETE("/technicians/:id", h.deleteTechnician)
		admin.DELETE("/customers/:id", h.deleteCustomer)
		admin.PUT("/generators/:id/retire", h.retireGenerator)
		admin.DELETE("/generators/:id", h.deleteGenerator)
		admin.GET("/assignments", h.listAssignments)
	}

	office := protected.Group("/office")
	{
		office.GET("/customers", h.listCustomers)
		office.POST("/customers", h.createCustomer)
		office.GET("/customers/:id", h.getCustomer)
		office.PUT("/customers/:id", h.updateCustomer)

		office.GET("/generators", h.listGenerators)
		office.POST("/generators", h.createGenerator)
		office.GET("/generators/:id", h.getGenerator)
		office.PUT("/generators/:id", h.updateGenerator)

		office.GET("/technicians", h.listTechnicians)

		office.POST("/assignments", h.createAssignment)
		office.GET("/assignments", h.listAssignments)
		office.GET("/assignments/:id", h.getAssignment)
		office.PUT("/assignments/:id/reschedule", h.rescheduleAssignment)
		office.PUT("/assignments/:id/cancel", h.cancelAssignment)
		office.GET("/assignments/:id/report", h.getReport)

		office.POST("/checklists", h.createChecklist)
		office.GET("/checklists", h.listChecklists)
		office.GET("/checklists/:id", h.getChecklist)
	}

	technician := protected.Group("/technician")
	{
		technician.GET("/assignments", h.listAssignments)
		technician.GET("/assignments/:id", h.getAssignment)
		technician.PUT("/assignments/:id/start", h.startAssignment)
		technician.PUT("/assignments/:id/complete", h.completeAssignment)
		technician.PUT("/assignments/:id/cancel", h.cancelAssignment)
		technician.POST("/assignments/:id/report", h.fileReport)
		technician.GET("/assignments/:id/report", h.getReport)
		technician.GET("/reports", h.listMyReports)
	}
}

// Assignment handlers

func (h *Handler) createAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		TechnicianID string `json:"technician_id" binding:"required"`
		GeneratorID  string `json:"generator_id" binding:"required"`
		VisitDate    string `json:"visit_date" binding:"required"`
		StartTime    string `json:"start_time" binding:"required"`
		EndTime      string `json:"end_time" binding:"required"`
		Description  string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	assignment, err := h.assignmentService.Create(c.Request.Context(), principal, service.CreateAssignmentInput{
		TechnicianID: req.TechnicianID,
		GeneratorID:  req.GeneratorID,
		VisitDate:    req.VisitDate,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Description:  req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(assignment))
}

func (h *Handler) rescheduleAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid assignment id"))
		return
	}

	var req struct {
		VisitDate   string  `json:"visit_date" binding:"required"`
		StartTime   string  `json:"start_time" binding:"required"`
		EndTime     string  `json:"end_time" binding:"required"`
		Description *string `json:"description"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	assignment, err := h.assignmentService.Reschedule(c.Request.Context(), principal, id, service.RescheduleAssignmentInput{
		VisitDate:   req.VisitDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Description: req.Description,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) getAssignment(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid assignment id"))
		return
	}

	assignment, err := h.assignmentService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

func (h *Handler) listAssignments(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.AssignmentListFilter{}

	if technicianID := strings.TrimSpace(c.Query("technician_id")); technicianID != "" {
		filter.TechnicianID = &technicianID
	}
	if generatorID := strings.TrimSpace(c.Query("generator_id")); generatorID != "" {
		filter.GeneratorID = &generatorID
	}
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		st := schedule.Status(strings.ToUpper(status))
		if !st.Valid() {
			c.JSON(http.StatusBadRequest, errorResponse("invalid status"))
			return
		}
		filter.Status = &st
	}
	if dateFrom := strings.TrimSpace(c.Query("date_from")); dateFrom != "" {
		filter.DateFrom = &dateFrom
	}
	if dateTo := strings.TrimSpace(c.Query("date_to")); dateTo != "" {
		filter.DateTo = &dateTo
	}

	assignments, err := h.assignmentService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignments))
}

func (h *Handler) startAssignment(c *gin.Context) {
	h.transitionAssignment(c, h.assignmentService.Start)
}

func (h *Handler) completeAssignment(c *gin.Context) {
	h.transitionAssignment(c, h.assignmentService.Complete)
}

func (h *Handler) cancelAssignment(c *gin.Context) {
	h.transitionAssignment(c, h.assignmentService.Cancel)
}

func (h *Handler) transitionAssignment(
	c *gin.Context,
	transition func(ctx context.Context, principal model.Principal, id string) (*model.MaintenanceAssignment, error),
) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid assignment id"))
		return
	}

	assignment, err := transition(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(assignment))
}

// Report handlers

func (h *Handler) fileReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid assignment id"))
		return
	}

	var req struct {
		Summary       string   `json:"summary" binding:"required"`
		HoursMeter    *float64 `json:"hours_meter"`
		PartsUsed     string   `json:"parts_used"`
		PhotoFilename string   `json:"photo_filename"`
		PhotoBase64   string   `json:"photo_base64"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var photo []byte
	if req.PhotoBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.PhotoBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse("invalid photo encoding"))
			return
		}
		photo = decoded
	}

	report, err := h.reportService.File(c.Request.Context(), principal, id, service.FileReportInput{
		Summary:       req.Summary,
		HoursMeter:    req.HoursMeter,
		PartsUsed:     req.PartsUsed,
		PhotoFilename: req.PhotoFilename,
		PhotoContent:  photo,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(report))
}

func (h *Handler) getReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid assignment id"))
		return
	}

	report, err := h.reportService.GetByAssignment(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(report))
}

func (h *Handler) listMyReports(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	reports, err := h.reportService.ListMine(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(reports))
}

// Customer handlers

func (h *Handler) createCustomer(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Name           string `json:"name" binding:"required"`
		DocumentNumber string `json:"document_number" binding:"required"`
		Phone          string `json:"phone"`
		Email          string `json:"email"`
		Address        string `json:"address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), principal, service.CustomerInput{
		Name:           req.Name,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(customer))
}

func (h *Handler) getCustomer(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid customer id"))
		return
	}

	customer, err := h.customerService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(customer))
}

func (h *Handler) updateCustomer(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid customer id"))
		return
	}

	var req struct {
		Name           string `json:"name" binding:"required"`
		DocumentNumber string `json:"document_number" binding:"required"`
		Phone          string `json:"phone"`
		Email          string `json:"email"`
		Address        string `json:"address"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), principal, id, service.CustomerInput{
		Name:           req.Name,
		DocumentNumber: req.DocumentNumber,
		Phone:          req.Phone,
		Email:          req.Email,
		Address:        req.Address,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(customer))
}

func (h *Handler) deleteCustomer(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid customer id"))
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listCustomers(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.CustomerListFilter{}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}

	customers, err := h.customerService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(customers))
}

// Generator handlers

func (h *Handler) createGenerator(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		SerialNumber string  `json:"serial_number" binding:"required"`
		Brand        string  `json:"brand" binding:"required"`
		Model        string  `json:"model" binding:"required"`
		PowerKVA     float64 `json:"power_kva" binding:"required"`
		Notes        string  `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	generator, err := h.generatorService.Create(c.Request.Context(), principal, service.GeneratorInput{
		SerialNumber: req.SerialNumber,
		Brand:        req.Brand,
		Model:        req.Model,
		PowerKVA:     req.PowerKVA,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(generator))
}

func (h *Handler) getGenerator(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid generator id"))
		return
	}

	generator, err := h.generatorService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(generator))
}

func (h *Handler) updateGenerator(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid generator id"))
		return
	}

	var req struct {
		SerialNumber string  `json:"serial_number" binding:"required"`
		Brand        string  `json:"brand" binding:"required"`
		Model        string  `json:"model" binding:"required"`
		PowerKVA     float64 `json:"power_kva" binding:"required"`
		Notes        string  `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	generator, err := h.generatorService.Update(c.Request.Context(), principal, id, service.GeneratorInput{
		SerialNumber: req.SerialNumber,
		Brand:        req.Brand,
		Model:        req.Model,
		PowerKVA:     req.PowerKVA,
		Notes:        req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(generator))
}

func (h *Handler) retireGenerator(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid generator id"))
		return
	}

	generator, err := h.generatorService.Retire(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(generator))
}

func (h *Handler) deleteGenerator(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid generator id"))
		return
	}

	if err := h.generatorService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listGenerators(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.GeneratorListFilter{}

	if status := strings.TrimSpace(c.Query("status")); status != "" {
		gs := model.GeneratorStatus(strings.ToUpper(status))
		filter.Status = &gs
	}
	if customerID := strings.TrimSpace(c.Query("customer_id")); customerID != "" {
		filter.CustomerID = &customerID
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.Search = &search
	}

	generators, err := h.generatorService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(generators))
}

// Technician handlers

func (h *Handler) createTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		IsActive *bool  `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	technician, err := h.technicianService.Create(c.Request.Context(), principal, service.TechnicianInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(technician))
}

func (h *Handler) getTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	technician, err := h.technicianService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(technician))
}

func (h *Handler) updateTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	var req struct {
		Name     string `json:"name" binding:"required"`
		Phone    string `json:"phone"`
		Email    string `json:"email"`
		IsActive *bool  `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	technician, err := h.technicianService.Update(c.Request.Context(), principal, id, service.TechnicianInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		IsActive: req.IsActive,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(technician))
}

func (h *Handler) deleteTechnician(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid technician id"))
		return
	}

	if err := h.technicianService.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) listTechnicians(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.TechnicianListFilter{}
	if active := strings.TrimSpace(c.Query("active")); active == "true" {
		filter.ActiveOnly = true
	}

	technicians, err := h.technicianService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(technicians))
}

// Checklist handlers

func (h *Handler) createChecklist(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	var req struct {
		GeneratorID     string  `json:"generator_id" binding:"required"`
		CustomerID      string  `json:"customer_id" binding:"required"`
		Direction       string  `json:"direction" binding:"required"`
		FuelLevelOK     bool    `json:"fuel_level_ok"`
		HoursMeter      float64 `json:"hours_meter"`
		VisualDamage    bool    `json:"visual_damage"`
		CablesIncluded  bool    `json:"cables_included"`
		GroundingTested bool    `json:"grounding_tested"`
		Notes           string  `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	checklist, err := h.checklistService.Create(c.Request.Context(), principal, service.ChecklistInput{
		GeneratorID:     req.GeneratorID,
		CustomerID:      req.CustomerID,
		Direction:       model.ChecklistDirection(strings.ToUpper(req.Direction)),
		FuelLevelOK:     req.FuelLevelOK,
		HoursMeter:      req.HoursMeter,
		VisualDamage:    req.VisualDamage,
		CablesIncluded:  req.CablesIncluded,
		GroundingTested: req.GroundingTested,
		Notes:           req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, successResponse(checklist))
}

func (h *Handler) getChecklist(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, errorResponse("invalid checklist id"))
		return
	}

	checklist, err := h.checklistService.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(checklist))
}

func (h *Handler) listChecklists(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing principal"))
		return
	}

	filter := repository.ChecklistListFilter{}
	if generatorID := strings.TrimSpace(c.Query("generator_id")); generatorID != "" {
		filter.GeneratorID = &generatorID
	}
	if customerID := strings.TrimSpace(c.Query("customer_id")); customerID != "" {
		filter.CustomerID = &customerID
	}

	checklists, err := h.checklistService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(checklists))
}

// Each error type keeps its own status and message so the UI can react to
// the specific failure instead of showing a catch-all.
func (h *Handler) handleError(c *gin.Context, err error) {
	var validationErr *schedule.ValidationError
	var conflictErr *schedule.ConflictError
	var transitionErr *schedule.InvalidTransitionError
	var preconditionErr *schedule.PreconditionError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, errorResponse(validationErr.Error()))
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":          conflictErr.Error(),
			"conflicting_id": conflictErr.ConflictingID,
			"start_time":     conflictErr.Start.String(),
			"end_time":       conflictErr.End.String(),
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusConflict, errorResponse(transitionErr.Error()))
	case errors.As(err, &preconditionErr):
		c.JSON(http.StatusUnprocessableEntity, errorResponse(preconditionErr.Error()))
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
