package institute

import (
	"time"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/Amman-Akbar/GlobalApply/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateDepartmentRequest represents the request body for adding a department
type CreateDepartmentRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Position int    `json:"position" validate:"omitempty,gte=0"`
}

// CreateProgramRequest represents the request body for adding a program
type CreateProgramRequest struct {
	Name        string     `json:"name" validate:"required,min=2,max=255"`
	SemesterFee float64    `json:"semester_fee" validate:"omitempty,gte=0"`
	Duration    string     `json:"duration" validate:"omitempty,max=50"`
	Level       string     `json:"level" validate:"omitempty,max=50"`
	Deadline    *time.Time `json:"deadline"`
	IsActive    *bool      `json:"is_active"`
}

// UpdateProgramRequest represents the request body for updating a program
type UpdateProgramRequest struct {
	Name        string     `json:"name" validate:"omitempty,min=2,max=255"`
	SemesterFee *float64   `json:"semester_fee" validate:"omitempty,gte=0"`
	Duration    string     `json:"duration" validate:"omitempty,max=50"`
	Level       string     `json:"level" validate:"omitempty,max=50"`
	Deadline    *time.Time `json:"deadline"`
	IsActive    *bool      `json:"is_active"`
}

// CreateDepartment handles POST /api/v1/institute/:id/departments (owner or admin)
func (h *InstituteHandler) CreateDepartment(c *fiber.Ctx) error {
	id := c.Params("id")

	var institute model.Institute
	if err := h.db.First(&institute, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Institute not found")
		}
		return response.InternalServerError(c, "Failed to fetch institute")
	}

	if !isOwnerOrAdmin(c, &institute) {
		return response.Forbidden(c, "Only the institute owner or an administrator can manage departments")
	}

	var req CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	department := model.Department{
		InstituteID: institute.ID,
		Name:        validation.SanitizeString(req.Name),
		Position:    req.Position,
	}

	if err := h.db.Create(&department).Error; err != nil {
		return response.InternalServerError(c, "Failed to create department")
	}

	h.listingService.Invalidate(c.Context())

	return response.Created(c, department)
}

// loadDepartmentInstitute resolves the institute owning a department.
func (h *InstituteHandler) loadDepartmentInstitute(departmentID string) (*model.Department, *model.Institute, error) {
	var department model.Department
	if err := h.db.First(&department, departmentID).Error; err != nil {
		return nil, nil, err
	}

	var institute model.Institute
	if err := h.db.First(&institute, department.InstituteID).Error; err != nil {
		return nil, nil, err
	}

	return &department, &institute, nil
}

// CreateProgram handles POST /api/v1/departments/:id/programs (owner or admin).
// The created program's id is the stable identifier wishlist entries refer to.
func (h *InstituteHandler) CreateProgram(c *fiber.Ctx) error {
	department, institute, err := h.loadDepartmentInstitute(c.Params("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Department not found")
		}
		return response.InternalServerError(c, "Failed to fetch department")
	}

	if !isOwnerOrAdmin(c, institute) {
		return response.Forbidden(c, "Only the institute owner or an administrator can manage programs")
	}

	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	program := model.Program{
		DepartmentID: department.ID,
		Name:         validation.SanitizeString(req.Name),
		SemesterFee:  req.SemesterFee,
		Duration:     validation.SanitizeString(req.Duration),
		Level:        validation.SanitizeString(req.Level),
		Deadline:     req.Deadline,
		IsActive:     isActive,
	}

	if err := h.db.Create(&program).Error; err != nil {
		return response.InternalServerError(c, "Failed to create program")
	}

	h.listingService.Invalidate(c.Context())

	return response.Created(c, program)
}

// loadProgramInstitute resolves the institute owning a program.
func (h *InstituteHandler) loadProgramInstitute(programID string) (*model.Program, *model.Institute, error) {
	var program model.Program
	if err := h.db.First(&program, programID).Error; err != nil {
		return nil, nil, err
	}

	var department model.Department
	if err := h.db.First(&department, program.DepartmentID).Error; err != nil {
		return nil, nil, err
	}

	var institute model.Institute
	if err := h.db.First(&institute, department.InstituteID).Error; err != nil {
		return nil, nil, err
	}

	return &program, &institute, nil
}

// UpdateProgram handles PUT /api/v1/programs/:id (owner or admin)
func (h *InstituteHandler) UpdateProgram(c *fiber.Ctx) error {
	program, institute, err := h.loadProgramInstitute(c.Params("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to fetch program")
	}

	if !isOwnerOrAdmin(c, institute) {
		return response.Forbidden(c, "Only the institute owner or an administrator can manage programs")
	}

	var req UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.Name != "" {
		program.Name = validation.SanitizeString(req.Name)
	}
	if req.SemesterFee != nil {
		program.SemesterFee = *req.SemesterFee
	}
	if req.Duration != "" {
		program.Duration = validation.SanitizeString(req.Duration)
	}
	if req.Level != "" {
		program.Level = validation.SanitizeString(req.Level)
	}
	if req.Deadline != nil {
		program.Deadline = req.Deadline
	}
	if req.IsActive != nil {
		program.IsActive = *req.IsActive
	}

	if err := h.db.Save(program).Error; err != nil {
		return response.InternalServerError(c, "Failed to update program")
	}

	h.listingService.Invalidate(c.Context())

	return response.SuccessWithMessage(c, "Program updated successfully", program)
}

// DeleteProgram handles DELETE /api/v1/programs/:id (owner or admin).
// Wishlist entries referencing the program are not cascaded; they resolve to
// null details on read.
func (h *InstituteHandler) DeleteProgram(c *fiber.Ctx) error {
	program, institute, err := h.loadProgramInstitute(c.Params("id"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Program not found")
		}
		return response.InternalServerError(c, "Failed to fetch program")
	}

	if !isOwnerOrAdmin(c, institute) {
		return response.Forbidden(c, "Only the institute owner or an administrator can manage programs")
	}

	if err := h.db.Delete(program).Error; err != nil {
		return response.InternalServerError(c, "Failed to delete program")
	}

	h.listingService.Invalidate(c.Context())

	return response.SuccessWithMessage(c, "Program deleted successfully", nil)
}
