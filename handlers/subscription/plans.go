package subscription

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/services"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/Amman-Akbar/GlobalApply/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubscriptionHandler handles subscription plan management and assignment
type SubscriptionHandler struct {
	db                  *gorm.DB
	subscriptionService *services.SubscriptionService
	validator           *validation.Validator
}

func NewSubscriptionHandler(db *gorm.DB, subscriptionService *services.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		db:                  db,
		subscriptionService: subscriptionService,
		validator:           validation.NewValidator(),
	}
}

// CreatePlanRequest represents the request body for creating a plan
type CreatePlanRequest struct {
	PlanName     string   `json:"plan_name" validate:"required,min=2,max=100"`
	Price        float64  `json:"price" validate:"gte=0"`
	Features     []string `json:"features"`
	Availability string   `json:"availability" validate:"omitempty,oneof=active inactive"`
}

// UpdatePlanRequest represents the request body for updating a plan
type UpdatePlanRequest struct {
	PlanName     string   `json:"plan_name" validate:"omitempty,min=2,max=100"`
	Price        *float64 `json:"price" validate:"omitempty,gte=0"`
	Features     []string `json:"features"`
	Availability string   `json:"availability" validate:"omitempty,oneof=active inactive"`
}

// ListPlans handles GET /api/v1/subscriptions (public)
func (h *SubscriptionHandler) ListPlans(c *fiber.Ctx) error {
	var plans []model.SubscriptionPlan
	query := h.db.Order("price ASC")

	if availability := c.Query("availability"); availability != "" {
		query = query.Where("availability = ?", availability)
	}

	if err := query.Find(&plans).Error; err != nil {
		return response.InternalServerError(c, "Failed to fetch subscription plans")
	}

	return response.Success(c, plans)
}

// GetPlan handles GET /api/v1/subscriptions/:id (public)
func (h *SubscriptionHandler) GetPlan(c *fiber.Ctx) error {
	var plan model.SubscriptionPlan
	if err := h.db.First(&plan, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subscription plan not found")
		}
		return response.InternalServerError(c, "Failed to fetch subscription plan")
	}

	return response.Success(c, plan)
}

// CreatePlan handles POST /api/v1/subscriptions (admin only)
func (h *SubscriptionHandler) CreatePlan(c *fiber.Ctx) error {
	var req CreatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	features, err := json.Marshal(req.Features)
	if err != nil {
		return response.BadRequest(c, "Invalid features list")
	}

	availability := req.Availability
	if availability == "" {
		availability = model.PlanAvailabilityActive
	}

	plan := model.SubscriptionPlan{
		PlanName:     validation.SanitizeString(req.PlanName),
		Price:        req.Price,
		Features:     datatypes.JSON(features),
		Availability: availability,
	}

	if err := h.db.Create(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A plan with this name already exists")
		}
		return response.InternalServerError(c, "Failed to create subscription plan")
	}

	return response.Created(c, plan)
}

// UpdatePlan handles PUT /api/v1/subscriptions/:id (admin only)
func (h *SubscriptionHandler) UpdatePlan(c *fiber.Ctx) error {
	var plan model.SubscriptionPlan
	if err := h.db.First(&plan, c.Params("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.NotFound(c, "Subscription plan not found")
		}
		return response.InternalServerError(c, "Failed to fetch subscription plan")
	}

	var req UpdatePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.PlanName != "" {
		plan.PlanName = validation.SanitizeString(req.PlanName)
	}
	if req.Price != nil {
		plan.Price = *req.Price
	}
	if req.Features != nil {
		features, err := json.Marshal(req.Features)
		if err != nil {
			return response.BadRequest(c, "Invalid features list")
		}
		plan.Features = datatypes.JSON(features)
	}
	if req.Availability != "" {
		plan.Availability = req.Availability
	}

	if err := h.db.Save(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.Conflict(c, "A plan with this name already exists")
		}
		return response.InternalServerError(c, "Failed to update subscription plan")
	}

	return response.SuccessWithMessage(c, "Subscription plan updated successfully", plan)
}

// DeletePlan handles DELETE /api/v1/subscriptions/:id (admin only).
// Plans referenced by any institute cannot be deleted.
func (h *SubscriptionHandler) DeletePlan(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid plan ID")
	}

	if err := h.subscriptionService.DeletePlan(c.Context(), uint(id)); err != nil {
		switch {
		case errors.Is(err, services.ErrPlanNotFound):
			return response.NotFound(c, "Subscription plan not found")
		case errors.Is(err, services.ErrPlanInUse):
			return response.Conflict(c, "Plan is assigned to one or more institutes")
		default:
			return response.InternalServerError(c, "Failed to delete subscription plan")
		}
	}

	return response.SuccessWithMessage(c, "Subscription plan deleted successfully", nil)
}
