package auth

import (
	"time"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/Amman-Akbar/GlobalApply/services"
	authutil "github.com/Amman-Akbar/GlobalApply/utils/auth"
	"github.com/Amman-Akbar/GlobalApply/utils/middleware"
	"github.com/Amman-Akbar/GlobalApply/utils/response"
	"github.com/Amman-Akbar/GlobalApply/utils/validation"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=30"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	Role          string `json:"role,omitempty" validate:"omitempty,oneof=student institute"`
	InstituteName string `json:"institute_name,omitempty" validate:"required_if=Role institute,omitempty,min=3,max=255"`
}

// RegisterResponse represents a successful registration response
type RegisterResponse struct {
	User         UserResponse     `json:"user"`
	Institute    *model.Institute `json:"institute,omitempty"`
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	ExpiresIn    int              `json:"expires_in"` // in seconds
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Image     string    `json:"image,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		Image:     user.Image,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// Register handles user registration. Registering with role "institute"
// creates the institute record in the same transaction, always pending.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Username = validation.SanitizeString(req.Username)
	req.Email = validation.SanitizeString(req.Email)
	req.InstituteName = validation.SanitizeString(req.InstituteName)

	if ok, msg := validation.ValidateUsername(req.Username); !ok {
		return response.BadRequest(c, msg)
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	// Check for existing username or email
	var existing model.User
	if err := h.db.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		if existing.Email == req.Email {
			return response.Conflict(c, "Email already registered")
		}
		return response.Conflict(c, "Username already taken")
	}

	hash, err := authutil.HashPassword(req.Password)
	if err != nil {
		if err == authutil.ErrPasswordTooShort {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to hash password")
	}

	user := model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
	}

	var institute *model.Institute
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if role == model.RoleInstitute {
			inst, err := services.RegisterInstitute(tx, user.ID, req.InstituteName)
			if err != nil {
				return err
			}
			institute = inst
		}

		return nil
	})
	if err != nil {
		return response.InternalServerError(c, "Failed to register user")
	}

	accessToken, _, err := h.jwtManager.GenerateAccessToken(user.ID, user.Username, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate access token")
	}

	refreshToken, _, err := h.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role, user.TokenVersion)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate refresh token")
	}

	res := RegisterResponse{
		User:         toUserResponse(&user),
		Institute:    institute,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    24 * 60 * 60, // 24 hours in seconds
	}

	return response.Created(c, res)
}
