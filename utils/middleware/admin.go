package middleware

import (
	"encoding/json"
	"strconv"

	"github.com/Amman-Akbar/GlobalApply/model"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AdminAuditLog creates an audit log entry for admin actions
func AdminAuditLog(db *gorm.DB, action, resource string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		adminUser, ok := GetUser(c)
		if !ok || adminUser == nil {
			return c.Next() // Continue without logging if user not found
		}

		// Parse resource ID from params if available
		var resourceID uint
		if id := c.Params("id"); id != "" {
			if parsedID, err := strconv.ParseUint(id, 10, 32); err == nil {
				resourceID = uint(parsedID)
			}
		}

		// Capture request body for "new value" tracking
		var oldValue interface{}
		var newValue interface{}

		if c.Method() == "POST" || c.Method() == "PUT" {
			body := c.Body()
			if len(body) > 0 {
				json.Unmarshal(body, &newValue)
			}
		}

		// For DELETE or PUT, capture the existing state
		if resourceID > 0 && (c.Method() == "DELETE" || c.Method() == "PUT") {
			switch resource {
			case "institutes":
				var institute model.Institute
				if err := db.First(&institute, resourceID).Error; err == nil {
					oldValue = institute
				}
			case "subscription_plans":
				var plan model.SubscriptionPlan
				if err := db.First(&plan, resourceID).Error; err == nil {
					oldValue = plan
				}
			case "users":
				var user model.User
				if err := db.First(&user, resourceID).Error; err == nil {
					oldValue = user
				}
			}
		}

		// Execute the actual handler
		err := c.Next()

		adminID := adminUser.ID
		ip := c.IP()
		userAgent := c.Get("User-Agent")
		description := c.Method() + " " + c.Path()

		// Log the action after completion
		go func() {
			oldValueJSON, _ := json.Marshal(oldValue)
			newValueJSON, _ := json.Marshal(newValue)

			auditLog := model.AdminAuditLog{
				AdminID:     adminID,
				Action:      action,
				Resource:    resource,
				ResourceID:  resourceID,
				OldValue:    string(oldValueJSON),
				NewValue:    string(newValueJSON),
				IPAddress:   ip,
				UserAgent:   userAgent,
				Description: description,
			}

			db.Create(&auditLog)
		}()

		return err
	}
}
