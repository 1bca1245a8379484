package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/kogello/mazao-api/internal/domain/entity"
)

// GetActingUser extracts the caller identity set by the auth middleware
func GetActingUser(c *gin.Context) (entity.ActingUser, bool) {
	actorVal, exists := c.Get("acting_user")
	if !exists {
		return entity.ActingUser{}, false
	}
	actor, ok := actorVal.(entity.ActingUser)
	return actor, ok
}

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// parseIDParam parses a :id-style path parameter as a UUID
func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
