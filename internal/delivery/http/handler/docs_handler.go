package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/location-quest/internal/pkg/utils"
)

// Endpoint describes one route in the API index.
type Endpoint struct {
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

// APIIndex is the route list served by GET /api/docs.
var APIIndex = []Endpoint{
	{"POST", "/api/users/:userId/activities/start", "Start an activity"},
	{"POST", "/api/users/:userId/activities/:activityId/track", "Upload track points"},
	{"POST", "/api/users/:userId/activities/:activityId/end", "End an activity and collect passed locations"},
	{"POST", "/api/users/:userId/activities/:activityId/collect/nfc", "Collect a location by NFC tap"},
	{"GET", "/api/users/:userId/activities", "List a user's activities"},
	{"GET", "/api/users/:userId/activities/:activityId", "Get an activity"},
	{"GET", "/api/locations", "List locations"},
	{"POST", "/api/locations", "Create a location"},
	{"PATCH", "/api/locations/:locationId", "Update a location"},
	{"DELETE", "/api/locations/:locationId", "Delete a location"},
	{"POST", "/api/locations/:locationId/enable-nfc", "Enable NFC collection"},
	{"GET", "/api/badges", "List badges"},
	{"POST", "/api/badges", "Create a badge"},
	{"PATCH", "/api/badges/:badgeId", "Update a badge"},
	{"DELETE", "/api/badges/:badgeId", "Delete a badge"},
	{"GET", "/api/users/:userId/badges", "List a user's badge progress"},
	{"GET", "/api/users/:userId/badges/:badgeId", "Get a user's progress on one badge"},
	{"GET", "/api/users", "List users"},
	{"GET", "/api/users/:userId/profile", "Get a user's profile"},
	{"GET", "/api/users/:userId/map", "Locations on a user's map"},
	{"GET", "/api/nfc", "Record an NFC tap (HTML)"},
	{"POST", "/api/nfc/read", "Record an NFC read"},
	{"GET", "/api/health", "Service health"},
	{"GET", "/api/docs", "This list"},
	{"GET", "/metrics", "Prometheus metrics"},
	{"GET", "/swagger/*", "Swagger UI"},
}

type DocsHandler struct{}

func NewDocsHandler() *DocsHandler {
	return &DocsHandler{}
}

// Docs godoc
// @Summary List API endpoints
// @Tags System
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]handler.Endpoint}
// @Router /api/docs [get]
func (h *DocsHandler) Docs(c *fiber.Ctx) error {
	return utils.SendList(c, len(APIIndex), APIIndex)
}
