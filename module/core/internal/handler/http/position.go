package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chainal/red-wolf-project/module/core/domain"
)

type checkinService interface {
	Create(ctx context.Context, req *domain.CheckinRequest) (*domain.CheckinResult, error)
}

type nearbyService interface {
	Nearby(ctx context.Context, center domain.GeoPoint) ([]domain.NearbyPosition, error)
}

type createRequest struct {
	User string   `json:"user"`
	Lng  *float64 `json:"lng"`
	Lat  *float64 `json:"lat"`
}

type PositionHandler struct {
	checkinSvc checkinService
	nearbySvc  nearbyService
}

func NewPositionHandler(checkinSvc checkinService, nearbySvc nearbyService) *PositionHandler {
	return &PositionHandler{checkinSvc: checkinSvc, nearbySvc: nearbySvc}
}

func (h *PositionHandler) Register(r *gin.RouterGroup) {
	r.POST("/userposition", h.CreatePosition)
	r.GET("/userposition", h.NearbyPositions)
}

func (h *PositionHandler) CreatePosition(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Lng == nil || req.Lat == nil {
		c.String(http.StatusBadRequest, "lng and lat are required")
		return
	}

	result, err := h.checkinSvc.Create(c.Request.Context(), &domain.CheckinRequest{
		User:     req.User,
		Location: domain.GeoPoint{Lng: *req.Lng, Lat: *req.Lat},
	})
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *PositionHandler) NearbyPositions(c *gin.Context) {
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid lng parameter")
		return
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid lat parameter")
		return
	}

	results, err := h.nearbySvc.Nearby(c.Request.Context(), domain.GeoPoint{Lng: lng, Lat: lat})
	if err != nil {
		c.String(statusFor(err), err.Error())
		return
	}

	if results == nil {
		results = []domain.NearbyPosition{}
	}
	c.JSON(http.StatusOK, results)
}

// statusFor maps the error taxonomy onto status codes: client mistakes
// (unknown user, bad coordinate) are 400, everything else 500 with the
// failure's text, matching the service's original behavior.
func statusFor(err error) int {
	var notFound *domain.UserNotFoundError
	var badCoord *domain.InvalidCoordinateError
	if errors.As(err, &notFound) || errors.As(err, &badCoord) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
