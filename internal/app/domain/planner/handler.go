// Package planner exposes the itinerary editor over a JSON HTTP API.
package planner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/export"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/extraction"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/geo"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-routeplanner/internal/app/models"
)

// maxUploadBytes caps a single screenshot upload.
const maxUploadBytes = 20 << 20

// Extractor loads an itinerary from screenshots.
type Extractor interface {
	Extract(ctx context.Context, images []extraction.Image) (*itinerary.State, error)
}

// Suggester adds activity suggestions for a day.
type Suggester interface {
	SuggestActivities(ctx context.Context, dayIndex int) (*itinerary.State, []models.ItineraryItem, error)
}

type Handler struct {
	store     *itinerary.Store
	extractor Extractor
	suggester Suggester
	members   []string
	log       *zap.Logger
}

func NewHandler(store *itinerary.Store, extractor Extractor, suggester Suggester, members []string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if members == nil {
		members = []string{}
	}
	return &Handler{
		store:     store,
		extractor: extractor,
		suggester: suggester,
		members:   members,
		log:       log,
	}
}

type dayDistance struct {
	DayIndex int           `json:"dayIndex"`
	TotalKm  float64       `json:"totalKm"`
	Segments []geo.Segment `json:"segments"`
}

type stateResponse struct {
	*itinerary.State
	Distances []dayDistance `json:"distances"`
}

type errorResponse struct {
	Error string           `json:"error"`
	State *itinerary.State `json:"state,omitempty"`
}

func newStateResponse(st *itinerary.State) stateResponse {
	resp := stateResponse{State: st, Distances: []dayDistance{}}
	if st.Itinerary == nil {
		return resp
	}
	for i, day := range st.Itinerary.Days {
		resp.Distances = append(resp.Distances, dayDistance{
			DayIndex: i,
			TotalKm:  geo.DayTotalDistanceKm(day.Items),
			Segments: geo.SegmentDistances(day.Items),
		})
	}
	return resp
}

// RegisterRoutes mounts the API under rg. extractLimit guards the model-backed endpoints.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, extractLimit gin.HandlerFunc) {
	if extractLimit == nil {
		extractLimit = func(c *gin.Context) { c.Next() }
	}

	it := rg.Group("/itinerary")
	it.GET("", h.GetItinerary)
	it.POST("/extract", extractLimit, h.Extract)
	it.PUT("/essentials", h.SetEssentials)
	it.GET("/export/text", h.ExportText)
	it.POST("/unscheduled/:index/include", h.IncludeItem)

	day := it.Group("/days/:day")
	day.POST("/items", h.AddItem)
	day.GET("/map", h.MapDay)
	day.GET("/route", h.RouteStops)
	day.POST("/suggestions", extractLimit, h.Suggest)

	item := day.Group("/items/:item")
	item.PATCH("", h.UpdateItem)
	item.POST("/exclude", h.ExcludeItem)
	item.POST("/move", h.MoveItem)
	item.POST("/category/cycle", h.CycleCategory)
	item.POST("/votes", h.ToggleVote)

	rg.GET("/members", h.Members)
}

func (h *Handler) respond(c *gin.Context, op string, st *itinerary.State, err error) {
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			h.log.Error("Request failed", zap.String("op", op), zap.Error(err))
		}
		c.JSON(status, errorResponse{Error: err.Error(), State: st})
		return
	}
	c.JSON(http.StatusOK, newStateResponse(st))
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func intParam(c *gin.Context, name string) (int, error) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, c.Param(name))
	}
	return v, nil
}

func dayAndItem(c *gin.Context) (int, int, error) {
	day, err := intParam(c, "day")
	if err != nil {
		return 0, 0, err
	}
	item, err := intParam(c, "item")
	if err != nil {
		return 0, 0, err
	}
	return day, item, nil
}

// GetItinerary returns the current snapshot with per-day distances.
func (h *Handler) GetItinerary(c *gin.Context) {
	c.JSON(http.StatusOK, newStateResponse(h.store.Snapshot()))
}

type extractRequest struct {
	Images []string `json:"images"`
}

// Extract accepts multipart "images" files or a JSON list of data URLs.
func (h *Handler) Extract(c *gin.Context) {
	var images []extraction.Image

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, err := c.MultipartForm()
		if err != nil {
			h.badRequest(c, fmt.Errorf("invalid multipart form: %w", err))
			return
		}
		for _, fh := range form.File["images"] {
			if fh.Size > maxUploadBytes {
				h.badRequest(c, fmt.Errorf("%s exceeds the %d MB limit", fh.Filename, maxUploadBytes>>20))
				return
			}
			f, err := fh.Open()
			if err != nil {
				h.badRequest(c, err)
				return
			}
			data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
			_ = f.Close()
			if err != nil {
				h.badRequest(c, err)
				return
			}
			img := extraction.FromBytes(data)
			if ct := fh.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
				img.MIMEType = ct
			}
			images = append(images, img)
		}
	} else {
		var req extractRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c, fmt.Errorf("invalid request body: %w", err))
			return
		}
		for _, s := range req.Images {
			img, err := extraction.DecodeDataURL(s)
			if err != nil {
				h.respond(c, "Extract", nil, err)
				return
			}
			images = append(images, img)
		}
	}

	st, err := h.extractor.Extract(c.Request.Context(), images)
	h.respond(c, "Extract", st, err)
}

// AddItem appends a placeholder stop to the day.
func (h *Handler) AddItem(c *gin.Context) {
	day, err := intParam(c, "day")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.AddItem(day)
	h.respond(c, "AddItem", st, err)
}

// ExcludeItem moves a stop into the unscheduled pool.
func (h *Handler) ExcludeItem(c *gin.Context) {
	day, item, err := dayAndItem(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.ExcludeItem(day, item)
	h.respond(c, "ExcludeItem", st, err)
}

// IncludeItem schedules a pool item; ?day= defaults to the first day.
func (h *Handler) IncludeItem(c *gin.Context) {
	index, err := intParam(c, "index")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	day, err := strconv.Atoi(c.DefaultQuery("day", "0"))
	if err != nil {
		h.badRequest(c, fmt.Errorf("invalid day %q", c.Query("day")))
		return
	}
	st, err := h.store.IncludeItem(index, day)
	h.respond(c, "IncludeItem", st, err)
}

type moveRequest struct {
	Direction models.Direction `json:"direction" binding:"required"`
}

func (h *Handler) MoveItem(c *gin.Context) {
	day, item, err := dayAndItem(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.MoveItem(day, item, req.Direction)
	h.respond(c, "MoveItem", st, err)
}

type updateRequest struct {
	Field models.ItemField `json:"field" binding:"required"`
	Value string           `json:"value"`
}

func (h *Handler) UpdateItem(c *gin.Context) {
	day, item, err := dayAndItem(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.UpdateItem(day, item, req.Field, req.Value)
	h.respond(c, "UpdateItem", st, err)
}

func (h *Handler) CycleCategory(c *gin.Context) {
	day, item, err := dayAndItem(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.CycleCategory(day, item)
	h.respond(c, "CycleCategory", st, err)
}

type voteRequest struct {
	Member string `json:"member"`
}

func (h *Handler) ToggleVote(c *gin.Context) {
	day, item, err := dayAndItem(c)
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.ToggleVote(day, item, req.Member)
	h.respond(c, "ToggleVote", st, err)
}

func (h *Handler) SetEssentials(c *gin.Context) {
	var req models.Essentials
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	st, err := h.store.SetEssentials(req)
	h.respond(c, "SetEssentials", st, err)
}

// ExportText returns the copyable plain-text plan.
func (h *Handler) ExportText(c *gin.Context) {
	st := h.store.Snapshot()
	if st.Itinerary == nil {
		h.respond(c, "ExportText", st, models.ErrNoItinerary)
		return
	}
	c.String(http.StatusOK, export.Text(st.Itinerary))
}

// dayOf resolves :day against the current snapshot.
func (h *Handler) dayOf(c *gin.Context) (models.DayItinerary, bool) {
	day, err := intParam(c, "day")
	if err != nil {
		h.badRequest(c, err)
		return models.DayItinerary{}, false
	}
	st := h.store.Snapshot()
	if st.Itinerary == nil {
		h.respond(c, "dayOf", st, models.ErrNoItinerary)
		return models.DayItinerary{}, false
	}
	if day < 0 || day >= len(st.Itinerary.Days) {
		h.respond(c, "dayOf", st, fmt.Errorf("%w: day %d", models.ErrIndexOutOfRange, day))
		return models.DayItinerary{}, false
	}
	return st.Itinerary.Days[day], true
}

func (h *Handler) MapDay(c *gin.Context) {
	if day, ok := h.dayOf(c); ok {
		c.JSON(http.StatusOK, export.MapDay(day))
	}
}

func (h *Handler) RouteStops(c *gin.Context) {
	if day, ok := h.dayOf(c); ok {
		c.JSON(http.StatusOK, gin.H{"stops": export.RouteStops(day)})
	}
}

// Suggest asks the model for activity stops and parks them in the pool.
func (h *Handler) Suggest(c *gin.Context) {
	day, err := intParam(c, "day")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	st, added, err := h.suggester.SuggestActivities(c.Request.Context(), day)
	if err != nil {
		h.respond(c, "Suggest", st, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "state": newStateResponse(st)})
}

// Members lists the configured group members in preset order.
func (h *Handler) Members(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"members": h.members})
}
