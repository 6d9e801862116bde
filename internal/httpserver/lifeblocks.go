package httpserver

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todoist-scheduler/internal/lifeblock"
	"todoist-scheduler/pkg/response"
)

type createOneOffBlockRequest struct {
	Date  string `json:"date" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
	Label string `json:"label"`
}

type createWeeklyBlockRequest struct {
	Days  []string `json:"days" binding:"required,min=1"`
	Start string   `json:"start" binding:"required"`
	End   string   `json:"end" binding:"required"`
	Label string   `json:"label"`
}

func validateClockRange(start, end string) error {
	from, err := time.Parse("15:04", start)
	if err != nil {
		return fmt.Errorf("invalid start %q, expected HH:MM", start)
	}
	to, err := time.Parse("15:04", end)
	if err != nil {
		return fmt.Errorf("invalid end %q, expected HH:MM", end)
	}
	if !to.After(from) {
		return fmt.Errorf("end %q must be after start %q", end, start)
	}
	return nil
}

// listLifeBlocks returns all declared life blocks.
// @Summary List life blocks
// @Description Return all one-off and weekly life blocks.
// @Tags LifeBlocks
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "Life blocks"
// @Router /api/v1/life-blocks [get]
func (srv HTTPServer) listLifeBlocks(c *gin.Context) {
	state, err := srv.blocks.GetBlocks(c.Request.Context())
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "httpserver: listing life blocks: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, state)
}

// createOneOffBlock declares a one-off unavailable window.
// @Summary Create a one-off life block
// @Description Declare an unavailable window on a single date.
// @Tags LifeBlocks
// @Accept json
// @Produce json
// @Param block body createOneOffBlockRequest true "Block"
// @Success 200 {object} response.Resp "Created block"
// @Router /api/v1/life-blocks/one-off [post]
func (srv HTTPServer) createOneOffBlock(c *gin.Context) {
	var req createOneOffBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		response.Error(c, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", req.Date), nil)
		return
	}
	if err := validateClockRange(req.Start, req.End); err != nil {
		response.Error(c, err, nil)
		return
	}

	ctx := c.Request.Context()
	state, err := srv.blocks.GetBlocks(ctx)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	block := lifeblock.OneOffBlock{
		ID:    uuid.NewString(),
		Date:  req.Date,
		Start: req.Start,
		End:   req.End,
		Label: req.Label,
	}
	state.OneOff = append(state.OneOff, block)

	if err := srv.blocks.SaveBlocks(ctx, state); err != nil {
		srv.l.Errorf(ctx, "httpserver: saving life blocks: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, block)
}

// createWeeklyBlock declares a weekly recurring unavailable window.
// @Summary Create a weekly life block
// @Description Declare an unavailable window recurring on given weekdays.
// @Tags LifeBlocks
// @Accept json
// @Produce json
// @Param block body createWeeklyBlockRequest true "Block"
// @Success 200 {object} response.Resp "Created block"
// @Router /api/v1/life-blocks/weekly [post]
func (srv HTTPServer) createWeeklyBlock(c *gin.Context) {
	var req createWeeklyBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err, nil)
		return
	}
	if err := validateClockRange(req.Start, req.End); err != nil {
		response.Error(c, err, nil)
		return
	}

	ctx := c.Request.Context()
	state, err := srv.blocks.GetBlocks(ctx)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	block := lifeblock.WeeklyBlock{
		ID:    uuid.NewString(),
		Days:  req.Days,
		Start: req.Start,
		End:   req.End,
		Label: req.Label,
	}
	state.Weekly = append(state.Weekly, block)

	if err := srv.blocks.SaveBlocks(ctx, state); err != nil {
		srv.l.Errorf(ctx, "httpserver: saving life blocks: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, block)
}

// deleteLifeBlock removes a life block by ID.
// @Summary Delete a life block
// @Description Remove a one-off or weekly life block by its ID.
// @Tags LifeBlocks
// @Accept json
// @Produce json
// @Param id path string true "Block ID"
// @Success 200 {object} response.Resp "Deleted block ID"
// @Router /api/v1/life-blocks/{id} [delete]
func (srv HTTPServer) deleteLifeBlock(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	state, err := srv.blocks.GetBlocks(ctx)
	if err != nil {
		response.InternalError(c, err)
		return
	}

	found := false
	oneOff := state.OneOff[:0]
	for _, b := range state.OneOff {
		if b.ID == id {
			found = true
			continue
		}
		oneOff = append(oneOff, b)
	}
	state.OneOff = oneOff

	weekly := state.Weekly[:0]
	for _, b := range state.Weekly {
		if b.ID == id {
			found = true
			continue
		}
		weekly = append(weekly, b)
	}
	state.Weekly = weekly

	if !found {
		response.Error(c, errors.New("life block not found"), map[string]interface{}{"id": id})
		return
	}

	if err := srv.blocks.SaveBlocks(ctx, state); err != nil {
		srv.l.Errorf(ctx, "httpserver: saving life blocks: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"id": id})
}
