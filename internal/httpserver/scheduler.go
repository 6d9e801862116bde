package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"todoist-scheduler/pkg/response"
)

// triggerPass runs a scheduling pass on demand.
// @Summary Trigger a scheduling pass
// @Description Run one scheduling pass now. Skipped with 409 if a pass is already in flight.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "Pass record"
// @Failure 409 {object} response.Resp "A pass is already running"
// @Router /api/v1/scheduler/run [post]
func (srv HTTPServer) triggerPass(c *gin.Context) {
	record, started, err := srv.runner.TryRun(c.Request.Context())
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "httpserver: scheduling pass: %v", err)
		response.InternalError(c, err)
		return
	}
	if !started {
		c.JSON(409, response.Resp{
			ErrorCode: 409,
			Message:   "a scheduling pass is already running",
		})
		return
	}
	response.OK(c, record)
}

// lastPass returns the most recent pass record.
// @Summary Last scheduling pass
// @Description Return the record of the most recent scheduling pass.
// @Tags Scheduler
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "Pass record, or null if none yet"
// @Router /api/v1/scheduler/last-pass [get]
func (srv HTTPServer) lastPass(c *gin.Context) {
	if srv.recorder == nil {
		response.Error(c, errors.New("pass history is not configured"), nil)
		return
	}
	record, err := srv.recorder.LastPass(c.Request.Context())
	if err != nil {
		srv.l.Errorf(c.Request.Context(), "httpserver: reading last pass: %v", err)
		response.InternalError(c, err)
		return
	}
	response.OK(c, record)
}
