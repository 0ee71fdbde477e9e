package schedule

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(rg *gin.RouterGroup, h *Handler) {
	schedule := rg.Group("/schedule")
	{
		schedule.POST("/meetings", h.PostMeeting)
		schedule.POST("/meetings/check", h.CheckMeeting)
		schedule.GET("/meetings", h.GetMeetings)
		schedule.GET("/meetings/:id", h.GetMeeting)
		schedule.PUT("/meetings/:id", h.PutMeeting)
		schedule.DELETE("/meetings/:id", h.DeleteMeeting)
		schedule.POST("/meetings/:id/approve", h.ApproveMeeting)

		schedule.GET("/classrooms/:id/grid", h.GetClassroomGrid)
		schedule.GET("/professors/:id/grid", h.GetProfessorGrid)
		schedule.GET("/grids", h.GetGrids)

		schedule.POST("/classrooms", h.PostClassroom)
		schedule.POST("/professors", h.PostProfessor)
	}
}
