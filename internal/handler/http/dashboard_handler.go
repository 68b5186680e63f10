package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mikiasgoitom/Learnify/internal/handler/http/dto"
	usecasecontract "github.com/mikiasgoitom/Learnify/internal/usecase/contract"
)

// DashboardHandler serves the admin dashboard endpoints.
type DashboardHandler struct {
	dashboardUsecase usecasecontract.IDashboardUseCase
	activityUsecase  usecasecontract.IActivityUseCase
}

func NewDashboardHandler(dashboardUsecase usecasecontract.IDashboardUseCase, activityUsecase usecasecontract.IActivityUseCase) *DashboardHandler {
	return &DashboardHandler{dashboardUsecase: dashboardUsecase, activityUsecase: activityUsecase}
}

func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardUsecase.GetStats(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, stats)
}

func (h *DashboardHandler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.dashboardUsecase.LatestSnapshots(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, snapshots)
}

func (h *DashboardHandler) ListActivities(c *gin.Context) {
	activities, err := h.activityUsecase.ListRecentActivities(c.Request.Context(), queryInt(c, "limit"))
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, activities)
}

type ContactHandler struct {
	contactUsecase usecasecontract.IContactUseCase
}

func NewContactHandler(contactUsecase usecasecontract.IContactUseCase) *ContactHandler {
	return &ContactHandler{contactUsecase: contactUsecase}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var req dto.ContactRequest
	if err := BindAndValidate(c, &req); err != nil {
		return
	}
	if _, err := h.contactUsecase.Submit(c.Request.Context(), req.Name, req.Email, req.Subject, req.Message); err != nil {
		RespondError(c, err)
		return
	}
	MessageHandler(c, http.StatusCreated, "Thanks for reaching out, we will get back to you soon")
}

func (h *ContactHandler) List(c *gin.Context) {
	page, size := pageParams(c)
	submissions, total, err := h.contactUsecase.List(c.Request.Context(), page, size)
	if err != nil {
		RespondError(c, err)
		return
	}
	SuccessHandler(c, http.StatusOK, paginated(submissions, total, page, size))
}
