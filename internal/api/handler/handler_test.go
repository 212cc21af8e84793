package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/api/middleware"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ── Mock WorkflowService ──

type mockWorkflowService struct {
	getResult        *dto.WorkflowStatusResponse
	getErr           error
	transitionResult *dto.WorkflowStatusResponse
	transitionErr    error
	transitionRole   workflow.Role
	summaryResult    []dto.DepartmentSummary
	summaryErr       error
}

func (m *mockWorkflowService) Get(_ context.Context, _, _ string) (*dto.WorkflowStatusResponse, error) {
	return m.getResult, m.getErr
}

func (m *mockWorkflowService) Transition(_ context.Context, _, _, _ string, role workflow.Role) (*dto.WorkflowStatusResponse, error) {
	m.transitionRole = role
	return m.transitionResult, m.transitionErr
}

func (m *mockWorkflowService) StatusSummary(_ context.Context, _ string) ([]dto.DepartmentSummary, error) {
	return m.summaryResult, m.summaryErr
}

// newWorkflowRouter wires just the workflow routes behind the actor
// middleware, the way the real router does.
func newWorkflowRouter(svc *mockWorkflowService) *gin.Engine {
	r := gin.New()
	h := NewWorkflowHandler(svc)
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Actor())
	v1.GET("/workflow-status", h.GetStatus)
	v1.POST("/workflow-status/transition", h.Transition)
	v1.GET("/workflow-status/summary/:yearID",
		middleware.RoleAuth(workflow.RolePrincipal, workflow.RoleAdmin),
		h.StatusSummary)
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

var hodHeaders = map[string]string{"X-User-ID": "u-1", "X-User-Role": "hod"}

func TestActorMiddleware_RejectsMissingIdentity(t *testing.T) {
	r := newWorkflowRouter(&mockWorkflowService{})

	w := doJSON(r, http.MethodGet, "/api/v1/workflow-status?department_id=d&academic_year_id=y", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no headers: status = %d, want 401", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/workflow-status?department_id=d&academic_year_id=y",
		nil, map[string]string{"X-User-ID": "u-1", "X-User-Role": "janitor"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown role: status = %d, want 401", w.Code)
	}
}

func TestWorkflowHandler_Transition(t *testing.T) {
	svc := &mockWorkflowService{
		transitionResult: &dto.WorkflowStatusResponse{Status: "submitted", Version: 2},
	}
	r := newWorkflowRouter(svc)

	w := doJSON(r, http.MethodPost, "/api/v1/workflow-status/transition", dto.TransitionRequest{
		DepartmentID:   "5f8a2d71-0000-0000-0000-000000000001",
		AcademicYearID: "5f8a2d71-0000-0000-0000-000000000002",
		Target:         "submitted",
	}, hodHeaders)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", w.Code, w.Body.String())
	}
	if svc.transitionRole != workflow.RoleHoD {
		t.Errorf("service saw role %q, want the header role", svc.transitionRole)
	}

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Code != 0 {
		t.Errorf("envelope code = %d, want 0", resp.Code)
	}
}

func TestWorkflowHandler_Transition_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   int
	}{
		{"validation", apperr.Validation("bad batch", apperr.Detail{ProgramType: "Workshop", Reason: "inconsistent"}), http.StatusUnprocessableEntity, 20001},
		{"invalid transition", apperr.InvalidTransition("draft", "approved", "no edge"), http.StatusConflict, 20002},
		{"forbidden", apperr.Forbidden("window closed", "deadline_passed"), http.StatusForbidden, 20003},
		{"conflict", apperr.Conflict("lost the race"), http.StatusConflict, 20005},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newWorkflowRouter(&mockWorkflowService{transitionErr: tt.err})
			w := doJSON(r, http.MethodPost, "/api/v1/workflow-status/transition", dto.TransitionRequest{
				DepartmentID:   "5f8a2d71-0000-0000-0000-000000000001",
				AcademicYearID: "5f8a2d71-0000-0000-0000-000000000002",
				Target:         "submitted",
			}, hodHeaders)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var resp response.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Code != tt.wantCode {
				t.Errorf("envelope code = %d, want %d", resp.Code, tt.wantCode)
			}
		})
	}
}

func TestWorkflowHandler_Transition_ValidationDetailsPassThrough(t *testing.T) {
	details := []apperr.Detail{
		{ProgramType: "Workshop", Reason: "count and total budget must be both zero or both positive"},
	}
	r := newWorkflowRouter(&mockWorkflowService{
		transitionErr: apperr.Validation("budget entries are inconsistent", details...),
	})

	w := doJSON(r, http.MethodPost, "/api/v1/workflow-status/transition", dto.TransitionRequest{
		DepartmentID:   "5f8a2d71-0000-0000-0000-000000000001",
		AcademicYearID: "5f8a2d71-0000-0000-0000-000000000002",
		Target:         "submitted",
	}, hodHeaders)

	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Details) != 1 || resp.Details[0].ProgramType != "Workshop" {
		t.Errorf("details = %+v, want the item-level entry carried through", resp.Details)
	}
}

func TestWorkflowHandler_Summary_RoleGate(t *testing.T) {
	r := newWorkflowRouter(&mockWorkflowService{
		summaryResult: []dto.DepartmentSummary{{DepartmentName: "CSE", WorkflowStatus: "submitted"}},
	})

	w := doJSON(r, http.MethodGet, "/api/v1/workflow-status/summary/y-1", nil, hodHeaders)
	if w.Code != http.StatusForbidden {
		t.Errorf("HoD on summary: status = %d, want 403", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/api/v1/workflow-status/summary/y-1", nil,
		map[string]string{"X-User-ID": "u-2", "X-User-Role": "principal"})
	if w.Code != http.StatusOK {
		t.Errorf("principal on summary: status = %d, want 200", w.Code)
	}
}

// ── Mock NotificationService ──

type mockNotificationService struct {
	inboxRecipient string
	inboxResult    []dto.NotificationResponse
	markReadID     string
	markReadUser   string
	markReadErr    error
}

func (m *mockNotificationService) Inbox(_ context.Context, recipient string, _ bool, _ int) ([]dto.NotificationResponse, error) {
	m.inboxRecipient = recipient
	return m.inboxResult, nil
}

func (m *mockNotificationService) MarkRead(_ context.Context, id, recipient string) error {
	m.markReadID = id
	m.markReadUser = recipient
	return m.markReadErr
}

func newNotificationRouter(svc *mockNotificationService) *gin.Engine {
	r := gin.New()
	h := NewNotificationHandler(svc)
	v1 := r.Group("/api/v1")
	v1.Use(middleware.Actor())
	v1.GET("/notifications", h.Inbox)
	v1.PUT("/notifications/:id/read", h.MarkRead)
	return r
}

func TestNotificationHandler_Inbox_UsesActorID(t *testing.T) {
	svc := &mockNotificationService{
		inboxResult: []dto.NotificationResponse{{ID: "n-1", Title: "budget submitted"}},
	}
	r := newNotificationRouter(svc)

	w := doJSON(r, http.MethodGet, "/api/v1/notifications", nil, hodHeaders)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if svc.inboxRecipient != "u-1" {
		t.Errorf("recipient = %q, want the X-User-ID header value", svc.inboxRecipient)
	}
}

func TestNotificationHandler_MarkRead_ScopesToActor(t *testing.T) {
	svc := &mockNotificationService{markReadErr: apperr.NotFound("notification not found")}
	r := newNotificationRouter(svc)

	w := doJSON(r, http.MethodPut, "/api/v1/notifications/n-9/read", nil, hodHeaders)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if svc.markReadID != "n-9" || svc.markReadUser != "u-1" {
		t.Errorf("call = (%q, %q), want the path id and the actor id", svc.markReadID, svc.markReadUser)
	}
}
