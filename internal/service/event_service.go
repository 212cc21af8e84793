package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

const eventDateLayout = "2006-01-02"

// EventService plans individual funded events against approved program
// totals and enforces their reconciliation.
type EventService interface {
	// GenerateSlots computes placeholder events for every counted program
	// type. The default budget split is a display default only; nothing is
	// persisted, and regenerating discards any unsaved client work.
	GenerateSlots(ctx context.Context, req *dto.GenerateSlotsRequest, role workflow.Role) ([]dto.EventSlot, error)
	// SaveEvents replaces the events of one program type. Validation and
	// persistence are scoped to that program type: a failure persists
	// nothing for it and leaves every other program type untouched.
	SaveEvents(ctx context.Context, req *dto.SaveEventsRequest, role workflow.Role) ([]dto.EventResponse, error)
	// ClearEvents deletes every event of the aggregate immediately. Any
	// confirmation gate is the caller's responsibility.
	ClearEvents(ctx context.Context, req *dto.ClearEventsRequest, role workflow.Role) (int64, error)
	UpdateEventStatus(ctx context.Context, eventID, status string, role workflow.Role) error
	Get(ctx context.Context, eventID string) (*dto.EventResponse, error)
	List(ctx context.Context, departmentID, academicYearID string) ([]dto.EventResponse, error)
	BudgetSummary(ctx context.Context, departmentID, academicYearID string) (*dto.BudgetSummaryResponse, error)
	// ExportCalendar serializes the aggregate's non-cancelled events to an
	// iCalendar document.
	ExportCalendar(ctx context.Context, departmentID, academicYearID string) (string, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewEventService creates an EventService.
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger, now: time.Now}
}

func (s *eventService) GenerateSlots(ctx context.Context, req *dto.GenerateSlotsRequest, role workflow.Role) ([]dto.EventSlot, error) {
	if err := s.requireEventEditable(ctx, req.DepartmentID, req.AcademicYearID, role); err != nil {
		return nil, err
	}

	counts, err := s.repo.ProgramCount.ListByAggregate(ctx, req.DepartmentID, req.AcademicYearID)
	if err != nil {
		s.logger.Error("list program counts failed", zap.Error(err))
		return nil, err
	}

	var slots []dto.EventSlot
	for i := range counts {
		pc := &counts[i]
		if pc.Count == 0 {
			continue
		}
		pt, err := s.repo.ProgramType.GetByIdentity(ctx, pc.ProgramType, pc.SubProgramType)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Validation("program type is not catalogued",
					apperr.Detail{ProgramType: pc.ProgramType, SubProgramType: pc.SubProgramType, Reason: "not catalogued"})
			}
			return nil, err
		}

		for n := 1; n <= pc.Count; n++ {
			slots = append(slots, dto.EventSlot{
				ProgramTypeID:  pt.ProgramTypeID,
				ProgramType:    pc.ProgramType,
				SubProgramType: pc.SubProgramType,
				SlotNumber:     n,
				DefaultBudget:  defaultSlotBudget(pc, pt, n),
			})
		}
	}
	return slots, nil
}

// defaultSlotBudget splits a program's total across its slots. Fixed mode
// uses the per-event rate. Variable mode floor-divides and assigns the
// remainder to the last slot so the defaults sum to the total exactly.
func defaultSlotBudget(pc *model.ProgramCount, pt *model.ProgramType, slotNumber int) int64 {
	if pc.BudgetMode == model.BudgetModeFixed {
		return pt.BudgetPerEvent
	}
	count := int64(pc.Count)
	base := pc.TotalBudget / count
	if slotNumber == pc.Count {
		return base + pc.TotalBudget%count
	}
	return base
}

func (s *eventService) SaveEvents(ctx context.Context, req *dto.SaveEventsRequest, role workflow.Role) ([]dto.EventResponse, error) {
	if err := s.requireEventEditable(ctx, req.DepartmentID, req.AcademicYearID, role); err != nil {
		return nil, err
	}

	pt, err := s.repo.ProgramType.GetByID(ctx, req.ProgramTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("program type not found")
		}
		s.logger.Error("load program type failed", zap.Error(err))
		return nil, err
	}

	pc, err := s.findProgramCount(ctx, req.DepartmentID, req.AcademicYearID, pt)
	if err != nil {
		return nil, err
	}

	rows, details := s.buildEvents(req, pt)
	if len(details) == 0 {
		var sum int64
		for i := range rows {
			sum += rows[i].BudgetAmount
		}
		if diff := sum - pc.TotalBudget; diff > 1 || diff < -1 {
			details = append(details, apperr.Detail{
				ProgramType:    pt.ProgramType,
				SubProgramType: pt.SubProgramType,
				Reason:         fmt.Sprintf("event budgets sum to %d, approved total is %d", sum, pc.TotalBudget),
			})
		}
	}
	if len(details) > 0 {
		// Nothing persists for this program type; others are unaffected.
		return nil, apperr.Validation("event plan rejected", details...)
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("begin tx failed", zap.Error(err))
		return nil, err
	}
	txRepo := s.repo.WithTx(tx)

	if err := txRepo.Event.ReplaceForProgramType(ctx, req.DepartmentID, req.AcademicYearID, req.ProgramTypeID, rows); err != nil {
		rollback(tx)
		s.logger.Error("replace events failed", zap.Error(err))
		return nil, err
	}
	if err := commit(tx); err != nil {
		s.logger.Error("commit events failed", zap.Error(err))
		return nil, err
	}

	stored, err := s.repo.Event.ListByProgramType(ctx, req.DepartmentID, req.AcademicYearID, req.ProgramTypeID)
	if err != nil {
		s.logger.Error("reload events failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.EventResponse, 0, len(stored))
	for i := range stored {
		result = append(result, toEventResponse(&stored[i]))
	}
	return result, nil
}

// buildEvents validates the submitted events and converts them to rows.
func (s *eventService) buildEvents(req *dto.SaveEventsRequest, pt *model.ProgramType) ([]model.Event, []apperr.Detail) {
	rows := make([]model.Event, 0, len(req.Events))
	var details []apperr.Detail

	for idx, e := range req.Events {
		field := fmt.Sprintf("events[%d]", idx)
		if e.Title == "" {
			details = append(details, apperr.Detail{
				Field: field, ProgramType: pt.ProgramType, Reason: "title must not be empty",
			})
			continue
		}
		date, err := time.Parse(eventDateLayout, e.EventDate)
		if err != nil {
			details = append(details, apperr.Detail{
				Field: field, ProgramType: pt.ProgramType, Reason: "event date must be YYYY-MM-DD",
			})
			continue
		}
		if e.BudgetAmount <= 0 {
			details = append(details, apperr.Detail{
				Field: field, ProgramType: pt.ProgramType, Reason: "budget amount must be positive",
			})
			continue
		}
		rows = append(rows, model.Event{
			DepartmentID:       req.DepartmentID,
			AcademicYearID:     req.AcademicYearID,
			ProgramTypeID:      req.ProgramTypeID,
			Title:              e.Title,
			Description:        e.Description,
			EventDate:          date,
			BudgetAmount:       e.BudgetAmount,
			CoordinatorName:    e.CoordinatorName,
			CoordinatorContact: e.CoordinatorContact,
			Status:             model.EventStatusPlanned,
		})
	}
	return rows, details
}

func (s *eventService) ClearEvents(ctx context.Context, req *dto.ClearEventsRequest, role workflow.Role) (int64, error) {
	if err := s.requireEventEditable(ctx, req.DepartmentID, req.AcademicYearID, role); err != nil {
		return 0, err
	}
	deleted, err := s.repo.Event.DeleteByAggregate(ctx, req.DepartmentID, req.AcademicYearID)
	if err != nil {
		s.logger.Error("clear events failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("events cleared",
		zap.String("department_id", req.DepartmentID),
		zap.String("academic_year_id", req.AcademicYearID),
		zap.Int64("deleted", deleted),
	)
	return deleted, nil
}

func (s *eventService) UpdateEventStatus(ctx context.Context, eventID, status string, role workflow.Role) error {
	if role != workflow.RoleHoD && role != workflow.RolePrincipal && role != workflow.RoleAdmin {
		return apperr.Forbidden("role may not update event status", "role_not_allowed")
	}
	switch status {
	case model.EventStatusPlanned, model.EventStatusOngoing, model.EventStatusCompleted, model.EventStatusCancelled:
	default:
		return apperr.Validation("invalid event status",
			apperr.Detail{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)})
	}
	affected, err := s.repo.Event.UpdateStatus(ctx, eventID, status)
	if err != nil {
		s.logger.Error("update event status failed", zap.Error(err))
		return err
	}
	if affected == 0 {
		return apperr.NotFound("event not found")
	}
	return nil
}

func (s *eventService) Get(ctx context.Context, eventID string) (*dto.EventResponse, error) {
	ev, err := s.repo.Event.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("event not found")
		}
		s.logger.Error("get event failed", zap.Error(err))
		return nil, err
	}
	resp := toEventResponse(ev)
	return &resp, nil
}

func (s *eventService) List(ctx context.Context, departmentID, academicYearID string) ([]dto.EventResponse, error) {
	events, err := s.repo.Event.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, err
	}
	result := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		result = append(result, toEventResponse(&events[i]))
	}
	return result, nil
}

func (s *eventService) BudgetSummary(ctx context.Context, departmentID, academicYearID string) (*dto.BudgetSummaryResponse, error) {
	counts, err := s.repo.ProgramCount.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("list program counts failed", zap.Error(err))
		return nil, err
	}
	events, err := s.repo.Event.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return nil, err
	}

	plannedByType := make(map[string]int64)
	countByType := make(map[string]int)
	for i := range events {
		ev := &events[i]
		if ev.Status == model.EventStatusCancelled {
			continue
		}
		plannedByType[ev.ProgramTypeID] += ev.BudgetAmount
		countByType[ev.ProgramTypeID]++
	}

	resp := &dto.BudgetSummaryResponse{}
	for i := range counts {
		pc := &counts[i]
		if pc.Count == 0 {
			continue
		}
		pt, err := s.repo.ProgramType.GetByIdentity(ctx, pc.ProgramType, pc.SubProgramType)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		planned := plannedByType[pt.ProgramTypeID]
		diff := planned - pc.TotalBudget
		resp.ProgramTypes = append(resp.ProgramTypes, dto.ProgramTypeBudgetSummary{
			ProgramTypeID:  pt.ProgramTypeID,
			ProgramType:    pc.ProgramType,
			EventCount:     countByType[pt.ProgramTypeID],
			PlannedBudget:  planned,
			ApprovedBudget: pc.TotalBudget,
			Reconciled:     diff <= 1 && diff >= -1,
		})
		resp.TotalPlannedBudget += planned
		resp.TotalEvents += countByType[pt.ProgramTypeID]
	}
	return resp, nil
}

func (s *eventService) ExportCalendar(ctx context.Context, departmentID, academicYearID string) (string, error) {
	events, err := s.repo.Event.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("list events failed", zap.Error(err))
		return "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//academic-activity-portal//event-planner//EN")

	now := s.now()
	for i := range events {
		ev := &events[i]
		if ev.Status == model.EventStatusCancelled {
			continue
		}
		item := cal.AddEvent(ev.EventID)
		item.SetDtStampTime(now)
		item.SetAllDayStartAt(ev.EventDate)
		item.SetAllDayEndAt(ev.EventDate.AddDate(0, 0, 1))
		item.SetSummary(ev.Title)
		if ev.Description != "" {
			item.SetDescription(ev.Description)
		}
		if ev.CoordinatorName != "" {
			item.SetOrganizer(ev.CoordinatorName)
		}
	}
	return cal.Serialize(), nil
}

// ── Internal helpers ──

// requireEventEditable gates every event mutation on the resolver.
func (s *eventService) requireEventEditable(ctx context.Context, departmentID, academicYearID string, role workflow.Role) error {
	ws, err := s.repo.WorkflowStatus.GetOrCreate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("load workflow status failed", zap.Error(err))
		return err
	}
	decision := workflow.EventEditability(role, workflow.Status(ws.Status))
	if !decision.Allowed {
		return apperr.Forbidden("event planning is not editable", string(decision.Reason))
	}
	return nil
}

// findProgramCount locates the budget row matching a program type.
func (s *eventService) findProgramCount(ctx context.Context, departmentID, academicYearID string, pt *model.ProgramType) (*model.ProgramCount, error) {
	counts, err := s.repo.ProgramCount.ListByAggregate(ctx, departmentID, academicYearID)
	if err != nil {
		s.logger.Error("list program counts failed", zap.Error(err))
		return nil, err
	}
	for i := range counts {
		pc := &counts[i]
		if pc.ProgramType == pt.ProgramType && pc.SubProgramType == pt.SubProgramType {
			return pc, nil
		}
	}
	return nil, apperr.NotFound("no approved budget for program type")
}

func toEventResponse(ev *model.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:                 ev.EventID,
		DepartmentID:       ev.DepartmentID,
		AcademicYearID:     ev.AcademicYearID,
		ProgramTypeID:      ev.ProgramTypeID,
		Title:              ev.Title,
		Description:        ev.Description,
		EventDate:          ev.EventDate.Format(eventDateLayout),
		BudgetAmount:       ev.BudgetAmount,
		CoordinatorName:    ev.CoordinatorName,
		CoordinatorContact: ev.CoordinatorContact,
		Status:             ev.Status,
	}
}
