package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/dto"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/workflow"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/pkg/apperr"
)

func programCountServiceAt(env *testEnv, at time.Time) *programCountService {
	return &programCountService{
		repo:   env.repo,
		logger: zap.NewNop(),
		now:    func() time.Time { return at },
	}
}

func TestProgramCountService_SubmitBudget_FixedModeDerivesTotal(t *testing.T) {
	env := newTestEnv()
	deptID := env.departments.add("CSE", "")
	yearID := env.academicYears.add("2025-2026")
	env.programTypes.add("Guest Lecture", "", model.BudgetModeFixed, 5000)

	svc := programCountServiceAt(env, time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	stored, err := svc.SubmitBudget(context.Background(), &dto.SubmitBudgetRequest{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		Entries: []dto.BudgetEntry{{
			ProgramType: "Guest Lecture",
			BudgetMode:  model.BudgetModeFixed,
			Count:       3,
			TotalBudget: 999999, // client value is discarded in fixed mode
		}},
	}, workflow.RoleHoD)
	if err != nil {
		t.Fatalf("SubmitBudget: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("got %d rows, want 1", len(stored))
	}
	if stored[0].TotalBudget != 15000 {
		t.Errorf("TotalBudget = %d, want 3 x 5000 = 15000", stored[0].TotalBudget)
	}
}

func TestProgramCountService_SubmitBudget_VariableInconsistencyRejectsBatch(t *testing.T) {
	env := newTestEnv()
	deptID := env.departments.add("CSE", "")
	yearID := env.academicYears.add("2025-2026")

	entries := []dto.BudgetEntry{
		{ProgramType: "Workshop", BudgetMode: model.BudgetModeVariable, Count: 2, TotalBudget: 40000},
		{ProgramType: "Hackathon", BudgetMode: model.BudgetModeVariable, Count: 2, TotalBudget: 0}, // offender
		{ProgramType: "Seminar", BudgetMode: model.BudgetModeVariable, Count: 0, TotalBudget: 0},
		{ProgramType: "Conference", BudgetMode: model.BudgetModeVariable, Count: 0, TotalBudget: 9000}, // offender
	}

	svc := programCountServiceAt(env, time.Now())
	_, err := svc.SubmitBudget(context.Background(), &dto.SubmitBudgetRequest{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		Entries:        entries,
	}, workflow.RoleHoD)

	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %q, want validation", apperr.KindOf(err))
	}
	details := apperr.DetailsOf(err)
	if len(details) != 2 {
		t.Fatalf("got %d details, want both offenders listed", len(details))
	}
	offenders := map[string]bool{details[0].ProgramType: true, details[1].ProgramType: true}
	if !offenders["Hackathon"] || !offenders["Conference"] {
		t.Errorf("offenders = %v, want Hackathon and Conference", offenders)
	}

	// Atomic rejection: the valid rows in the batch were not persisted.
	rows, _ := env.programCounts.ListByAggregate(context.Background(), deptID, yearID)
	if len(rows) != 0 {
		t.Errorf("got %d persisted rows, want 0", len(rows))
	}
}

func TestProgramCountService_SubmitBudget_RejectsNegativeValues(t *testing.T) {
	env := newTestEnv()
	deptID := env.departments.add("CSE", "")
	yearID := env.academicYears.add("2025-2026")

	svc := programCountServiceAt(env, time.Now())
	_, err := svc.SubmitBudget(context.Background(), &dto.SubmitBudgetRequest{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		Entries: []dto.BudgetEntry{
			{ProgramType: "Workshop", BudgetMode: model.BudgetModeVariable, Count: 0, TotalBudget: -5},
			{ProgramType: "Seminar", BudgetMode: model.BudgetModeVariable, Count: -1, TotalBudget: 0},
		},
	}, workflow.RoleHoD)

	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %q, want validation", apperr.KindOf(err))
	}
	if details := apperr.DetailsOf(err); len(details) != 2 {
		t.Fatalf("got %d details, want both negative entries listed", len(details))
	}

	rows, _ := env.programCounts.ListByAggregate(context.Background(), deptID, yearID)
	if len(rows) != 0 {
		t.Errorf("got %d persisted rows, want 0", len(rows))
	}
}

func TestProgramCountService_SubmitBudget_DeadlineGate(t *testing.T) {
	env := newTestEnv()
	deptID := env.departments.add("CSE", "")
	yearID := env.academicYears.add("2025-2026")
	deadline := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	env.deadlines.set(yearID, ModuleProgramEntry, deadline)

	req := &dto.SubmitBudgetRequest{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		Entries: []dto.BudgetEntry{
			{ProgramType: "Workshop", BudgetMode: model.BudgetModeVariable, Count: 1, TotalBudget: 10000},
		},
	}

	// Past the deadline the HoD is locked out.
	late := programCountServiceAt(env, deadline.Add(time.Hour))
	_, err := late.SubmitBudget(context.Background(), req, workflow.RoleHoD)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("kind = %q, want forbidden", apperr.KindOf(err))
	}

	// An active override reopens the window.
	env.overrides.rows[mkey(deptID, yearID, ModuleProgramEntry)] = &model.DeadlineOverride{
		DeadlineOverrideID: "o-1",
		DepartmentID:       deptID,
		AcademicYearID:     yearID,
		Module:             ModuleProgramEntry,
		DurationHours:      24,
		GrantedAt:          deadline.Add(time.Hour),
		ExpiresAt:          deadline.Add(25 * time.Hour),
	}
	if _, err := late.SubmitBudget(context.Background(), req, workflow.RoleHoD); err != nil {
		t.Fatalf("SubmitBudget with override: %v", err)
	}
}

func TestProgramCountService_SubmitBudget_LockedAfterSubmission(t *testing.T) {
	env := newTestEnv()
	deptID := env.departments.add("CSE", "")
	yearID := env.academicYears.add("2025-2026")
	env.statuses.seed(deptID, yearID, string(workflow.StatusSubmitted), 2)

	svc := programCountServiceAt(env, time.Now())
	_, err := svc.SubmitBudget(context.Background(), &dto.SubmitBudgetRequest{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		Entries: []dto.BudgetEntry{
			{ProgramType: "Workshop", BudgetMode: model.BudgetModeVariable, Count: 1, TotalBudget: 10000},
		},
	}, workflow.RoleHoD)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("kind = %q, want forbidden once the workflow advanced", apperr.KindOf(err))
	}
}

func TestProgramCountService_SetPrincipalRemarks(t *testing.T) {
	env := newTestEnv()
	deptID := env.departments.add("CSE", "")
	yearID := env.academicYears.add("2025-2026")
	svc := programCountServiceAt(env, time.Now())

	req := &dto.PrincipalRemarksRequest{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		Remarks:        "revise the workshop allocation",
	}

	if err := svc.SetPrincipalRemarks(context.Background(), req, workflow.RoleHoD); apperr.KindOf(err) != apperr.KindForbidden {
		t.Errorf("HoD kind = %q, want forbidden", apperr.KindOf(err))
	}
	if err := svc.SetPrincipalRemarks(context.Background(), req, workflow.RolePrincipal); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("no rows kind = %q, want not_found", apperr.KindOf(err))
	}

	env.programCounts.Upsert(context.Background(), &model.ProgramCount{
		DepartmentID:   deptID,
		AcademicYearID: yearID,
		ProgramType:    "Workshop",
		BudgetMode:     model.BudgetModeVariable,
		Count:          1,
		TotalBudget:    10000,
	})
	if err := svc.SetPrincipalRemarks(context.Background(), req, workflow.RolePrincipal); err != nil {
		t.Fatalf("SetPrincipalRemarks: %v", err)
	}
	rows, _ := env.programCounts.ListByAggregate(context.Background(), deptID, yearID)
	if rows[0].PrincipalRemarks != req.Remarks {
		t.Errorf("PrincipalRemarks = %q, want %q", rows[0].PrincipalRemarks, req.Remarks)
	}
}
