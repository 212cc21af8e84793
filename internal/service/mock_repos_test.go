package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/model"
	"github.com/sravivarmanvce/academic-activity-portal-sub000/internal/repository"
)

// Map-backed fakes for every repository interface. They return copies so
// callers mutating a result never leak into the store, matching how rows
// scanned from the database behave.

func mkey(parts ...string) string { return strings.Join(parts, "|") }

var errTestWrite = errors.New("simulated write failure")

// ── departments ──

type mockDepartmentRepo struct {
	rows map[string]*model.Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{rows: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) add(name, hodEmail string) string {
	id := uuid.NewString()
	m.rows[id] = &model.Department{DepartmentID: id, Name: name, ShortName: name, HodEmail: hodEmail, IsActive: true}
	return id
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var out []model.Department
	for _, d := range m.rows {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockDepartmentRepo) ListActive(ctx context.Context) ([]model.Department, error) {
	all, _ := m.List(ctx)
	var out []model.Department
	for _, d := range all {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

// ── academic years ──

type mockAcademicYearRepo struct {
	rows map[string]*model.AcademicYear
}

func newMockAcademicYearRepo() *mockAcademicYearRepo {
	return &mockAcademicYearRepo{rows: make(map[string]*model.AcademicYear)}
}

func (m *mockAcademicYearRepo) add(year string) string {
	id := uuid.NewString()
	m.rows[id] = &model.AcademicYear{AcademicYearID: id, Year: year, IsEnabled: true}
	return id
}

func (m *mockAcademicYearRepo) GetByID(_ context.Context, id string) (*model.AcademicYear, error) {
	y, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *y
	return &cp, nil
}

func (m *mockAcademicYearRepo) List(_ context.Context) ([]model.AcademicYear, error) {
	var out []model.AcademicYear
	for _, y := range m.rows {
		out = append(out, *y)
	}
	return out, nil
}

// ── program types ──

type mockProgramTypeRepo struct {
	rows []*model.ProgramType
}

func newMockProgramTypeRepo() *mockProgramTypeRepo { return &mockProgramTypeRepo{} }

func (m *mockProgramTypeRepo) add(programType, subProgramType, budgetMode string, budgetPerEvent int64) string {
	id := uuid.NewString()
	m.rows = append(m.rows, &model.ProgramType{
		ProgramTypeID:    id,
		ProgramType:      programType,
		SubProgramType:   subProgramType,
		ActivityCategory: "technical",
		BudgetMode:       budgetMode,
		BudgetPerEvent:   budgetPerEvent,
	})
	return id
}

func (m *mockProgramTypeRepo) GetByID(_ context.Context, id string) (*model.ProgramType, error) {
	for _, pt := range m.rows {
		if pt.ProgramTypeID == id {
			cp := *pt
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramTypeRepo) GetByIdentity(_ context.Context, programType, subProgramType string) (*model.ProgramType, error) {
	for _, pt := range m.rows {
		if pt.ProgramType == programType && pt.SubProgramType == subProgramType {
			cp := *pt
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProgramTypeRepo) List(_ context.Context) ([]model.ProgramType, error) {
	var out []model.ProgramType
	for _, pt := range m.rows {
		out = append(out, *pt)
	}
	return out, nil
}

// ── program counts ──

type mockProgramCountRepo struct {
	rows map[string]*model.ProgramCount // dept|year|type|subtype
}

func newMockProgramCountRepo() *mockProgramCountRepo {
	return &mockProgramCountRepo{rows: make(map[string]*model.ProgramCount)}
}

func (m *mockProgramCountRepo) ListByAggregate(_ context.Context, departmentID, academicYearID string) ([]model.ProgramCount, error) {
	var out []model.ProgramCount
	for _, pc := range m.rows {
		if pc.DepartmentID == departmentID && pc.AcademicYearID == academicYearID {
			out = append(out, *pc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProgramType < out[j].ProgramType })
	return out, nil
}

func (m *mockProgramCountRepo) ListByYear(_ context.Context, academicYearID string) ([]model.ProgramCount, error) {
	var out []model.ProgramCount
	for _, pc := range m.rows {
		if pc.AcademicYearID == academicYearID {
			out = append(out, *pc)
		}
	}
	return out, nil
}

func (m *mockProgramCountRepo) Upsert(_ context.Context, pc *model.ProgramCount) error {
	key := mkey(pc.DepartmentID, pc.AcademicYearID, pc.ProgramType, pc.SubProgramType)
	if existing, ok := m.rows[key]; ok {
		pc.ProgramCountID = existing.ProgramCountID
	} else if pc.ProgramCountID == "" {
		pc.ProgramCountID = uuid.NewString()
	}
	cp := *pc
	cp.UpdatedAt = time.Now()
	m.rows[key] = &cp
	return nil
}

func (m *mockProgramCountRepo) UpdatePrincipalRemarks(_ context.Context, departmentID, academicYearID, remarks string) (int64, error) {
	var n int64
	for _, pc := range m.rows {
		if pc.DepartmentID == departmentID && pc.AcademicYearID == academicYearID {
			pc.PrincipalRemarks = remarks
			n++
		}
	}
	return n, nil
}

// ── workflow statuses ──

type mockWorkflowStatusRepo struct {
	mu   sync.Mutex
	rows map[string]*model.WorkflowStatus // dept|year
	// bumpBeforeUpdate simulates a concurrent transition landing between
	// the locked read and the versioned write.
	bumpBeforeUpdate bool
}

func newMockWorkflowStatusRepo() *mockWorkflowStatusRepo {
	return &mockWorkflowStatusRepo{rows: make(map[string]*model.WorkflowStatus)}
}

func (m *mockWorkflowStatusRepo) seed(departmentID, academicYearID, status string, version int) *model.WorkflowStatus {
	ws := &model.WorkflowStatus{
		WorkflowStatusID: uuid.NewString(),
		DepartmentID:     departmentID,
		AcademicYearID:   academicYearID,
		Status:           status,
		Version:          version,
	}
	ws.UpdatedAt = time.Now()
	m.rows[mkey(departmentID, academicYearID)] = ws
	return ws
}

func (m *mockWorkflowStatusRepo) GetOrCreate(_ context.Context, departmentID, academicYearID string) (*model.WorkflowStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ws, ok := m.rows[mkey(departmentID, academicYearID)]
	if !ok {
		ws = m.seed(departmentID, academicYearID, "draft", 1)
	}
	cp := *ws
	return &cp, nil
}

func (m *mockWorkflowStatusRepo) GetForUpdate(ctx context.Context, departmentID, academicYearID string) (*model.WorkflowStatus, error) {
	return m.GetOrCreate(ctx, departmentID, academicYearID)
}

func (m *mockWorkflowStatusRepo) UpdateStatusVersioned(_ context.Context, id, status string, expectedVersion int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bumpBeforeUpdate {
		m.bumpBeforeUpdate = false
		for _, ws := range m.rows {
			if ws.WorkflowStatusID == id {
				ws.Version++
			}
		}
	}
	for _, ws := range m.rows {
		if ws.WorkflowStatusID == id && ws.Version == expectedVersion {
			ws.Status = status
			ws.Version++
			ws.UpdatedAt = time.Now()
			return 1, nil
		}
	}
	return 0, nil
}

func (m *mockWorkflowStatusRepo) ListByYear(_ context.Context, academicYearID string) ([]model.WorkflowStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.WorkflowStatus
	for _, ws := range m.rows {
		if ws.AcademicYearID == academicYearID {
			out = append(out, *ws)
		}
	}
	return out, nil
}

// ── module deadlines ──

type mockModuleDeadlineRepo struct {
	rows map[string]*model.ModuleDeadline // year|module
}

func newMockModuleDeadlineRepo() *mockModuleDeadlineRepo {
	return &mockModuleDeadlineRepo{rows: make(map[string]*model.ModuleDeadline)}
}

func (m *mockModuleDeadlineRepo) set(academicYearID, module string, deadline time.Time) {
	m.rows[mkey(academicYearID, module)] = &model.ModuleDeadline{
		ModuleDeadlineID: uuid.NewString(),
		AcademicYearID:   academicYearID,
		Module:           module,
		Deadline:         deadline,
	}
}

func (m *mockModuleDeadlineRepo) Get(_ context.Context, academicYearID, module string) (*model.ModuleDeadline, error) {
	md, ok := m.rows[mkey(academicYearID, module)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *md
	return &cp, nil
}

func (m *mockModuleDeadlineRepo) ListByYear(_ context.Context, academicYearID string) ([]model.ModuleDeadline, error) {
	var out []model.ModuleDeadline
	for _, md := range m.rows {
		if md.AcademicYearID == academicYearID {
			out = append(out, *md)
		}
	}
	return out, nil
}

func (m *mockModuleDeadlineRepo) Upsert(_ context.Context, md *model.ModuleDeadline) error {
	key := mkey(md.AcademicYearID, md.Module)
	if existing, ok := m.rows[key]; ok {
		md.ModuleDeadlineID = existing.ModuleDeadlineID
	} else if md.ModuleDeadlineID == "" {
		md.ModuleDeadlineID = uuid.NewString()
	}
	cp := *md
	m.rows[key] = &cp
	return nil
}

// ── deadline overrides ──

type mockDeadlineOverrideRepo struct {
	rows    map[string]*model.DeadlineOverride // dept|year|module
	failFor map[string]error                   // departments whose writes fail
}

func newMockDeadlineOverrideRepo() *mockDeadlineOverrideRepo {
	return &mockDeadlineOverrideRepo{
		rows:    make(map[string]*model.DeadlineOverride),
		failFor: make(map[string]error),
	}
}

func (m *mockDeadlineOverrideRepo) Get(_ context.Context, departmentID, academicYearID, module string) (*model.DeadlineOverride, error) {
	o, ok := m.rows[mkey(departmentID, academicYearID, module)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockDeadlineOverrideRepo) ListByYear(_ context.Context, academicYearID string) ([]model.DeadlineOverride, error) {
	var out []model.DeadlineOverride
	for _, o := range m.rows {
		if o.AcademicYearID == academicYearID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartmentID < out[j].DepartmentID })
	return out, nil
}

func (m *mockDeadlineOverrideRepo) Replace(_ context.Context, o *model.DeadlineOverride) error {
	if err := m.failFor[o.DepartmentID]; err != nil {
		return err
	}
	if o.DeadlineOverrideID == "" {
		o.DeadlineOverrideID = uuid.NewString()
	}
	cp := *o
	m.rows[mkey(o.DepartmentID, o.AcademicYearID, o.Module)] = &cp
	return nil
}

func (m *mockDeadlineOverrideRepo) Update(_ context.Context, o *model.DeadlineOverride) error {
	key := mkey(o.DepartmentID, o.AcademicYearID, o.Module)
	if _, ok := m.rows[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *o
	m.rows[key] = &cp
	return nil
}

func (m *mockDeadlineOverrideRepo) Delete(_ context.Context, departmentID, academicYearID, module string) (int64, error) {
	key := mkey(departmentID, academicYearID, module)
	if _, ok := m.rows[key]; !ok {
		return 0, nil
	}
	delete(m.rows, key)
	return 1, nil
}

// ── events ──

type mockEventRepo struct {
	rows map[string]*model.Event // event id
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{rows: make(map[string]*model.Event)}
}

func (m *mockEventRepo) add(ev model.Event) string {
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	if ev.Status == "" {
		ev.Status = model.EventStatusPlanned
	}
	m.rows[ev.EventID] = &ev
	return ev.EventID
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	ev, ok := m.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ev
	return &cp, nil
}

func (m *mockEventRepo) ListByAggregate(_ context.Context, departmentID, academicYearID string) ([]model.Event, error) {
	var out []model.Event
	for _, ev := range m.rows {
		if ev.DepartmentID == departmentID && ev.AcademicYearID == academicYearID {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (m *mockEventRepo) ListByProgramType(_ context.Context, departmentID, academicYearID, programTypeID string) ([]model.Event, error) {
	var out []model.Event
	for _, ev := range m.rows {
		if ev.DepartmentID == departmentID && ev.AcademicYearID == academicYearID && ev.ProgramTypeID == programTypeID {
			out = append(out, *ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (m *mockEventRepo) ReplaceForProgramType(_ context.Context, departmentID, academicYearID, programTypeID string, events []model.Event) error {
	for id, ev := range m.rows {
		if ev.DepartmentID == departmentID && ev.AcademicYearID == academicYearID && ev.ProgramTypeID == programTypeID {
			delete(m.rows, id)
		}
	}
	for i := range events {
		m.add(events[i])
	}
	return nil
}

func (m *mockEventRepo) DeleteByAggregate(_ context.Context, departmentID, academicYearID string) (int64, error) {
	var n int64
	for id, ev := range m.rows {
		if ev.DepartmentID == departmentID && ev.AcademicYearID == academicYearID {
			delete(m.rows, id)
			n++
		}
	}
	return n, nil
}

func (m *mockEventRepo) UpdateStatus(_ context.Context, id, status string) (int64, error) {
	ev, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	ev.Status = status
	return 1, nil
}

// ── notifications ──

type mockNotificationRepo struct {
	rows []model.Notification
}

func newMockNotificationRepo() *mockNotificationRepo { return &mockNotificationRepo{} }

func (m *mockNotificationRepo) Create(_ context.Context, n *model.Notification) error {
	if n.NotificationID == "" {
		n.NotificationID = uuid.NewString()
	}
	m.rows = append(m.rows, *n)
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(_ context.Context, recipient string, unreadOnly bool, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range m.rows {
		if n.Recipient != recipient || (unreadOnly && n.Read) {
			continue
		}
		out = append(out, n)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, id, recipient string) (int64, error) {
	for i := range m.rows {
		if m.rows[i].NotificationID == id && m.rows[i].Recipient == recipient {
			m.rows[i].Read = true
			return 1, nil
		}
	}
	return 0, nil
}

// ── notifier and cache fakes ──

type captureNotifier struct {
	calls []capturedNotification
}

type capturedNotification struct {
	EventType string
	Recipient string
	Title     string
	Message   string
}

func (n *captureNotifier) Notify(_ context.Context, eventType, recipient, title, message string) {
	n.calls = append(n.calls, capturedNotification{eventType, recipient, title, message})
}

type fakeSummaryCache struct {
	store       map[string]string
	invalidated int
}

func newFakeSummaryCache() *fakeSummaryCache {
	return &fakeSummaryCache{store: make(map[string]string)}
}

func (c *fakeSummaryCache) GetSummary(_ context.Context, academicYearID string) (string, error) {
	return c.store[academicYearID], nil
}

func (c *fakeSummaryCache) SetSummary(_ context.Context, academicYearID, payload string, _ time.Duration) error {
	c.store[academicYearID] = payload
	return nil
}

func (c *fakeSummaryCache) InvalidateSummary(_ context.Context, academicYearID string) error {
	delete(c.store, academicYearID)
	c.invalidated++
	return nil
}

// ── environment ──

// testEnv bundles the fakes behind a repository aggregate. The aggregate
// has no database, so BeginTx yields a nil transaction and writes land in
// the fakes directly.
type testEnv struct {
	repo *repository.Repository

	departments   *mockDepartmentRepo
	academicYears *mockAcademicYearRepo
	programTypes  *mockProgramTypeRepo
	programCounts *mockProgramCountRepo
	statuses      *mockWorkflowStatusRepo
	deadlines     *mockModuleDeadlineRepo
	overrides     *mockDeadlineOverrideRepo
	events        *mockEventRepo
	notifications *mockNotificationRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		departments:   newMockDepartmentRepo(),
		academicYears: newMockAcademicYearRepo(),
		programTypes:  newMockProgramTypeRepo(),
		programCounts: newMockProgramCountRepo(),
		statuses:      newMockWorkflowStatusRepo(),
		deadlines:     newMockModuleDeadlineRepo(),
		overrides:     newMockDeadlineOverrideRepo(),
		events:        newMockEventRepo(),
		notifications: newMockNotificationRepo(),
	}
	env.repo = &repository.Repository{
		Department:       env.departments,
		AcademicYear:     env.academicYears,
		ProgramType:      env.programTypes,
		ProgramCount:     env.programCounts,
		WorkflowStatus:   env.statuses,
		ModuleDeadline:   env.deadlines,
		DeadlineOverride: env.overrides,
		Event:            env.events,
		Notification:     env.notifications,
	}
	return env
}
