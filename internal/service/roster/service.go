package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/roster-viewer-go/internal/domain/roster"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/colorutil"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/identity"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/logger"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/timewindow"
	"github.com/cmlabs-hris/roster-viewer-go/internal/pkg/validator"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type Config struct {
	Location      *time.Location
	DefaultDomain string
	ShowWeekends  bool
	DefaultView   string
	Workers       int
}

type Repositories struct {
	Employees     roster.EmployeeRepository
	Leaves        roster.LeaveRepository
	Compensations roster.CompensationRepository
	CourtFrees    roster.CourtFreeRepository
	Schedules     roster.WeeklyScheduleRepository
	Indicators    roster.DayIndicatorRepository
}

type rosterServiceImpl struct {
	repos  Repositories
	cfg    Config
	now    func() time.Time
	logger *slog.Logger
}

func NewRosterService(repos Repositories, cfg Config, now func() time.Time, log *slog.Logger) roster.RosterService {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.DefaultView == "" {
		cfg.DefaultView = string(timewindow.GranularityMonth)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &rosterServiceImpl{repos: repos, cfg: cfg, now: now, logger: log}
}

func (s *rosterServiceImpl) focus(date, view string) (timewindow.Window, timewindow.Granularity, error) {
	focus, ok := validator.ParseCalendarDate(date, s.cfg.Location)
	if !ok {
		return timewindow.Window{}, "", roster.ErrInvalidFocusDate
	}
	granularity, err := timewindow.ParseGranularity(view)
	if err != nil {
		return timewindow.Window{}, "", roster.ErrInvalidGranularity
	}
	window, err := timewindow.VisibleRange(focus, granularity)
	if err != nil {
		return timewindow.Window{}, "", roster.ErrInvalidGranularity
	}
	return window, granularity, nil
}

// GetGrid implements roster.RosterService.
func (s *rosterServiceImpl) GetGrid(ctx context.Context, req roster.GridRequest) (roster.GridResponse, error) {
	if strings.TrimSpace(req.View) == "" {
		req.View = s.cfg.DefaultView
	}
	if err := req.Validate(); err != nil {
		return roster.GridResponse{}, err
	}

	window, granularity, err := s.focus(req.Date, req.View)
	if err != nil {
		return roster.GridResponse{}, err
	}

	passID := uuid.NewString()
	log := s.logger.With(slog.String("pass_id", passID), slog.String("window", window.Describe()))
	ctx = logger.WithLogger(ctx, log)

	filter := roster.EmployeeFilter{
		Team:            req.Team,
		IncludeHidden:   req.IncludeHidden,
		IncludeInactive: req.IncludeInactive,
	}

	employees, resolver, err := s.prepare(ctx, window, filter)
	if err != nil {
		return roster.GridResponse{}, err
	}

	days := window.Days()
	grid, err := resolver.ResolveGrid(ctx, SelectEmployees(employees, filter), days, s.cfg.Workers)
	if err != nil {
		return roster.GridResponse{}, err
	}

	resp := roster.GridResponse{
		PassID: passID,
		View:   string(granularity),
		Theme:  req.Theme.Name(),
		Start:  window.Start.Format(time.DateOnly),
		End:    window.End.Format(time.DateOnly),
		Days:   make([]roster.DayResponse, 0, len(days)),
		Rows:   make([]roster.GridRowResponse, 0, len(grid.Rows)),
	}

	today := resolver.Today()
	for _, d := range days {
		resp.Days = append(resp.Days, roster.DayResponse{
			Date:      d.Format(time.DateOnly),
			Weekday:   d.Weekday().String(),
			IsWeekend: timewindow.IsWeekend(d),
			IsToday:   timewindow.SameDay(d, today),
		})
	}

	for _, row := range grid.Rows {
		resp.Rows = append(resp.Rows, roster.GridRowResponse{
			Employee: toEmployeeResponse(row.Employee),
			Cells:    toCellResponses(row.Cells, req.Theme),
		})
	}

	for _, emp := range grid.Skipped {
		log.Warn("employee skipped: no resolvable identifier", slog.Int("employee_id", emp.ID), slog.String("username", emp.Username))
		resp.Skipped = append(resp.Skipped, roster.SkippedEmployeeResponse{
			ID:       emp.ID,
			Username: emp.Username,
			Reason:   "no resolvable identifier",
		})
	}

	log.Info("roster grid resolved", slog.Int("rows", len(resp.Rows)), slog.Int("days", len(days)), slog.Int("skipped", len(resp.Skipped)))
	return resp, nil
}

// GetCell implements roster.RosterService.
func (s *rosterServiceImpl) GetCell(ctx context.Context, req roster.CellRequest) (roster.CellDetailResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.CellDetailResponse{}, err
	}

	day, ok := validator.ParseCalendarDate(req.Date, s.cfg.Location)
	if !ok {
		return roster.CellDetailResponse{}, roster.ErrInvalidFocusDate
	}
	window := timewindow.Window{Start: timewindow.StartOfDay(day), End: timewindow.EndOfDay(day)}

	passID := uuid.NewString()
	log := s.logger.With(slog.String("pass_id", passID), slog.String("window", window.Describe()))
	ctx = logger.WithLogger(ctx, log)

	filter := roster.EmployeeFilter{IncludeHidden: true, IncludeInactive: true}
	employees, resolver, err := s.prepare(ctx, window, filter)
	if err != nil {
		return roster.CellDetailResponse{}, err
	}

	for _, emp := range SelectEmployees(employees, filter) {
		if !identity.Equal(emp.Username, req.Employee) {
			continue
		}
		cell := resolver.Resolve(emp, day)
		return roster.CellDetailResponse{
			Employee: toEmployeeResponse(emp),
			Theme:    req.Theme.Name(),
			Cell:     toCellResponses([]roster.ResolvedCell{cell}, req.Theme)[0],
		}, nil
	}

	log.Info("cell requested for unknown employee", slog.String("employee", req.Employee))
	return roster.CellDetailResponse{}, roster.ErrEmployeeNotFound
}

// prepare loads the snapshot for window and indexes it. Load failures are
// reported as roster.ErrSnapshotUnavailable.
func (s *rosterServiceImpl) prepare(ctx context.Context, window timewindow.Window, filter roster.EmployeeFilter) ([]roster.Employee, *Resolver, error) {
	log := logger.From(ctx)

	started := s.now()
	employees, records, err := s.loadSnapshot(ctx, window, filter)
	if err != nil {
		log.Error("failed to load roster snapshot", slog.Any("error", err))
		return nil, nil, fmt.Errorf("%w: %v", roster.ErrSnapshotUnavailable, err)
	}
	log.Debug("roster snapshot loaded",
		slog.Int("employees", len(employees)),
		slog.Int("leaves", len(records.Leaves)),
		slog.Int("compensations", len(records.Compensations)),
		slog.Int("court_frees", len(records.CourtFrees)),
		slog.Int("schedule_versions", len(records.ScheduleVersions)),
		slog.Int("indicators", len(records.Indicators)),
		slog.Duration("duration", s.now().Sub(started)),
	)

	resolver := NewResolver(records, Options{
		Location:     s.cfg.Location,
		Normalizer:   identity.NewNormalizer(s.cfg.DefaultDomain),
		ShowWeekends: s.cfg.ShowWeekends,
		Now:          s.now,
	})
	for _, sk := range resolver.Skipped() {
		log.Debug("record excluded from matching", slog.String("kind", string(sk.Kind)), slog.Int("id", sk.ID), slog.String("reason", sk.Reason))
	}
	return employees, resolver, nil
}

func toEmployeeResponse(emp roster.Employee) roster.EmployeeResponse {
	return roster.EmployeeResponse{
		ID:               emp.ID,
		Key:              identity.Normalize(emp.Username),
		Username:         emp.Username,
		DisplayName:      emp.DisplayName,
		Team:             emp.Team,
		HearingAvailable: emp.HearingAvailable,
	}
}

func toCellResponses(cells []roster.ResolvedCell, theme colorutil.ThemeContext) []roster.CellResponse {
	out := make([]roster.CellResponse, 0, len(cells))
	for _, c := range cells {
		cell := roster.CellResponse{
			Date:            c.Date.Format(time.DateOnly),
			Events:          c.Events,
			PrimaryKind:     c.PrimaryKind,
			PrimarySourceID: c.PrimarySourceID,
			Background:      c.PrimaryBackground,
			Label:           c.PrimaryLabel,
			Pattern:         c.PrimaryPattern,
			Overlays:        c.Overlays,
			IsWeekend:       c.IsWeekend,
			IsToday:         c.IsToday,
			Layered:         c.Layered,
		}
		if c.PrimaryBackground != "" {
			cell.TextColor = colorutil.ContrastText(c.PrimaryBackground, theme)
		}
		out = append(out, cell)
	}
	return out
}

// loadSnapshot fetches every collection for the window concurrently.
func (s *rosterServiceImpl) loadSnapshot(ctx context.Context, window timewindow.Window, filter roster.EmployeeFilter) ([]roster.Employee, roster.Records, error) {
	var (
		employees []roster.Employee
		records   roster.Records
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		employees, err = s.repos.Employees.List(gctx, filter)
		return wrapLoad("employees", err)
	})
	g.Go(func() (err error) {
		records.Leaves, err = s.repos.Leaves.ListOverlapping(gctx, window)
		return wrapLoad("leaves", err)
	})
	g.Go(func() (err error) {
		records.Reasons, err = s.repos.Leaves.ListReasons(gctx)
		return wrapLoad("leave reasons", err)
	})
	g.Go(func() (err error) {
		records.Compensations, err = s.repos.Compensations.ListOverlapping(gctx, window)
		return wrapLoad("compensations", err)
	})
	g.Go(func() (err error) {
		records.CourtFrees, err = s.repos.CourtFrees.ListOverlapping(gctx, window)
		return wrapLoad("court-free records", err)
	})
	g.Go(func() (err error) {
		records.ScheduleVersions, err = s.repos.Schedules.ListEffectiveBefore(gctx, window.End)
		return wrapLoad("schedule versions", err)
	})
	g.Go(func() (err error) {
		records.Indicators, err = s.repos.Indicators.List(gctx)
		return wrapLoad("day indicators", err)
	})

	if err := g.Wait(); err != nil {
		return nil, roster.Records{}, err
	}
	return employees, records, nil
}

func wrapLoad(what string, err error) error {
	if err != nil {
		return fmt.Errorf("load %s: %w", what, err)
	}
	return nil
}

// GetWindow implements roster.RosterService.
func (s *rosterServiceImpl) GetWindow(ctx context.Context, req roster.WindowRequest) (roster.WindowResponse, error) {
	if strings.TrimSpace(req.View) == "" {
		req.View = s.cfg.DefaultView
	}
	if err := req.Validate(); err != nil {
		return roster.WindowResponse{}, err
	}

	window, granularity, err := s.focus(req.Date, req.View)
	if err != nil {
		return roster.WindowResponse{}, err
	}

	predicate, _ := timewindow.SQLDateOverlap("start_date", "end_date", 1, window)
	resp := roster.WindowResponse{
		View:         string(granularity),
		Start:        window.Start.Format(time.RFC3339Nano),
		End:          window.End.Format(time.RFC3339Nano),
		ODataFilter:  timewindow.ODataFilter("StartDate", "EndDate", window),
		SQLPredicate: predicate,
	}
	for _, d := range window.Days() {
		resp.Days = append(resp.Days, d.Format(time.DateOnly))
	}
	return resp, nil
}

// GetContrast implements roster.RosterService.
func (s *rosterServiceImpl) GetContrast(ctx context.Context, req roster.ContrastRequest) (roster.ContrastResponse, error) {
	if err := req.Validate(); err != nil {
		return roster.ContrastResponse{}, err
	}

	theme := colorutil.ParseTheme(req.Theme)
	return roster.ContrastResponse{
		Hex:       req.Hex,
		Theme:     theme.Name(),
		Valid:     colorutil.IsValidHex(req.Hex),
		TextColor: colorutil.ContrastText(req.Hex, theme),
	}, nil
}
