package assignment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go-metallurg/internal/productionplan"
	"go-metallurg/internal/shared/contextutil"
	"go-metallurg/internal/shared/dateutil"
	"go-metallurg/internal/techcard"
	"go-metallurg/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OperatorFinder interface {
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

type TechCardFinder interface {
	FindByCustomerOrder(ctx context.Context, customer, order string) (*techcard.TechCard, error)
}

type PlanFinder interface {
	FindByCustomerOrder(ctx context.Context, customer, order string) (*productionplan.ProductionPlan, error)
}

type Creator interface {
	Create(ctx context.Context, a *Assignment) error
}

// Importer turns sheet rows into assignments. Rows are handled one by one and
// a failing row never stops the rest.
type Importer struct {
	operators OperatorFinder
	cards     TechCardFinder
	plans     PlanFinder
	creator   Creator
	logger    *zap.Logger
}

func NewImporter(operators OperatorFinder, cards TechCardFinder, plans PlanFinder, creator Creator, logger ...*zap.Logger) *Importer {
	l := zap.L().Named("assignment.importer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.importer")
	}
	return &Importer{
		operators: operators,
		cards:     cards,
		plans:     plans,
		creator:   creator,
		logger:    l,
	}
}

var shiftAliases = map[string]string{
	"day":     ShiftDay,
	"д":       ShiftDay,
	"день":    ShiftDay,
	"дневная": ShiftDay,
	"night":   ShiftNight,
	"н":       ShiftNight,
	"ночь":    ShiftNight,
	"ночная":  ShiftNight,
}

func normalizeShift(raw string) (string, bool) {
	shift, ok := shiftAliases[strings.ToLower(strings.TrimSpace(raw))]
	return shift, ok
}

// parseQuantity accepts whole numbers, including "40.0" as spreadsheets
// store them.
func parseQuantity(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, n > 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

type rowKey struct {
	operator uuid.UUID
	date     string
	machine  string
}

func (im *Importer) Import(ctx context.Context, rows []ImportRow) ImportResult {
	res := ImportResult{
		Summary: ImportSummary{Total: len(rows)},
		Details: ImportDetails{
			Success: make([]ImportSuccess, 0),
			Errors:  make([]ImportError, 0),
			Skipped: make([]ImportSkip, 0),
		},
	}
	seen := make(map[rowKey]int, len(rows))

	fail := func(row int, msg string) {
		res.Details.Errors = append(res.Details.Errors, ImportError{Row: row, Error: msg})
	}

	for _, row := range rows {
		operator, err := im.lookupOperator(ctx, row.OperatorLogin)
		if err != nil {
			fail(row.Row, err.Error())
			continue
		}

		a, err := im.build(row, operator.ID)
		if err != nil {
			fail(row.Row, err.Error())
			continue
		}

		key := rowKey{operator: a.OperatorID, date: a.ShiftDate.Format(dateutil.Layout), machine: strings.ToLower(a.MachineNumber)}
		if first, dup := seen[key]; dup {
			res.Details.Skipped = append(res.Details.Skipped, ImportSkip{
				Row:    row.Row,
				Reason: fmt.Sprintf("duplicate of row %d", first),
			})
			continue
		}

		im.link(ctx, row, a)

		if err := im.creator.Create(ctx, a); err != nil {
			contextutil.GetLogger(ctx, im.logger).Warn("import row not saved",
				zap.Int("row", row.Row),
				zap.Error(err),
			)
			fail(row.Row, "failed to save assignment")
			continue
		}
		seen[key] = row.Row

		res.Details.Success = append(res.Details.Success, ImportSuccess{
			Row:          row.Row,
			Operator:     operator.FullName(),
			Machine:      a.MachineNumber,
			AssignmentID: a.ID.String(),
		})
	}

	res.Summary.Created = len(res.Details.Success)
	res.Summary.Errors = len(res.Details.Errors)
	res.Summary.Skipped = len(res.Details.Skipped)
	return res
}

func (im *Importer) lookupOperator(ctx context.Context, login string) (*user.User, error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return nil, errors.New("operator login is required")
	}

	operator, err := im.operators.FindByUsername(ctx, login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("operator not found: %s", login)
	}
	if err != nil {
		contextutil.GetLogger(ctx, im.logger).Warn("operator lookup failed", zap.String("login", login), zap.Error(err))
		return nil, errors.New("operator lookup failed")
	}
	return operator, nil
}

func (im *Importer) build(row ImportRow, operatorID uuid.UUID) (*Assignment, error) {
	customer := strings.TrimSpace(row.Customer)
	order := strings.TrimSpace(row.OrderName)
	if customer == "" || order == "" {
		return nil, errors.New("customer and order name are required")
	}

	date, err := dateutil.Parse(row.ShiftDate)
	if err != nil || date == nil {
		return nil, errors.New("shift date is missing or invalid")
	}

	shift, ok := normalizeShift(row.ShiftType)
	if !ok {
		return nil, errors.New("shift type must be day or night")
	}

	quantity, ok := parseQuantity(row.PlannedQuantity)
	if !ok {
		return nil, errors.New("planned quantity must be a positive integer")
	}

	machine := strings.TrimSpace(row.MachineNumber)
	if machine == "" {
		return nil, errors.New("machine number is required")
	}

	return &Assignment{
		ID:              uuid.New(),
		OperatorID:      operatorID,
		ShiftDate:       *date,
		ShiftType:       shift,
		TaskDescription: fmt.Sprintf("%s / %s", customer, order),
		MachineNumber:   machine,
		PlannedQuantity: quantity,
		Status:          StatusAssigned,
	}, nil
}

// link attaches the tech card and production plan of the row's order when
// they exist. Lookup failures leave the assignment unlinked.
func (im *Importer) link(ctx context.Context, row ImportRow, a *Assignment) {
	l := contextutil.GetLogger(ctx, im.logger)

	card, err := im.cards.FindByCustomerOrder(ctx, row.Customer, row.OrderName)
	switch {
	case err == nil:
		a.TechCardID = &card.ID
	case !errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn("tech card lookup failed", zap.Int("row", row.Row), zap.Error(err))
	}

	plan, err := im.plans.FindByCustomerOrder(ctx, row.Customer, row.OrderName)
	switch {
	case err == nil:
		a.ProductionPlanID = &plan.ID
		if a.TechCardID == nil {
			a.TechCardID = plan.TechCardID
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		l.Warn("production plan lookup failed", zap.Int("row", row.Row), zap.Error(err))
	}
}

