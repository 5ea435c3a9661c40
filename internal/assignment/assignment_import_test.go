package assignment_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-metallurg/internal/assignment"
	"go-metallurg/internal/productionplan"
	"go-metallurg/internal/techcard"
	"go-metallurg/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeUsers map[string]*user.User

func (f fakeUsers) FindByUsername(_ context.Context, username string) (*user.User, error) {
	if u, ok := f[username]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCards map[string]*techcard.TechCard

func (f fakeCards) FindByCustomerOrder(_ context.Context, customer, order string) (*techcard.TechCard, error) {
	if c, ok := f[strings.ToLower(customer+"/"+order)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePlans map[string]*productionplan.ProductionPlan

func (f fakePlans) FindByCustomerOrder(_ context.Context, customer, order string) (*productionplan.ProductionPlan, error) {
	if p, ok := f[strings.ToLower(customer+"/"+order)]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCreator struct {
	created []assignment.Assignment
	failFor string
}

func (f *fakeCreator) Create(_ context.Context, a *assignment.Assignment) error {
	if f.failFor != "" && a.MachineNumber == f.failFor {
		return errors.New("insert failed")
	}
	f.created = append(f.created, *a)
	return nil
}

var ivanov = &user.User{ID: uuid.New(), Username: "ivanov", FirstName: "Иван", LastName: "Иванов", Role: user.RoleEmployee}

func row(n int, login, machine string) assignment.ImportRow {
	return assignment.ImportRow{
		Row:             n,
		Customer:        "Уралмаш",
		OrderName:       "З-101",
		ShiftDate:       "2026-10-14",
		ShiftType:       "day",
		OperatorLogin:   login,
		PlannedQuantity: "40",
		MachineNumber:   machine,
	}
}

func TestImporter_MixedRows(t *testing.T) {
	creator := &fakeCreator{}
	im := assignment.NewImporter(fakeUsers{"ivanov": ivanov}, fakeCards{}, fakePlans{}, creator)

	res := im.Import(context.Background(), []assignment.ImportRow{
		row(1, "ivanov", "CNC-3"),
		row(2, "nobody", "CNC-4"),
		row(3, "ivanov", "CNC-3"),
	})

	assert.Equal(t, assignment.ImportSummary{Total: 3, Created: 1, Errors: 1, Skipped: 1}, res.Summary)
	assert.Equal(t, 2, res.Details.Errors[0].Row)
	assert.Contains(t, res.Details.Errors[0].Error, "operator not found")
	assert.Equal(t, 3, res.Details.Skipped[0].Row)
	assert.Equal(t, "duplicate of row 1", res.Details.Skipped[0].Reason)

	assert.Equal(t, 1, res.Details.Success[0].Row)
	assert.Equal(t, "Иван Иванов", res.Details.Success[0].Operator)
	assert.Equal(t, "CNC-3", res.Details.Success[0].Machine)
	assert.Equal(t, creator.created[0].ID.String(), res.Details.Success[0].AssignmentID)
}

func TestImporter_RowValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *assignment.ImportRow)
		want   string
	}{
		{"missing order", func(r *assignment.ImportRow) { r.OrderName = "" }, "customer and order name are required"},
		{"bad date", func(r *assignment.ImportRow) { r.ShiftDate = "someday" }, "shift date"},
		{"bad shift", func(r *assignment.ImportRow) { r.ShiftType = "evening" }, "shift type"},
		{"zero quantity", func(r *assignment.ImportRow) { r.PlannedQuantity = "0" }, "positive integer"},
		{"fractional quantity", func(r *assignment.ImportRow) { r.PlannedQuantity = "2.5" }, "positive integer"},
		{"missing machine", func(r *assignment.ImportRow) { r.MachineNumber = " " }, "machine number"},
		{"missing login", func(r *assignment.ImportRow) { r.OperatorLogin = "" }, "operator login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := &fakeCreator{}
			im := assignment.NewImporter(fakeUsers{"ivanov": ivanov}, fakeCards{}, fakePlans{}, creator)
			r := row(1, "ivanov", "CNC-1")
			tt.mutate(&r)

			res := im.Import(context.Background(), []assignment.ImportRow{r})

			assert.Equal(t, 1, res.Summary.Errors)
			assert.Contains(t, res.Details.Errors[0].Error, tt.want)
			assert.Empty(t, creator.created)
		})
	}
}

func TestImporter_NormalizesAndLinks(t *testing.T) {
	card := &techcard.TechCard{ID: uuid.New()}
	plan := &productionplan.ProductionPlan{ID: uuid.New()}
	creator := &fakeCreator{}
	im := assignment.NewImporter(
		fakeUsers{"ivanov": ivanov},
		fakeCards{"уралмаш/з-101": card},
		fakePlans{"уралмаш/з-101": plan},
		creator,
	)

	r := row(1, "ivanov", "CNC-7")
	r.ShiftType = "Ночь"
	r.ShiftDate = "14.10.2026"
	r.PlannedQuantity = "120.0"

	res := im.Import(context.Background(), []assignment.ImportRow{r})

	assert.Equal(t, 1, res.Summary.Created)
	got := creator.created[0]
	assert.Equal(t, assignment.ShiftNight, got.ShiftType)
	assert.Equal(t, "2026-10-14", got.ShiftDate.Format("2006-01-02"))
	assert.Equal(t, 120, got.PlannedQuantity)
	assert.Equal(t, assignment.StatusAssigned, got.Status)
	assert.Equal(t, card.ID, *got.TechCardID)
	assert.Equal(t, plan.ID, *got.ProductionPlanID)
}

func TestImporter_SaveFailureDoesNotStopImport(t *testing.T) {
	creator := &fakeCreator{failFor: "CNC-1"}
	im := assignment.NewImporter(fakeUsers{"ivanov": ivanov}, fakeCards{}, fakePlans{}, creator)

	res := im.Import(context.Background(), []assignment.ImportRow{
		row(1, "ivanov", "CNC-1"),
		row(2, "ivanov", "CNC-1"),
		row(3, "ivanov", "CNC-2"),
	})

	assert.Equal(t, assignment.ImportSummary{Total: 3, Created: 1, Errors: 2, Skipped: 0}, res.Summary)
	assert.Equal(t, 3, res.Details.Success[0].Row)
}
