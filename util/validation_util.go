// api/util/validation_util.go

package util

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spop-ops/commander/api/model"
)

type ValidationUtil struct {
	validate *validator.Validate
}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{validate: validator.New()}
}

func (v *ValidationUtil) ValidateOfficer(officer *model.Officer) error {
	if officer.Name == "" {
		return fmt.Errorf("officer name cannot be empty")
	}
	if officer.Status != "" && !officer.Status.Valid() {
		return fmt.Errorf("invalid officer status: %s", officer.Status)
	}
	return nil
}

func (v *ValidationUtil) ValidateTask(task *model.Task) error {
	if task.Title == "" {
		return fmt.Errorf("task title cannot be empty")
	}
	if task.AssignedToID == 0 {
		return fmt.Errorf("task must be assigned to an officer")
	}
	if task.Priority != "" && !task.Priority.Valid() {
		return fmt.Errorf("invalid task priority: %s", task.Priority)
	}
	if task.Status != "" && !task.Status.Valid() {
		return fmt.Errorf("invalid task status: %s", task.Status)
	}
	if task.CompletionRate < 0 || task.CompletionRate > 100 {
		return fmt.Errorf("completion rate must be between 0 and 100")
	}
	return nil
}

func (v *ValidationUtil) ValidateOrder(order *model.Order) error {
	if order.Title == "" {
		return fmt.Errorf("order title cannot be empty")
	}
	if order.AssignedToID == 0 {
		return fmt.Errorf("order must be assigned to an officer")
	}
	if order.Priority != "" && !order.Priority.Valid() {
		return fmt.Errorf("invalid order priority: %s", order.Priority)
	}
	if order.Status != "" && !order.Status.Valid() {
		return fmt.Errorf("invalid order status: %s", order.Status)
	}
	return nil
}

func (v *ValidationUtil) ValidateCircular(circular *model.Circular) error {
	if circular.Title == "" {
		return fmt.Errorf("circular title cannot be empty")
	}
	if circular.CircularNumber == "" {
		return fmt.Errorf("circular number cannot be empty")
	}
	if circular.Classification != "" && !circular.Classification.Valid() {
		return fmt.Errorf("invalid classification: %s", circular.Classification)
	}
	if circular.ExpiryDate.IsZero() {
		return fmt.Errorf("circular expiry date is required")
	}
	return nil
}

func (v *ValidationUtil) ValidateReport(report *model.Report) error {
	if report.Title == "" {
		return fmt.Errorf("report title cannot be empty")
	}
	if report.OfficerID == 0 {
		return fmt.Errorf("report must reference an officer")
	}
	if report.Status != "" && !report.Status.Valid() {
		return fmt.Errorf("invalid report status: %s", report.Status)
	}
	return nil
}

func (v *ValidationUtil) ValidateWeeklyPlan(plan *model.WeeklyPlan) error {
	if !plan.PlanType.Valid() {
		return fmt.Errorf("invalid plan type: %s", plan.PlanType)
	}
	if plan.WeekStartDate.IsZero() || plan.WeekEndDate.IsZero() {
		return fmt.Errorf("week start and end dates are required")
	}
	if plan.WeekEndDate.Before(plan.WeekStartDate) {
		return fmt.Errorf("week end date cannot precede the start date")
	}
	return nil
}

// ValidateStruct runs tag-based validation for request DTOs carrying
// `validate` tags.
func (v *ValidationUtil) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}
