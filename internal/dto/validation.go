package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations hooks custom rules into gin's binding validator.
// Called once at startup.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterStructValidation(milestoneDatesValidation, CreateMilestoneRequest{})
	v.RegisterStructValidation(milestoneUpdateDatesValidation, UpdateMilestoneRequest{})
}

// milestoneDatesValidation rejects a due date earlier than the start date.
func milestoneDatesValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(CreateMilestoneRequest)
	if req.StartDate != nil && req.DueDate != nil && req.DueDate.Before(*req.StartDate) {
		sl.ReportError(req.DueDate, "DueDate", "dueDate", "gtefield", "StartDate")
	}
}

func milestoneUpdateDatesValidation(sl validator.StructLevel) {
	req := sl.Current().Interface().(UpdateMilestoneRequest)
	if req.StartDate != nil && req.DueDate != nil && req.DueDate.Before(*req.StartDate) {
		sl.ReportError(req.DueDate, "DueDate", "dueDate", "gtefield", "StartDate")
	}
}
