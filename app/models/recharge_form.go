package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"
	"github.com/ManuelReschke/RechargeFox/internal/pkg/rechargeapi"
)

const RechargeStatusSuccess = "SUCCESS"

// RechargeForm is the purchase form posted from the plans view.
type RechargeForm struct {
	PhoneNumber string  `form:"phone_number" validate:"required,numeric,min=10,max=15"`
	PlanID      string  `form:"plan_id" validate:"max=64"`
	Amount      float64 `form:"amount" validate:"gt=0"`
	Operator    string  `form:"operator" validate:"max=64"`
	Category    string  `form:"category" validate:"required,max=64"`
	Tab         string  `form:"tab"`
}

var validate = validator.New()

func (f *RechargeForm) Validate() error {
	f.PhoneNumber = strings.TrimSpace(f.PhoneNumber)
	f.Operator = strings.TrimSpace(f.Operator)
	if f.Operator == "" {
		f.Operator = recharge.DefaultOperator
	}
	return validate.Struct(f)
}

// Request builds the API payload for the form.
func (f *RechargeForm) Request() rechargeapi.RechargeRequest {
	return rechargeapi.RechargeRequest{
		PhoneNumber: f.PhoneNumber,
		Operator:    f.Operator,
		PlanID:      f.PlanID,
		Amount:      f.Amount,
		Status:      RechargeStatusSuccess,
		Type:        f.Category,
	}
}

// LoginForm is posted from the login view.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email,max=200"`
	Password string `form:"password" validate:"required,max=200"`
}

func (f *LoginForm) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return validate.Struct(f)
}

var fieldLabels = map[string]string{
	"PhoneNumber": "Phone number",
	"PlanID":      "Plan",
	"Amount":      "Amount",
	"Operator":    "Operator",
	"Category":    "Category",
	"Email":       "Email",
	"Password":    "Password",
}

// ValidationMessage turns a validation error into a sentence for the user.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid input"
	}

	fe := verrs[0]
	label := fieldLabels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "numeric":
		return fmt.Sprintf("%s must contain digits only", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", label)
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}
