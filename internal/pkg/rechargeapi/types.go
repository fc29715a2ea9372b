package rechargeapi

import (
	"encoding/json"
	"fmt"

	"github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"
)

// Outcome classifies how a list fetch ended.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEmpty
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// ListResult is the typed result of a list fetch. Err is set only when
// Outcome is OutcomeFailed.
type ListResult struct {
	Outcome Outcome
	Records []recharge.Record
	Err     error
}

func listResult(records []recharge.Record, err error) ListResult {
	switch {
	case err != nil:
		return ListResult{Outcome: OutcomeFailed, Err: err}
	case len(records) == 0:
		return ListResult{Outcome: OutcomeEmpty, Records: []recharge.Record{}}
	default:
		return ListResult{Outcome: OutcomeOK, Records: records}
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type plansResponse struct {
	envelope
	Plans []recharge.Record `json:"plans"`
}

type historyResponse struct {
	envelope
	History []recharge.Record `json:"history"`
}

// RechargeRequest is the body of POST /api/recharge.
type RechargeRequest struct {
	PhoneNumber string  `json:"phoneNumber"`
	Operator    string  `json:"operator"`
	PlanID      string  `json:"planId,omitempty"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Type        string  `json:"type"`
}

// RechargeResponse is the reply of POST /api/recharge.
type RechargeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// User is the identity the login endpoint returns.
type User struct {
	ID      ID     `json:"id"`
	MongoID ID     `json:"_id"`
	Name    string `json:"name"`
	Phone   ID     `json:"phone"`
}

// Identity returns id, falling back to _id.
func (u User) Identity() string {
	if u.ID != "" {
		return string(u.ID)
	}
	return string(u.MongoID)
}

// ID accepts identifiers sent either as JSON strings or numbers.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*id = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// LoginResponse is the reply of POST /api/auth/login.
type LoginResponse struct {
	envelope
	Token string `json:"token"`
	User  User   `json:"user"`
}
