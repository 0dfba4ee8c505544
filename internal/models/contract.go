package models

import (
	"fmt"
	"time"
)

type ContractStatus string

const (
	ContractStatusPending   ContractStatus = "v"
	ContractStatusActive    ContractStatus = "l"
	ContractStatusCompleted ContractStatus = "f"
)

var contractStatusLabels = map[ContractStatus]string{
	ContractStatusPending:   "Pending",
	ContractStatusActive:    "Active",
	ContractStatusCompleted: "Completed",
}

// Label returns the display name of the status, or the raw code if unknown.
func (s ContractStatus) Label() string {
	if l, ok := contractStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

func (s ContractStatus) Valid() bool {
	_, ok := contractStatusLabels[s]
	return ok
}

// ParseContractStatus accepts only the short codes v, l and f.
func ParseContractStatus(code string) (ContractStatus, error) {
	s := ContractStatus(code)
	if !s.Valid() {
		return "", fmt.Errorf("unknown contract status %q", code)
	}
	return s, nil
}

// Contract binds an agent, a client and an apartment. Transitions between
// statuses are not restricted, and EndDate is not checked against StartDate.
type Contract struct {
	ContractID  int64          `json:"contract_id"`
	AgentID     int64          `json:"agent_id"`
	ClientID    int64          `json:"client_id"`
	ApartmentID int64          `json:"apartment_id"`
	Status      ContractStatus `json:"status"`
	StartDate   *time.Time     `json:"start_date,omitempty"`
	EndDate     *time.Time     `json:"end_date,omitempty"`
}
