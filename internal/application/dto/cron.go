package dto

import (
	"encoding/json"
	"fmt"
	"math"

	"pillulu/internal/domain/evaluator"
)

// CronSecretBody is the optional JSON body of the cron endpoints.
type CronSecretBody struct {
	Secret *string  `json:"secret"`
	MedID  *LooseID `json:"med_id"`
}

// LooseID is an ID sent either as a JSON number or as a numeric string.
// Fractions are truncated.
type LooseID uint

func (id *LooseID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", b, err)
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f > math.MaxUint32 {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = LooseID(f)
	return nil
}

// Uint returns the ID as *uint, nil when absent.
func (id *LooseID) Uint() *uint {
	if id == nil {
		return nil
	}
	v := uint(*id)
	return &v
}

// SendRemindersResponse is the result of one evaluation run.
type SendRemindersResponse struct {
	Sent    int    `json:"sent"`
	Message string `json:"message"`
}

// DebugRemindersResponse explains, without side effects, what a run would do now.
type DebugRemindersResponse struct {
	ServerTimeUTC string                  `json:"server_time_utc"`
	NYTime        string                  `json:"ny_time"`
	NYHM          string                  `json:"ny_hm"`
	NYWeekday     string                  `json:"ny_weekday"`
	Schedules     []evaluator.Explanation `json:"schedules"`
	Hint          string                  `json:"hint"`
}

// DecrementStockResponse is the result of a manual dose decrement.
type DecrementStockResponse struct {
	OK         bool   `json:"ok"`
	StockCount *int   `json:"stock_count,omitempty"`
	Message    string `json:"message,omitempty"`
}
