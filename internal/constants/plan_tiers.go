package constants

import (
	"database/sql/driver"
	"fmt"
)

// PlanTier mirrors the users.plan_tier column
type PlanTier string

const (
	PlanFree    PlanTier = "free"
	PlanTrial   PlanTier = "trial"
	PlanBasic   PlanTier = "basic"
	PlanPremium PlanTier = "premium"
)

func (p PlanTier) String() string { return string(p) }

// IsPaid reports whether the tier expires and falls back to free.
func (p PlanTier) IsPaid() bool {
	return p == PlanTrial || p == PlanBasic || p == PlanPremium
}

func ParsePlanTier(s string) (PlanTier, error) {
	switch p := PlanTier(s); p {
	case PlanFree, PlanTrial, PlanBasic, PlanPremium:
		return p, nil
	default:
		return "", fmt.Errorf("unknown plan tier %q", s)
	}
}

/* ---------- DB adapters so sqlx (or database/sql) scans/values cleanly ---------- */

// Scan implements the sql.Scanner interface
func (p *PlanTier) Scan(src interface{}) error {
	if src == nil {
		*p = PlanFree
		return nil
	}
	switch v := src.(type) {
	case string:
		*p = PlanTier(v)
	case []byte:
		*p = PlanTier(v)
	default:
		return fmt.Errorf("PlanTier: cannot scan type %T", src)
	}
	return nil
}

// Value implements the driver.Valuer interface
func (p PlanTier) Value() (driver.Value, error) { return string(p), nil }
