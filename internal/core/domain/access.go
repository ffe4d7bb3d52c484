package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccessTier is the level of access a user holds on a single account.
// Tiers are totally ordered; a higher tier implies every capability of the lower ones.
type AccessTier int

const (
	TierNone      AccessTier = iota // no grant
	TierView                        // see the account and its balance
	TierReadOnly                    // additionally read transactions
	TierReadWrite                   // additionally annotate (money events, receipts)
	TierPayments                    // additionally record transactions
	TierAdmin                       // additionally manage grants
)

var tierNames = [...]string{
	TierNone:      "NONE",
	TierView:      "VIEW",
	TierReadOnly:  "READONLY",
	TierReadWrite: "READWRITE",
	TierPayments:  "PAYMENTS",
	TierAdmin:     "ADMIN",
}

// Valid reports whether t is one of the defined tiers.
func (t AccessTier) Valid() bool {
	return t >= TierNone && t <= TierAdmin
}

// Allows reports whether holding t satisfies a requirement of required.
func (t AccessTier) Allows(required AccessTier) bool {
	return t >= required
}

func (t AccessTier) String() string {
	if !t.Valid() {
		return fmt.Sprintf("AccessTier(%d)", int(t))
	}
	return tierNames[t]
}

func (t AccessTier) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid access tier %d", int(t))
	}
	return []byte(tierNames[t]), nil
}

func (t *AccessTier) UnmarshalText(text []byte) error {
	parsed, err := ParseAccessTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseAccessTier parses a tier name such as "READWRITE" (case-insensitive).
func ParseAccessTier(s string) (AccessTier, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return AccessTier(i), nil
		}
	}
	return TierNone, fmt.Errorf("unknown access tier %q", s)
}

// AccountAccess is a grant of one tier on one account to one user.
// (AccountID, UserID) is unique.
type AccountAccess struct {
	AccountID string     `json:"accountID"`
	UserID    string     `json:"userID"`
	Tier      AccessTier `json:"tier"`
	GrantedBy string     `json:"grantedBy"`
	GrantedAt time.Time  `json:"grantedAt"`
}
