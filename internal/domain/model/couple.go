package model

// Couple pairs exactly two participants. User1ID is always "participant 1"
// when results are calculated, whichever partner triggered the calculation.
type Couple struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	User1ID string `gorm:"column:user1_id;size:64;not null;index" json:"user1_id"`
	User2ID string `gorm:"column:user2_id;size:64;not null;index" json:"user2_id"`
}

// TableName specifies the table name for GORM
func (Couple) TableName() string {
	return "couples"
}

// Has reports whether userID is one of the two partners.
func (c *Couple) Has(userID string) bool {
	return userID != "" && (c.User1ID == userID || c.User2ID == userID)
}

// PartnerOf returns the other partner's id, or "" if userID is not in the couple.
func (c *Couple) PartnerOf(userID string) string {
	switch userID {
	case c.User1ID:
		return c.User2ID
	case c.User2ID:
		return c.User1ID
	default:
		return ""
	}
}
