package models

import "time"

// Gift-card modes.
const (
	GiftCardModeAmount  = "amount"
	GiftCardModeService = "service"
)

// GiftCardRequest is the gift-card issuance payload.
type GiftCardRequest struct {
	ToName       string   `json:"toName"`
	FromName     string   `json:"fromName"`
	Message      string   `json:"message,omitempty"`
	Mode         string   `json:"mode"`
	Amount       *float64 `json:"amount,omitempty"`
	ServiceName  string   `json:"serviceName,omitempty"`
	ServicePrice *float64 `json:"servicePrice,omitempty"`
	ValidTo      string   `json:"validTo,omitempty"`
}

// GiftCardDetails is the gift-card metadata stored with its discount code.
type GiftCardDetails struct {
	ToName      string `bson:"toName" json:"toName"`
	FromName    string `bson:"fromName" json:"fromName"`
	Message     string `bson:"message,omitempty" json:"message,omitempty"`
	Mode        string `bson:"mode" json:"mode"`
	ServiceName string `bson:"serviceName,omitempty" json:"serviceName,omitempty"`
}

// DiscountCode is a redeemable fixed-amount code record.
type DiscountCode struct {
	Code           string           `bson:"code" json:"code"`
	Type           string           `bson:"type" json:"type"`
	Amount         float64          `bson:"amount" json:"amount"`
	Description    string           `bson:"description" json:"description"`
	ValidFrom      time.Time        `bson:"validFrom" json:"validFrom"`
	ValidTo        time.Time        `bson:"validTo" json:"validTo"`
	MaxRedemptions int              `bson:"maxRedemptions" json:"maxRedemptions"`
	PerUserLimit   int              `bson:"perUserLimit" json:"perUserLimit"`
	Redemptions    int              `bson:"redemptions" json:"redemptions"`
	Active         bool             `bson:"active" json:"active"`
	GiftCard       *GiftCardDetails `bson:"giftCard,omitempty" json:"giftCard,omitempty"`
	CreatedAt      time.Time        `bson:"createdAt" json:"createdAt"`
}
