package domain

import (
	"fmt"
	"strings"
)

// OrderStatus doubles as the type of a status-change event. Stored and
// exchanged as the enum-name string.
type OrderStatus string

const (
	StatusCreated         OrderStatus = "Created"
	StatusPaymentReceived OrderStatus = "PaymentReceived"
	StatusInvoiced        OrderStatus = "Invoiced"
	StatusReturned        OrderStatus = "Returned"
	StatusCancelled       OrderStatus = "Cancelled"
)

// SourceChannel is the sales channel an order originated from.
type SourceChannel string

const (
	ChannelEcommerce  SourceChannel = "Ecommerce"
	ChannelCallCenter SourceChannel = "CallCenter"
	ChannelStore      SourceChannel = "Store"
	ChannelAffiliate  SourceChannel = "Affiliate"
)

var orderStatuses = map[string]OrderStatus{
	"created":         StatusCreated,
	"paymentreceived": StatusPaymentReceived,
	"invoiced":        StatusInvoiced,
	"returned":        StatusReturned,
	"cancelled":       StatusCancelled,
}

var sourceChannels = map[string]SourceChannel{
	"ecommerce":  ChannelEcommerce,
	"callcenter": ChannelCallCenter,
	"store":      ChannelStore,
	"affiliate":  ChannelAffiliate,
}

// ParseOrderStatus maps free text to a status, case-insensitively.
// Unknown values are rejected, never defaulted.
func ParseOrderStatus(s string) (OrderStatus, error) {
	if status, ok := orderStatuses[strings.ToLower(s)]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// ParseSourceChannel maps free text to a channel, case-insensitively.
// Unknown values are rejected, never defaulted.
func ParseSourceChannel(s string) (SourceChannel, error) {
	if ch, ok := sourceChannels[strings.ToLower(s)]; ok {
		return ch, nil
	}
	return "", fmt.Errorf("unknown source channel %q", s)
}

func (s OrderStatus) String() string   { return string(s) }
func (c SourceChannel) String() string { return string(c) }
