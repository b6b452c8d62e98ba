package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

type Status string

const (
	New         Status = "NEW"
	OnShipment  Status = "ON_SHIPMENT"
	OnPackaging Status = "ON_PACKAGING"
	Packaged    Status = "PACKAGED"
	OnDelivery  Status = "ON_DELIVERY"
	Delivered   Status = "DELIVERED"

	// side states kept from older flows
	CodeSent    Status = "code_sent"
	Completed   Status = "completed"
	Transferred Status = "transferred"

	// legacy seed markers, normalised on input
	Invoice   Status = "invoice"
	Assembled Status = "assembled"
)

// Pipeline is the primary fulfillment sequence in order.
var Pipeline = []Status{New, OnShipment, OnPackaging, Packaged, OnDelivery, Delivered}

// Valid reports whether s belongs to the closed status set.
func (s Status) Valid() bool {
	switch s {
	case New, OnShipment, OnPackaging, Packaged, OnDelivery, Delivered,
		CodeSent, Completed, Transferred, Invoice, Assembled:
		return true
	}
	return false
}

// Normalize maps legacy markers onto pipeline statuses.
func (s Status) Normalize() Status {
	switch Status(strings.TrimSpace(string(s))) {
	case Invoice:
		return OnPackaging
	case Assembled:
		return Packaged
	case "new":
		return New
	}
	return s
}

// Rank is the position in Pipeline; side states rank with the stage they follow.
func (s Status) Rank() int {
	switch s.Normalize() {
	case CodeSent:
		return 3
	case Transferred:
		return 4
	case Completed:
		return 5
	}
	for i, p := range Pipeline {
		if p == s.Normalize() {
			return i
		}
	}
	return -1
}

func (s Status) Terminal() bool {
	return s == Delivered || s == Completed || s == Transferred
}

type Tab string

const (
	TabCurrent   Tab = "current"
	TabArchive   Tab = "archive"
	TabPreOrders Tab = "pre-orders"
	TabReturned  Tab = "returned"
)

var Tabs = []Tab{TabCurrent, TabArchive, TabPreOrders, TabReturned}

func (t Tab) Valid() bool {
	switch t {
	case TabCurrent, TabArchive, TabPreOrders, TabReturned:
		return true
	}
	return false
}

const (
	DeliveryLocal          = "DELIVERY_LOCAL"
	DeliveryPickup         = "DELIVERY_PICKUP"
	DeliveryRegionalToDoor = "DELIVERY_REGIONAL_TODOOR"
	StateSignRequired      = "SIGN_REQUIRED"
)

type Address struct {
	StreetName       string  `json:"streetName"`
	StreetNumber     string  `json:"streetNumber"`
	Town             string  `json:"town"`
	District         *string `json:"district"`
	Building         *string `json:"building"`
	Apartment        *string `json:"apartment"`
	FormattedAddress string  `json:"formattedAddress"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
}

type Customer struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	CellPhone string  `json:"cellPhone"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
}

type KaspiDelivery struct {
	Waybill                         string  `json:"waybill,omitempty"`
	WaybillNumber                   string  `json:"waybillNumber,omitempty"`
	Express                         bool    `json:"express"`
	ReturnedToWarehouse             *bool   `json:"returnedToWarehouse"`
	CourierTransmissionDate         int64   `json:"courierTransmissionDate,omitempty"`
	CourierTransmissionPlanningDate int64   `json:"courierTransmissionPlanningDate,omitempty"`
	FirstMileCourier                *string `json:"firstMileCourier,omitempty"`
}

type OrderAttributes struct {
	Code                string         `json:"code"`
	TotalPrice          float64        `json:"totalPrice"`
	PaymentMode         string         `json:"paymentMode,omitempty"`
	CreationDate        int64          `json:"creationDate"`
	PlannedDeliveryDate int64          `json:"plannedDeliveryDate,omitempty"`
	DeliveryMode        string         `json:"deliveryMode"`
	IsKaspiDelivery     bool           `json:"isKaspiDelivery"`
	KaspiDelivery       *KaspiDelivery `json:"kaspiDelivery,omitempty"`
	PreOrder            bool           `json:"preOrder"`
	State               string         `json:"state"`
	Assembled           bool           `json:"assembled"`
	Status              string         `json:"status,omitempty"`
	CustomStatus        Status         `json:"customStatus,omitempty"`
	SignatureRequired   bool           `json:"signatureRequired"`
	DeliveryCost        float64        `json:"deliveryCost,omitempty"`
	Customer            *Customer      `json:"customer,omitempty"`
	DeliveryAddress     *Address       `json:"deliveryAddress,omitempty"`
}

type Product struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID         string           `json:"id"`
	Type       string           `json:"type,omitempty"`
	Attributes *OrderAttributes `json:"attributes"`
	Products   []Product        `json:"products,omitempty"`
}

// Waybill returns the backend-populated waybill link, if any.
func (o Order) Waybill() string {
	if o.Attributes == nil || o.Attributes.KaspiDelivery == nil {
		return ""
	}
	return o.Attributes.KaspiDelivery.Waybill
}

type StoreMeta struct {
	TotalElements int `json:"totalElements,omitempty"`
	TotalPages    int `json:"totalPages,omitempty"`
}

type Store struct {
	ID        string     `json:"id"`
	StoreName string     `json:"storeName"`
	Orders    []Order    `json:"orders,omitempty"`
	Error     string     `json:"error,omitempty"`
	Meta      *StoreMeta `json:"meta,omitempty"`
}

type TotalStats struct {
	TotalOrders    int            `json:"totalOrders"`
	TotalRevenue   float64        `json:"totalRevenue"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
}

type OrdersResponse struct {
	Stores     []Store    `json:"stores"`
	TotalStats TotalStats `json:"totalStats"`
}

// PushTimestamp keeps the externally issued marker opaque; the wire value may be a string or a number.
type PushTimestamp string

func (t *PushTimestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = PushTimestamp(s)
		return nil
	}
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*t = PushTimestamp(n.String())
	return nil
}

type OrderStatusUpdate struct {
	OrderID   string        `json:"orderId"`
	NewStatus Status        `json:"newStatus"`
	Timestamp PushTimestamp `json:"timestamp"`
}

type Comment struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt,omitempty"`
	UserID    string `json:"userId,omitempty"`
	UserName  string `json:"userName,omitempty"`
	IsRead    bool   `json:"isRead"`
}

type CommentEvent struct {
	OrderKaspiID string  `json:"orderKaspiId"`
	Comment      Comment `json:"comment"`
}

type Document struct {
	ContentType string
	Body        []byte
}

type User struct {
	ID              string   `json:"id"`
	Username        string   `json:"username"`
	Name            string   `json:"name"`
	Role            string   `json:"role,omitempty"`
	AllowedStatuses []string `json:"allowedStatuses"`
	AllowedCities   []string `json:"allowedCities,omitempty"`
	AllowedStores   []string `json:"allowedStores,omitempty"`
}

const RoleAdmin = "admin"

// Session holds the claims of the authenticated operator.
type Session struct {
	UserID          string
	Username        string
	Role            string
	AllowedStatuses []string
	AllowedStores   []string
	AllowedCities   []string
}

// CanViewStore reports whether storeName is visible; an empty allow-list means every store.
func (s Session) CanViewStore(storeName string) bool {
	if len(s.AllowedStores) == 0 {
		return true
	}
	for _, name := range s.AllowedStores {
		if name == storeName {
			return true
		}
	}
	return false
}
