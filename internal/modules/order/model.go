package order

import "time"

// Status is the lifecycle state of an order.
type Status string

const (
	StatusCreated   Status = "CREATED"
	StatusAccepted  Status = "ACCEPTED"
	StatusPickedUp  Status = "PICKED_UP"
	StatusDelivered Status = "DELIVERED"
)

// eventName is how a transition target reads in error messages.
// DELIVERED is terminal; nothing maps out of it.
var eventName = map[Status]string{
	StatusAccepted:  "accept",
	StatusPickedUp:  "pickup",
	StatusDelivered: "deliver",
}

// Item is one line of an order. Price is a snapshot captured when the
// order was placed; later product price changes never alter it.
type Item struct {
	ProductID string  `json:"productId"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
}

// Order is the ledger record of a placed order. DriverID is empty only
// in CREATED; once set on accept it never changes.
type Order struct {
	ID         string    `json:"id"`
	ConsumerID string    `json:"consumerId"`
	StoreID    string    `json:"storeId"`
	Items      []Item    `json:"items"`
	Address    string    `json:"address"`
	Payment    string    `json:"payment"`
	Status     Status    `json:"status"`
	DriverID   string    `json:"driverId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ItemRequest is one cart line of a place-order request.
type ItemRequest struct {
	ProductID string `json:"productId"`
	Qty       int    `json:"qty"`
}

// PlaceOrderRequest is the payload for creating a new order.
type PlaceOrderRequest struct {
	ConsumerID string        `json:"consumerId"`
	StoreID    string        `json:"storeId"`
	Items      []ItemRequest `json:"items"`
	Address    string        `json:"address"`
	Payment    string        `json:"payment"`
}
