package commerce

import (
	"encoding/json"
	"net/mail"
)

// Order is the order header as returned by the backend.
type Order struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Country  string `json:"country"`
	Status   string `json:"status"`
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
}

// UnmarshalJSON keeps only the bare address when the email carries a display name,
// so "Bob <bob@x.com>" is stored as "bob@x.com".
func (o *Order) UnmarshalJSON(b []byte) error {
	type plain Order
	var order plain
	if err := json.Unmarshal(b, &order); err != nil {
		return err
	}
	if addr, err := mail.ParseAddress(order.Email); err == nil {
		order.Email = addr.Address
	}
	*o = Order(order)
	return nil
}

// OrderItem is one line of an order. Quantity is 1 when the backend omits it.
type OrderItem struct {
	Name             string   `json:"name"`
	ImageURL         *string  `json:"image_url"`
	Price            float64  `json:"price"`
	Quantity         Quantity `json:"quantity"`
	ID               string   `json:"id"`
	OrderID          string   `json:"order_id"`
	ProductID        string   `json:"product_id"`
	ProductVariantID string   `json:"product_variant_id"`
}

const defaultOrderItemQuantity = 1

// UnmarshalJSON applies the quantity default before decoding.
func (i *OrderItem) UnmarshalJSON(b []byte) error {
	type plain OrderItem
	item := plain{Quantity: defaultOrderItemQuantity}
	if err := json.Unmarshal(b, &item); err != nil {
		return err
	}
	*i = OrderItem(item)
	return nil
}

// OrderData is an order together with the items it owns.
type OrderData struct {
	Order      Order       `json:"order"`
	OrderItems []OrderItem `json:"order_items"`
}

// OrderListData wraps the user's orders in backend order.
type OrderListData struct {
	Data []OrderData `json:"data"`
}

// MapOrderList validates raw (a JSON array of order-data objects) and decodes it.
// The output keeps the input order of orders and of each order's items.
func MapOrderList(raw json.RawMessage) (*OrderListData, error) {
	var orders []OrderData
	if err := decode(orderListSchema, raw, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []OrderData{}
	}
	return &OrderListData{Data: orders}, nil
}

