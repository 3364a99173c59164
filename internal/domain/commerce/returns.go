package commerce

import "encoding/json"

// ReturnRequestCore holds the fields shared by outbound and stored return requests.
type ReturnRequestCore struct {
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	OrderID string `json:"order_id"`
}

// ReturnRequestCreate is the return request a user submits.
type ReturnRequestCreate struct {
	ReturnRequestCore
}

// ReturnRequest is a stored return request; ID and UserID are assigned by the backend.
type ReturnRequest struct {
	ReturnRequestCore
	ID     string `json:"id"`
	UserID string `json:"user_id"`
}

// ReturnItemCore holds the fields shared by outbound and stored return items.
type ReturnItemCore struct {
	Quantity    Quantity `json:"quantity"`
	Reason      *string  `json:"reason"`
	OrderItemID string   `json:"order_item_id"`
}

// ReturnItemCreate is a return item as submitted.
type ReturnItemCreate struct {
	ReturnItemCore
}

// ReturnItem is a stored return item.
type ReturnItem struct {
	ReturnItemCore
	ID       string `json:"id"`
	ReturnID string `json:"return_id"`
}

// ReturnSubmission is the POST body for a new return.
type ReturnSubmission struct {
	ReturnRequest ReturnRequestCreate `json:"return_request"`
	Items         []ReturnItemCreate  `json:"items"`
}

// ReturnRecord is a return as the backend stores it.
type ReturnRecord struct {
	ReturnRequest ReturnRequest `json:"return_request"`
	Items         []ReturnItem  `json:"items"`
}

// MapReturnList validates and decodes a JSON array of return records.
func MapReturnList(raw json.RawMessage) ([]ReturnRecord, error) {
	var records []ReturnRecord
	if err := decode(returnListSchema, raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []ReturnRecord{}
	}
	return records, nil
}

// MapReturnRecord validates and decodes a single return record.
func MapReturnRecord(raw json.RawMessage) (*ReturnRecord, error) {
	var record ReturnRecord
	if err := decode(returnRecordSchema, raw, &record); err != nil {
		return nil, err
	}
	return &record, nil
}
