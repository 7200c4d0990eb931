package models

import (
	"encoding/json"
	"fmt"
)

type Subscription struct {
	ID    SubscriptionID `json:"id"`
	Title string         `json:"title"`
	Email string         `json:"email"`

	// DecodeErr is set when the API record could not be decoded. The
	// other fields hold whatever was decoded before the failure.
	DecodeErr error `json:"-"`
}

// SubscriptionID accepts both JSON strings and numbers.
type SubscriptionID string

func (id *SubscriptionID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = SubscriptionID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("subscription id must be a string or number, got %s", data)
	}
	*id = SubscriptionID(n.String())
	return nil
}
