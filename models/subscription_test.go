package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionID_StringAndNumber(t *testing.T) {
	var subs []Subscription
	err := json.Unmarshal([]byte(`[{"id":"1","title":"Tech"},{"id":7,"title":"Num"},{"title":"NoID"}]`), &subs)

	require.NoError(t, err)
	assert.Equal(t, SubscriptionID("1"), subs[0].ID)
	assert.Equal(t, SubscriptionID("7"), subs[1].ID)
	assert.Equal(t, SubscriptionID(""), subs[2].ID)
}

func TestSubscriptionID_RejectsOtherTypes(t *testing.T) {
	var sub Subscription
	err := json.Unmarshal([]byte(`{"id":true,"title":"Bool"}`), &sub)

	assert.ErrorContains(t, err, "subscription id must be a string or number")
}
