package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent_AllFields(t *testing.T) {
	body := []byte(`{"api_version":"1.0","event":{"id":"evt-1","type":"INITIAL_PURCHASE","store":"APP_STORE","country_code":"US","environment":"PRODUCTION","product_id":"pro_monthly","app_user_id":"user_1234567890"}}`)

	evt, err := ParseEvent(body)
	require.NoError(t, err)

	assert.Equal(t, Event{
		APIVersion:  "1.0",
		ID:          "evt-1",
		Type:        EventInitialPurchase,
		ProductID:   "pro_monthly",
		Store:       "APP_STORE",
		CountryCode: "US",
		Environment: "PRODUCTION",
		AppUserID:   "user_1234567890",
	}, evt)
}

func TestParseEvent_Defaults(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty event", body: `{"event":{}}`},
		{name: "null fields", body: `{"event":{"type":null,"product_id":null,"store":null,"country_code":null,"environment":null,"app_user_id":null}}`},
		{name: "empty strings", body: `{"event":{"type":"","product_id":"","store":"","country_code":"","environment":"","app_user_id":""}}`},
		{name: "blank strings", body: `{"event":{"type":" ","store":"\t"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := ParseEvent([]byte(tt.body))
			require.NoError(t, err)

			assert.Empty(t, evt.ID)
			for _, v := range []string{evt.Type, evt.ProductID, evt.Store, evt.CountryCode, evt.Environment, evt.AppUserID} {
				assert.Equal(t, NotAvailable, v)
			}
		})
	}
}

func TestParseEvent_NonStringScalars(t *testing.T) {
	evt, err := ParseEvent([]byte(`{"event":{"type":"RENEWAL","app_user_id":12345,"store":true}}`))
	require.NoError(t, err)

	assert.Equal(t, "12345", evt.AppUserID)
	assert.Equal(t, "true", evt.Store)
	assert.Equal(t, NotAvailable, evt.ProductID)
}

func TestParseEvent_APIVersion(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string", body: `{"api_version":"1.0","event":{}}`, want: "1.0"},
		{name: "number", body: `{"api_version":1,"event":{}}`, want: "1"},
		{name: "absent", body: `{"event":{}}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			evt, err := ParseEvent([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, evt.APIVersion)
		})
	}
}

func TestParseEvent_InvalidJSON(t *testing.T) {
	for _, body := range []string{"not json", "", `{"event":`, `{"event":{}}}`} {
		_, err := ParseEvent([]byte(body))
		assert.ErrorIs(t, err, ErrInvalidJSON, "body %q", body)
	}
}

func TestParseEvent_MissingEvent(t *testing.T) {
	for _, body := range []string{`{}`, `{"event":null}`, `{"event":"x"}`, `{"event":[1,2]}`, `[]`, `"event"`, `null`, `42`} {
		_, err := ParseEvent([]byte(body))
		assert.ErrorIs(t, err, ErrMissingEvent, "body %q", body)
	}
}
