package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldInput_UnmarshalJSON_PreservesNull(t *testing.T) {
	var in FieldInput
	require.NoError(t, json.Unmarshal([]byte(`null`), &in))

	assert.Nil(t, in.Raw())
	assert.True(t, in.IsClear())
}

func TestFieldInput_IsClear_EmptyString(t *testing.T) {
	var in FieldInput
	require.NoError(t, json.Unmarshal([]byte(`""`), &in))

	assert.True(t, in.IsClear())
}

func TestFieldInput_IsClear_ValueIsNotClear(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "string", body: `"hello"`},
		{name: "number", body: `12.5`},
		{name: "zero number", body: `0`},
		{name: "bool false", body: `false`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in FieldInput
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.False(t, in.IsClear())
		})
	}
}

func TestRecordData_AbsentKeyStaysAbsent(t *testing.T) {
	var req RecordRequest
	require.NoError(t, json.Unmarshal([]byte(`{"data": {"name": "Alpha", "price": null}}`), &req))

	name, ok := req.Data["name"]
	require.True(t, ok)
	assert.Equal(t, "Alpha", name.Raw())
	assert.False(t, name.IsClear())

	price, ok := req.Data["price"]
	require.True(t, ok, "explicit null must remain present in the map")
	assert.True(t, price.IsClear())

	_, ok = req.Data["stock"]
	assert.False(t, ok, "a field never mentioned must not appear")
}

func TestFieldInput_MarshalJSON_RoundTrip(t *testing.T) {
	in := NewFieldInput("hello")
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `"hello"`, string(b))
}
