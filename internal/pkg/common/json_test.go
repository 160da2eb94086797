package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSON(t *testing.T) {
	var body map[string]interface{}
	require.NoError(t, DecodeJSON(strings.NewReader(`{"ingredients":"tomato, cheese"}`), &body))
	assert.Equal(t, "tomato, cheese", body["ingredients"])
}

func TestDecodeJSON_ExtraData(t *testing.T) {
	var body map[string]interface{}
	err := DecodeJSON(strings.NewReader(`{"a":1} {"b":2}`), &body)
	assert.Error(t, err)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	var body map[string]interface{}
	assert.Error(t, DecodeJSON(strings.NewReader(`{"a":`), &body))
}
