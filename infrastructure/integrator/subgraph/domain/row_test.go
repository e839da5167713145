package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyResult_Unmarshal(t *testing.T) {
	payload := `{
		"m0": [{"active": 12, "timestamp": "1577836800"}],
		"m1": [{"gav": "1500000000000000000"}],
		"m2": [],
		"m3": [{"active": null}]
	}`

	var result MonthlyResult
	require.NoError(t, json.Unmarshal([]byte(payload), &result))

	assert.Equal(t, Numeral{Value: "12", Valid: true}, result["m0"][0].Active)
	assert.Equal(t, Numeral{Value: "1577836800", Valid: true}, result["m0"][0].Timestamp)
	assert.Equal(t, Numeral{Value: "1500000000000000000", Valid: true}, result["m1"][0].Gav)
	assert.False(t, result["m1"][0].Active.Valid)
	assert.Empty(t, result["m2"])
	assert.False(t, result["m3"][0].Active.Valid)
}
