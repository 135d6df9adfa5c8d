package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	var in AdInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "Casa",
		"price": "1500.50",
		"bedrooms": 2,
		"bathrooms": null,
		"rules": "not a list",
		"images": ["a.jpg", "b.jpg"]
	}`), &in))

	assert.Equal(t, some("Casa"), in.Title)
	assert.Equal(t, some(1500.5), in.Price)
	assert.Equal(t, some(2), in.Bedrooms)
	assert.Equal(t, null[int](), in.Bathrooms)
	assert.True(t, in.Rules.Set)
	assert.False(t, in.Rules.Valid)
	assert.Equal(t, []string{}, listOrEmpty(in.Rules))
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, listOrEmpty(in.Images))

	assert.False(t, in.Description.Set)
	assert.False(t, in.Amenities.Set)
	assert.Equal(t, []string{}, listOrEmpty(in.Amenities))
}

func TestOptional_MixedStringArrays(t *testing.T) {
	var in AdInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"rules": [1, "x", true, null, {"k": "v"}, ["nested"], 2.5],
		"amenities": [],
		"images": {"not": "a list"}
	}`), &in))

	assert.Equal(t, []string{"1", "x", "true", "2.5"}, listOrEmpty(in.Rules))
	assert.True(t, in.Amenities.Valid)
	assert.Equal(t, []string{}, listOrEmpty(in.Amenities))
	assert.True(t, in.Images.Set)
	assert.False(t, in.Images.Valid)
	assert.Equal(t, []string{}, listOrEmpty(in.Images))
}

func TestOptional_Helpers(t *testing.T) {
	assert.Nil(t, null[float64]().Ptr())
	v := some(3.5).Ptr()
	require.NotNil(t, v)
	assert.Equal(t, 3.5, *v)

	assert.Nil(t, stringOrNil(some("")))
	assert.Nil(t, stringOrNil(Optional[string]{}))
	require.NotNil(t, stringOrNil(some("01310-100")))

	out, err := json.Marshal(null[string]())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
