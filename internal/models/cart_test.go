package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartTotal(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: 1, Name: "Espresso", Price: 300, Quantity: 2},
		{ProductID: 2, Name: "Pour Over", Price: 500, Quantity: 1},
	}}

	assert.Equal(t, 1100.0, cart.Total())
}

func TestCartTotalEmpty(t *testing.T) {
	cart := Cart{}
	assert.Equal(t, 0.0, cart.Total())
}

func TestCartFind(t *testing.T) {
	cart := Cart{Items: []CartItem{
		{ProductID: 7},
		{ProductID: 9},
	}}

	assert.Equal(t, 1, cart.Find(9))
	assert.Equal(t, -1, cart.Find(3))
}

func TestCartItemsRoundTrip(t *testing.T) {
	remoteID := 42
	items := []CartItem{
		{ProductID: 1, Name: "Espresso", Price: 300, Quantity: 1, Image: "espresso.jpg"},
		{ProductID: 2, Name: "House Blend", Price: 450.50, Quantity: 3, RemoteID: &remoteID},
	}

	data, err := EncodeCartItems(items)
	require.NoError(t, err)

	decoded, err := DecodeCartItems(data)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	assert.Equal(t, items, decoded)
}

func TestEncodeCartItemsNil(t *testing.T) {
	data, err := EncodeCartItems(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecodeCartItemsMalformed(t *testing.T) {
	_, err := DecodeCartItems([]byte("{not json"))
	assert.Error(t, err)
}

func TestPriceUnmarshalString(t *testing.T) {
	var p Price
	require.NoError(t, json.Unmarshal([]byte(`"300.00"`), &p))
	assert.Equal(t, Price(300), p)
}

func TestPriceUnmarshalNumber(t *testing.T) {
	var p Price
	require.NoError(t, json.Unmarshal([]byte(`450.5`), &p))
	assert.Equal(t, Price(450.5), p)
}

func TestPriceUnmarshalInvalid(t *testing.T) {
	var p Price
	assert.Error(t, json.Unmarshal([]byte(`"not a price"`), &p))
}

func TestRemoteCartItemToCartItem(t *testing.T) {
	remote := RemoteCartItem{
		ID:       42,
		Quantity: 3,
		Product: Product{
			ID:    7,
			Name:  "Dark Roast",
			Price: 550,
			Image: "dark.jpg",
		},
	}

	item := remote.ToCartItem()
	assert.Equal(t, 7, item.ProductID)
	assert.Equal(t, "Dark Roast", item.Name)
	assert.Equal(t, Price(550), item.Price)
	assert.Equal(t, 3, item.Quantity)
	assert.Equal(t, "dark.jpg", item.Image)
	require.NotNil(t, item.RemoteID)
	assert.Equal(t, 42, *item.RemoteID)
}

func TestSessionValid(t *testing.T) {
	var nilSession *Session
	assert.False(t, nilSession.Valid())

	assert.False(t, (&Session{Access: "a"}).Valid())
	assert.False(t, (&Session{Access: "a", Refresh: "r"}).Valid())
	assert.True(t, (&Session{Access: "a", Refresh: "r", User: User{ID: 1}}).Valid())
}
