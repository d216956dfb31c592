package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseComponents(t *testing.T) {
	got := ParseComponents([]Component{
		{Types: []string{"street_number"}, LongName: "12"},
		{Types: []string{"route"}, LongName: "Main St"},
		{Types: []string{"locality"}, LongName: "Springfield"},
		{Types: []string{"postal_code"}, LongName: "00000"},
		{Types: []string{"country"}, LongName: "USA"},
	})
	assert.Equal(t, Address{
		Line1:   "12 Main St",
		City:    "Springfield",
		Pincode: "00000",
		Country: "USA",
	}, got)
}

func TestParseComponentsPostalTownFallback(t *testing.T) {
	got := ParseComponents([]Component{
		{Types: []string{"route"}, LongName: "Baker Street"},
		{Types: []string{"postal_town"}, LongName: "London"},
		{Types: []string{"subpremise"}, LongName: "Flat B"},
	})
	assert.Equal(t, "Baker Street", got.Line1)
	assert.Equal(t, "London", got.City)
	assert.Equal(t, "Flat B", got.Line2)

	// locality wins over postal_town when both are present
	got = ParseComponents([]Component{
		{Types: []string{"locality"}, LongName: "Camden"},
		{Types: []string{"postal_town"}, LongName: "London"},
	})
	assert.Equal(t, "Camden", got.City)
}

func TestAddressMergeLeavesMissingFieldsUntouched(t *testing.T) {
	existing := Address{Line1: "old line", City: "Oldtown", Country: "Oldland"}
	existing.Merge(Address{City: "Newtown"})
	assert.Equal(t, Address{Line1: "old line", City: "Newtown", Country: "Oldland"}, existing)
}

func TestAddressClientDisabledWithoutKey(t *testing.T) {
	c := NewAddressClient("")
	_, err := c.Suggest(context.Background(), "12 main")
	assert.ErrorIs(t, err, ErrAddressDisabled)
	_, err = c.Resolve(context.Background(), "place-1")
	assert.ErrorIs(t, err, ErrAddressDisabled)
}
