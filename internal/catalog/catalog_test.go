package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/model"
)

func TestDefaultResolve(t *testing.T) {
	c := Default()
	f, err := c.Resolve("sales_amount")
	require.NoError(t, err)
	assert.Equal(t, "Sales Amount", f.Name)
	assert.Equal(t, model.TypeNumber, f.Type)

	_, err = c.Resolve("nope")
	require.ErrorIs(t, err, model.ErrUnknownField)
	assert.Equal(t, "nope", c.DisplayName("nope"))
}

func TestListKeepsOrderAndIsCopy(t *testing.T) {
	c := Default()
	fields := c.List()
	require.Len(t, fields, 10)
	assert.Equal(t, "user_name", fields[0].ID)
	fields[0].Name = "changed"
	assert.Equal(t, "User Name", c.List()[0].Name)
}

func TestNewRejectsBadFields(t *testing.T) {
	_, err := New([]model.Field{{ID: "a", Type: model.TypeText}, {ID: "a", Type: model.TypeText}})
	require.Error(t, err)

	_, err = New([]model.Field{{ID: " ", Type: model.TypeText}})
	require.Error(t, err)

	_, err = New([]model.Field{{ID: "a", Type: "boolean"}})
	require.Error(t, err)

	c, err := New([]model.Field{{ID: "a", Type: "NUMBER"}})
	require.NoError(t, err)
	f, err := c.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, model.TypeNumber, f.Type)
	assert.Equal(t, "a", f.Name)
}
