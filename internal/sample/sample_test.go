package sample

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/reportcraft/internal/catalog"
	"github.com/verte-zerg/reportcraft/internal/model"
)

func TestRowsReturnsCopy(t *testing.T) {
	rows := Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, "John Smith", rows[0]["user_name"])
	assert.Equal(t, 28340, rows[1]["sales_amount"])
	assert.Equal(t, "Asia Pacific", rows[2]["region"])

	rows[0]["user_name"] = "changed"
	assert.Equal(t, "John Smith", Rows()[0]["user_name"])
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	cat := catalog.Default()
	a := NewGenerator(7).Generate(cat, 5)
	b := NewGenerator(7).Generate(cat, 5)
	assert.Equal(t, a, b)
	assert.Nil(t, NewGenerator(7).Generate(cat, 0))
}

func TestGenerateFillsEveryFieldByType(t *testing.T) {
	cat := catalog.Default()
	rows := NewGenerator(42).Generate(cat, 20)
	require.Len(t, rows, 20)
	for _, rec := range rows {
		for _, f := range cat.List() {
			v, ok := rec[f.ID]
			require.True(t, ok, f.ID)
			switch f.Type {
			case model.TypeNumber:
				assert.IsType(t, 0, v)
			case model.TypeDate:
				_, err := time.Parse(model.DateLayout, v.(string))
				assert.NoError(t, err)
			default:
				assert.NotEmpty(t, v)
			}
		}
		assert.True(t, strings.HasSuffix(rec["email"].(string), "@example.com"))
	}
}

func TestReadCSV(t *testing.T) {
	input := "user_name,sales_amount,unknown\nJohn,\"15,420\",x\nSarah,,y\n"
	rows, err := ReadCSV(strings.NewReader(input), catalog.Default())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, model.Record{"user_name": "John", "sales_amount": 15420.0, "unknown": "x"}, rows[0])
	assert.Equal(t, model.Record{"user_name": "Sarah", "unknown": "y"}, rows[1])
}

func TestReadCSVErrors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), catalog.Default())
	require.Error(t, err)

	_, err = ReadCSV(strings.NewReader("sales_amount\nlots\n"), catalog.Default())
	require.ErrorContains(t, err, "row 2")
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("region\nEurope\n"), 0o644))
	rows, err := LoadCSV(path, catalog.Default())
	require.NoError(t, err)
	assert.Equal(t, []model.Record{{"region": "Europe"}}, rows)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), catalog.Default())
	require.Error(t, err)
}
