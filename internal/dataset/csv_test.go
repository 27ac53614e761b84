package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	input := "number,label\n5,a\n3.9,b\n\nabc,c\n-2,d\n1e3,e\n"
	data, err := ParseCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []int{5, 3, -2, 1000}, data)
}

func TestParseCSV_HeaderIsAlwaysSkipped(t *testing.T) {
	data, err := ParseCSV(strings.NewReader("7\n8\n9\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{8, 9}, data)
}

func TestParseCSV_NoNumericData(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"header only": "value\n",
		"text rows":   "value\nfoo\nbar\n",
		"nan and inf": "value\nNaN\nInf\n",
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(in))
			assert.ErrorIs(t, err, ErrNoNumericData)
		})
	}
}

func TestParseCSV_SkipsMalformedRows(t *testing.T) {
	data, err := ParseCSV(strings.NewReader("value\n1\n\"broken\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{1}, data)
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []int{4, -1, 1000000}))
	assert.Equal(t, "value\n4\n-1\n1000000\n", buf.String())

	data, err := ParseCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{4, -1, 1000000}, data)
}
