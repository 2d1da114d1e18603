package csvio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	input := strings.Join([]string{
		`CLIENT,Contract Period,2023,2024,2025,Primary Lobbyist`,
		`Meridian Energy,1/1/25-12/31/25,"$110,000","$120,000","$130,000",J. Alvarez`,
		`Harbor Shipping,expires 2/1/26,90000,,95000,`,
	}, "\n")

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Meridian Energy", first.Name)
	assert.Equal(t, "1/1/25-12/31/25", first.ContractPeriod)
	assert.Equal(t, "$110,000", first.Revenue[2023])
	assert.Equal(t, "$130,000", first.Revenue[2025])
	assert.Equal(t, "J. Alvarez", first.Extra["primary lobbyist"])
	assert.Equal(t, 2, first.Line)

	second := rows[1]
	assert.Equal(t, "expires 2/1/26", second.ContractPeriod)
	assert.Equal(t, "", second.Revenue[2024])
	assert.NotContains(t, second.Extra, "primary lobbyist", "blank extras are omitted")
}

func TestParse_HeaderNormalization(t *testing.T) {
	input := strings.Join([]string{
		`  Client ,  CONTRACT   PERIOD ,2025`,
		`Valley Health,1/1/25-12/31/25,50000`,
	}, "\n")

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Valley Health", rows[0].Name)
	assert.Equal(t, "1/1/25-12/31/25", rows[0].ContractPeriod)
	assert.Equal(t, "50000", rows[0].Revenue[2025])
}

func TestParse_ShortRecordsTolerated(t *testing.T) {
	input := strings.Join([]string{
		`CLIENT,Contract Period,2024,2025`,
		`Sparse Client`,
	}, "\n")

	rows, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Sparse Client", rows[0].Name)
	assert.Equal(t, "", rows[0].ContractPeriod)
	assert.Equal(t, "", rows[0].Revenue[2024])
}

func TestParse_MissingClientColumn(t *testing.T) {
	input := "Name,2025\nSomeone,100\n"

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLIENT column")
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(strings.NewReader(""))
	require.Error(t, err)
}

func TestParseFile_MissingFile(t *testing.T) {
	_, err := ParseFile("/nonexistent/clients.csv")
	require.Error(t, err)
}
