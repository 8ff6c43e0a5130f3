package feed

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covercheck-dev/covercheck/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestReadHoldings(t *testing.T) {
	csv := HoldingsHeader + "\n" +
		"h1,국민은행,kb-bank,KB스타 정기예금,term,KRW,30000000,,12\n" +
		"h2,하나은행,hana-bank,하나 밀리언달러 외화예금,fx,USD,10000,1385,12\n"

	holdings, skipped, err := ReadHoldings(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, holdings, 2)

	h := holdings[0]
	assert.Equal(t, "h1", h.ID)
	assert.Equal(t, "국민은행", h.Institution)
	assert.Equal(t, "kb-bank", h.License)
	assert.Equal(t, model.CategoryTerm, h.Category)
	assert.Equal(t, model.CurrencyKRW, h.Currency)
	assert.True(t, dec("30000000").Equal(h.Balance))
	assert.True(t, h.FXRate.IsZero())
	assert.Equal(t, 12, h.TermMonths)

	assert.True(t, dec("1385").Equal(holdings[1].FXRate))
}

func TestReadHoldings_SkipsMissingIdentity(t *testing.T) {
	csv := HoldingsHeader + "\n" +
		",국민은행,kb-bank,KB 보통예금,demand,KRW,1000,,\n" + // no id
		"h2,,kb-bank,KB 보통예금,demand,KRW,1000,,\n" + // no institution
		"h3,국민은행,,KB 보통예금,demand,KRW,1000,,\n" + // no license
		"h4,국민은행,kb-bank,KB 보통예금,demand,KRW,1000,,\n"

	holdings, skipped, err := ReadHoldings(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, holdings, 1)
	assert.Equal(t, "h4", holdings[0].ID)
}

func TestReadHoldings_MalformedNumericsDegradeToZero(t *testing.T) {
	csv := HoldingsHeader + "\n" +
		"h1,국민은행,kb-bank,KB 보통예금,demand,KRW,notanumber,abc,twelve\n" +
		"h2,국민은행,kb-bank,KB 보통예금,demand,KRW,-500,,-3\n"

	holdings, skipped, err := ReadHoldings(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Zero(t, skipped, "malformed numerics degrade, they do not skip the row")
	require.Len(t, holdings, 2)

	assert.True(t, holdings[0].Balance.IsZero())
	assert.True(t, holdings[0].FXRate.IsZero())
	assert.Zero(t, holdings[0].TermMonths)

	// Negative amounts are malformed too.
	assert.True(t, holdings[1].Balance.IsZero())
	assert.Zero(t, holdings[1].TermMonths)
}

func TestReadHoldings_UnknownTagsLeftForClassifier(t *testing.T) {
	csv := HoldingsHeader + "\n" +
		"h1,국민은행,kb-bank,KB스타 정기예금,savings,EUR,1000,,\n"

	holdings, _, err := ReadHoldings(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Empty(t, holdings[0].Category, "unknown category must stay untagged")
	assert.Empty(t, holdings[0].Currency, "unknown currency must stay untagged")
}

func TestReadHoldings_CategoryCaseInsensitive(t *testing.T) {
	csv := HoldingsHeader + "\n" +
		"h1,국민은행,kb-bank,KB 보통예금,DEMAND,krw,1000,,\n"

	holdings, _, err := ReadHoldings(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, model.CategoryDemand, holdings[0].Category)
	assert.Equal(t, model.CurrencyKRW, holdings[0].Currency)
}

func TestReadHoldings_ColumnDrift(t *testing.T) {
	csv := "license,id,balance,institution,product\n" +
		"kb-bank,h1,5000000,국민은행,KB 보통예금\n"

	holdings, _, err := ReadHoldings(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	assert.Equal(t, "h1", holdings[0].ID)
	assert.True(t, dec("5000000").Equal(holdings[0].Balance))
	assert.Empty(t, holdings[0].Category, "absent category column leaves holdings untagged")
}

func TestReadHoldings_MissingIdentityColumns(t *testing.T) {
	_, _, err := ReadHoldings(strings.NewReader("institution,product,balance\n국민은행,KB 보통예금,1000\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id/institution/license")
}

func TestWriteHoldings_RoundTrip(t *testing.T) {
	in := []model.Holding{
		{
			ID: "h1", Institution: "국민은행", License: "kb-bank",
			Product: "KB스타 정기예금", Category: model.CategoryTerm,
			Currency: model.CurrencyKRW, Balance: dec("30000000"), TermMonths: 12,
		},
		{
			ID: "h2", Institution: "하나은행", License: "hana-bank",
			Product: "하나 밀리언달러 외화예금", Category: model.CategoryFX,
			Currency: model.CurrencyUSD, Balance: dec("10000"), FXRate: dec("1385"), TermMonths: 12,
		},
		{
			// Untagged holding: empty category/currency survive the trip.
			ID: "h3", Institution: "SBI저축은행", License: "sbi-savings",
			Product: "사이다 입출금통장", Balance: dec("2500000"),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHoldings(&buf, in))

	out, skipped, err := ReadHoldings(&buf)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, out, len(in))
	for i := range in {
		assert.Equal(t, in[i].ID, out[i].ID)
		assert.Equal(t, in[i].Category, out[i].Category)
		assert.Equal(t, in[i].Currency, out[i].Currency)
		assert.True(t, in[i].Balance.Equal(out[i].Balance), "holding %s balance", in[i].ID)
		assert.Equal(t, in[i].TermMonths, out[i].TermMonths)
	}
}

func TestLoadHoldingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.csv")
	csv := HoldingsHeader + "\nh1,국민은행,kb-bank,KB 보통예금,demand,KRW,1000,,\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	holdings, skipped, err := LoadHoldingsFile(path)
	require.NoError(t, err)
	assert.Zero(t, skipped)
	assert.Len(t, holdings, 1)

	_, _, err = LoadHoldingsFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
}
