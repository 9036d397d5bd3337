package lineitems

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/invoicer/internal/domain"
)

var march2024 = domain.Period{Year: 2024, Month: time.March}

func TestBuild_ExplicitItems(t *testing.T) {
	items, err := domain.ParseItems("Design:10,Build:20")
	require.NoError(t, err)

	res := Build(march2024, decimal.NewFromInt(50), decimal.NewFromInt(160), items)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "Design", res.Items[0].Description)
	assert.Equal(t, "500.00", res.Items[0].Amount.StringFixed(2))
	assert.Equal(t, "1000.00", res.Items[1].Amount.StringFixed(2))
	assert.Equal(t, "€1500.00", domain.FormatMoney("€", res.Total))
}

func TestBuild_SynthesizesSingleItemFromTimesheet(t *testing.T) {
	res := Build(march2024, decimal.NewFromInt(50), decimal.RequireFromString("164.5"), nil)

	require.Len(t, res.Items, 1)
	li := res.Items[0]
	assert.Equal(t, "Development services for March 2024", li.Description)
	assert.Equal(t, "164.5", li.Hours.String())
	assert.Equal(t, "€8225.00", domain.FormatMoney("€", res.Total))
	assert.True(t, li.Amount.Equal(res.Total))
}

func TestBuild_FractionalRateKeepsCents(t *testing.T) {
	items := []domain.ItemSpec{
		{Description: "Support", Hours: decimal.RequireFromString("0.1")},
		{Description: "Support", Hours: decimal.RequireFromString("0.2")},
	}
	res := Build(march2024, decimal.RequireFromString("33.33"), decimal.Zero, items)
	assert.Equal(t, "10.00", res.Total.StringFixed(2)) // 0.3 × 33.33 = 9.999
}

func TestResultHTML(t *testing.T) {
	items := []domain.ItemSpec{{Description: "R&D <phase 1>", Hours: decimal.NewFromInt(3)}}
	res := Build(march2024, decimal.NewFromInt(50), decimal.Zero, items)

	out := res.HTML("€")
	assert.Contains(t, out, "<td>R&amp;D &lt;phase 1&gt;</td>")
	assert.Contains(t, out, "<td>3</td>")
	assert.Contains(t, out, "<td>€50.00</td>")
	assert.Contains(t, out, "<td>€150.00</td>")
	assert.Equal(t, 1, strings.Count(out, "<tr>"))
}
