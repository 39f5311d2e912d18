package money

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	tests := []string{
		"0",
		"100000.00",
		"100000.01",
		"-42.5",
		"0.0000000000000000000000000001",
		"1234567890123456789012345678.90",
		"9999999999999999999999999999",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			m, err := Parse(in)
			require.NoError(t, err)
			assert.Equal(t, in, m.String())
		})
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "1.2.3", "12,50"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestParseBounds(t *testing.T) {
	assert.Equal(t, "1000", MustParse("1e3").String())
	assert.Equal(t, "0.00015", MustParse("1.5E-4").String())

	tests := []string{
		"1e1000000",
		"1e3000000",
		"-1e65",
		"0e1000000",
		"1e-29",
		"0." + strings.Repeat("1", 29),
		strings.Repeat("9", 65),
		strings.Repeat("1", 200),
	}
	for _, in := range tests {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}

	var v struct {
		Amount Money `json:"amount"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"amount": 1e1000000}`), &v))
}

func TestAdditionIsExact(t *testing.T) {
	// 0.1 added ten times drifts in float64; here it must not.
	total := Zero
	for i := 0; i < 10; i++ {
		total = total.Add(MustParse("0.1"))
	}
	assert.True(t, total.Equal(FromInt(1)))
	assert.Equal(t, "1.0", total.String())

	big := MustParse("99999999999999999999999999.99")
	assert.Equal(t, "100000000000000000000000000.00", big.Add(MustParse("0.01")).String())
}

func TestClampZero(t *testing.T) {
	assert.True(t, MustParse("-0.01").ClampZero().IsZero())
	assert.Equal(t, "12.30", MustParse("12.30").ClampZero().String())
	assert.True(t, Zero.ClampZero().IsZero())
}

func TestMaxMin(t *testing.T) {
	a, b, c := MustParse("1.5"), MustParse("-3"), MustParse("2.25")
	assert.True(t, Max(a, b, c).Equal(c))
	assert.True(t, Min(a, b, c).Equal(b))
	assert.True(t, Max(a).Equal(a))
}

func TestSum(t *testing.T) {
	assert.True(t, Sum().IsZero())
	assert.Equal(t, "6.60", Sum(MustParse("1.10"), MustParse("2.20"), MustParse("3.30")).String())
}

func TestRatio(t *testing.T) {
	ctx := DefaultContext()
	r := ctx.Ratio(FromInt(1000), FromInt(1000000))
	assert.True(t, r.Equal(decimal.RequireFromString("0.001")))
	assert.Equal(t, 0.001, Float(r))

	assert.True(t, ctx.Ratio(FromInt(5), Zero).IsZero())

	third := NewContext(4).Ratio(FromInt(1), FromInt(3))
	assert.Equal(t, "0.3333", third.String())

	pct := ctx.Percentage(FromInt(1000), FromInt(1000000))
	assert.Equal(t, 0.1, Float(pct))
}

func TestNewContextDefaults(t *testing.T) {
	assert.Equal(t, DefaultPrecision, NewContext(0).Precision)
	assert.Equal(t, int32(10), NewContext(10).Precision)
}

func TestJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{MustParse("500000.01")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"500000.01"}`, string(b))

	var out struct {
		A Money `json:"a"`
		B Money `json:"b"`
		C Money `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"12.50","b":7.25,"c":null}`), &out))
	assert.Equal(t, "12.50", out.A.String())
	assert.Equal(t, "7.25", out.B.String())
	assert.True(t, out.C.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`{"a":"twelve"}`), &out))
}

func TestScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("10.05"))
	assert.Equal(t, "10.05", m.String())
	require.NoError(t, m.Scan([]byte("3")))
	assert.Equal(t, "3", m.String())
	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())
	require.NoError(t, m.Scan(int64(7)))
	assert.True(t, m.Equal(FromInt(7)))
	assert.Error(t, m.Scan(1.5))
}
