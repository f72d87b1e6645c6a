package resolve

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// AdditionalToken is the per-week add-on price token. It is formatted as
// currency although its name carries no price keyword.
const AdditionalToken = "{Additional}"

// DateLayout is the layout used for time.Time values.
const DateLayout = "02/01/2006"

// FormatError reports a token value that cannot be rendered.
type FormatError struct {
	Token string
	Value any
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot format value %v (%T) for token %s: %s", e.Value, e.Value, e.Token, e.Msg)
}

// IsFormatError reports whether err is or wraps a *FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsCurrencyToken reports whether values for key are rendered as currency:
// the key mentions a price or an amount, or it is AdditionalToken.
func IsCurrencyToken(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "price") || strings.Contains(lower, "amount") || key == AdditionalToken
}

// MaxAmount bounds the magnitude of currency values. Cents are exact in a
// float64 below it.
const MaxAmount = 1e15

// FormatCurrency renders v as "$ " followed by the amount with thousands
// separators and two decimals, rounding exact half cents to even. Values
// that are not finite or exceed MaxAmount are a *FormatError.
func FormatCurrency(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", &FormatError{Value: v, Msg: "not a finite number"}
	}
	if math.Abs(v) > MaxAmount {
		return "", &FormatError{Value: v, Msg: "amount out of range"}
	}
	whole, cents, _ := strings.Cut(strconv.FormatFloat(v, 'f', 2, 64), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "", &FormatError{Value: v, Msg: err.Error()}
	}
	sign := ""
	if n == 0 && strings.HasPrefix(whole, "-") && cents != "00" {
		sign = "-"
	}
	return "$ " + sign + humanize.Comma(n) + "." + cents, nil
}

// FormatValue renders value for key. Numeric values of currency tokens are
// formatted with FormatCurrency; strings are used as given, so formatting is
// idempotent. Any other type for a currency token is an error.
func FormatValue(key string, value any) (string, error) {
	if IsCurrencyToken(key) {
		return formatCurrencyValue(key, value)
	}
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case time.Time:
		return v.Format(DateLayout), nil
	case fmt.Stringer:
		return v.String(), nil
	}
	if f, ok := toFloat(value); ok {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", &FormatError{Token: key, Value: value, Msg: "not a finite number"}
		}
		return formatNumber(value), nil
	}
	return "", &FormatError{Token: key, Value: value, Msg: "unsupported type"}
}

func formatCurrencyValue(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case time.Time:
		return "", &FormatError{Token: key, Value: value, Msg: "dates cannot be rendered as currency"}
	case fmt.Stringer:
		return v.String(), nil
	}
	f, ok := toFloat(value)
	if !ok {
		return "", &FormatError{Token: key, Value: value, Msg: "currency tokens take a number or a preformatted string"}
	}
	out, err := FormatCurrency(f)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Token, fe.Value = key, value
		}
		return "", err
	}
	return out, nil
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

func formatNumber(value any) string {
	switch v := value.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return fmt.Sprint(value)
}
