// Package format holds the display formatting helpers shared by the API
// responses: CPF, phone, currency, dates, ICCID and CEP transforms.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Digits strips every non-digit rune from s.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPF formats an 11-digit CPF as 123.456.789-00. Inputs with a different
// digit count are returned unchanged.
func CPF(cpf string) string {
	clean := Digits(cpf)
	if len(clean) != 11 {
		return cpf
	}
	return clean[0:3] + "." + clean[3:6] + "." + clean[6:9] + "-" + clean[9:11]
}

// MaskCPF hides the outer digit groups for display: ***.456.789-**.
func MaskCPF(cpf string) string {
	clean := Digits(cpf)
	if len(clean) != 11 {
		return cpf
	}
	return "***." + clean[3:6] + "." + clean[6:9] + "-**"
}

// ApplyCPFMask progressively masks a partial CPF as the user types.
func ApplyCPFMask(value string) string {
	clean := Digits(value)
	if len(clean) > 11 {
		clean = clean[:11]
	}
	formatted := clean
	if len(clean) > 3 {
		formatted = clean[:3] + "." + clean[3:]
	}
	if len(clean) > 6 {
		formatted = formatted[:7] + "." + clean[6:]
	}
	if len(clean) > 9 {
		formatted = formatted[:11] + "-" + clean[9:]
	}
	return formatted
}

// Phone formats a Brazilian number: (11) 99999-0001 or (11) 9999-0001.
func Phone(phone string) string {
	clean := Digits(phone)
	switch len(clean) {
	case 11:
		return "(" + clean[0:2] + ") " + clean[2:7] + "-" + clean[7:]
	case 10:
		return "(" + clean[0:2] + ") " + clean[2:6] + "-" + clean[6:]
	default:
		return phone
	}
}

// Currency formats a value in Brazilian reais: R$ 49,90.
func Currency(value float64) string {
	s := fmt.Sprintf("%.2f", value)
	intPart, fracPart, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := "R$ " + strings.Join(groups, ".") + "," + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// Date formats an ISO date (or RFC 3339 timestamp) as dd/mm/yyyy.
func Date(isoDate string) string {
	t, err := parseISO(isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02/01/2006")
}

var monthNames = []string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// ReferenceMonth renders "2026-01" as "Janeiro 2026".
func ReferenceMonth(refMonth string) string {
	t, err := time.Parse("2006-01", refMonth)
	if err != nil {
		return refMonth
	}
	return monthNames[int(t.Month())-1] + " " + t.Format("2006")
}

// RelativeDate renders a timestamp relative to now: "Agora", "Há 2h",
// "Ontem", "Há 3 dias", then falls back to Date.
func RelativeDate(at, now time.Time) string {
	diff := now.Sub(at)
	hours := int(diff.Hours())
	days := int(diff.Hours() / 24)

	switch {
	case hours < 1:
		return "Agora"
	case hours < 24:
		return fmt.Sprintf("Há %dh", hours)
	case days == 1:
		return "Ontem"
	case days < 7:
		return fmt.Sprintf("Há %d dias", days)
	default:
		return at.Format("02/01/2006")
	}
}

// MaskICCID shows only the last four digits: ****-****-****-1234.
func MaskICCID(iccid string) string {
	if len(iccid) < 4 {
		return iccid
	}
	return "****-****-****-" + iccid[len(iccid)-4:]
}

// ZipCode formats an 8-digit CEP as 01234-567.
func ZipCode(zipCode string) string {
	clean := Digits(zipCode)
	if len(clean) != 8 {
		return zipCode
	}
	return clean[:5] + "-" + clean[5:]
}

// FirstName extracts the first name from a full name.
func FirstName(fullName string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(fullName), " ")
	return name
}

func parseISO(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
