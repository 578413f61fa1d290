package format

import (
	"testing"
	"time"
)

func TestCPF_RoundTrip(t *testing.T) {
	masked := CPF("12345678900")
	if masked != "123.456.789-00" {
		t.Fatalf("expected 123.456.789-00, got %s", masked)
	}
	if Digits(masked) != "12345678900" {
		t.Fatalf("stripping non-digits should recover the original 11 digits, got %s", Digits(masked))
	}
}

func TestCPF_WrongLength(t *testing.T) {
	if got := CPF("12345"); got != "12345" {
		t.Fatalf("short input should pass through, got %s", got)
	}
}

func TestMaskCPF(t *testing.T) {
	if got := MaskCPF("12345678900"); got != "***.456.789-**" {
		t.Fatalf("unexpected mask: %s", got)
	}
}

func TestApplyCPFMask_Progressive(t *testing.T) {
	cases := map[string]string{
		"123":          "123",
		"1234":         "123.4",
		"1234567":      "123.456.7",
		"12345678900":  "123.456.789-00",
		"123456789001": "123.456.789-00", // truncated at 11 digits
	}
	for in, want := range cases {
		if got := ApplyCPFMask(in); got != want {
			t.Fatalf("ApplyCPFMask(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPhone(t *testing.T) {
	if got := Phone("11999990001"); got != "(11) 99999-0001" {
		t.Fatalf("unexpected mobile format: %s", got)
	}
	if got := Phone("1133334444"); got != "(11) 3333-4444" {
		t.Fatalf("unexpected landline format: %s", got)
	}
	if got := Phone("123"); got != "123" {
		t.Fatalf("unexpected passthrough: %s", got)
	}
}

func TestCurrency(t *testing.T) {
	if got := Currency(49.90); got != "R$ 49,90" {
		t.Fatalf("unexpected currency: %s", got)
	}
	if got := Currency(1234.5); got != "R$ 1.234,50" {
		t.Fatalf("unexpected thousands grouping: %s", got)
	}
}

func TestDate(t *testing.T) {
	if got := Date("2026-02-15"); got != "15/02/2026" {
		t.Fatalf("unexpected date: %s", got)
	}
	if got := Date("2026-01-15T10:00:00Z"); got != "15/01/2026" {
		t.Fatalf("unexpected timestamp date: %s", got)
	}
}

func TestReferenceMonth(t *testing.T) {
	if got := ReferenceMonth("2026-01"); got != "Janeiro 2026" {
		t.Fatalf("unexpected reference month: %s", got)
	}
}

func TestRelativeDate(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Minute), "Agora"},
		{now.Add(-2 * time.Hour), "Há 2h"},
		{now.Add(-26 * time.Hour), "Ontem"},
		{now.Add(-3 * 24 * time.Hour), "Há 3 dias"},
		{now.Add(-10 * 24 * time.Hour), "31/01/2026"},
	}
	for _, tc := range cases {
		if got := RelativeDate(tc.at, now); got != tc.want {
			t.Fatalf("RelativeDate(%v) = %q, want %q", tc.at, got, tc.want)
		}
	}
}

func TestMaskICCID(t *testing.T) {
	if got := MaskICCID("89550534000000000001"); got != "****-****-****-0001" {
		t.Fatalf("unexpected iccid mask: %s", got)
	}
}

func TestZipCode(t *testing.T) {
	if got := ZipCode("01234567"); got != "01234-567" {
		t.Fatalf("unexpected cep: %s", got)
	}
}

func TestFirstName(t *testing.T) {
	if got := FirstName("Carlos Eduardo Silva"); got != "Carlos" {
		t.Fatalf("unexpected first name: %s", got)
	}
}
