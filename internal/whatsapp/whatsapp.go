// Package whatsapp builds wa.me deep links. The entire booking handoff is
// a prefilled chat message; there is no server round-trip or callback.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

// Link returns a https://wa.me/<phone>?text=<message> URL. The phone number
// is stripped to digits (wa.me rejects "+", spaces, and dashes).
func Link(phone, message string) string {
	digits := onlyDigits(phone)
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + digits,
		RawQuery: url.Values{"text": {message}}.Encode(),
	}
	return u.String()
}

// BookingMessage is the prefilled chat text for a tour booking enquiry.
func BookingMessage(tourTitle, departure, name string) string {
	msg := fmt.Sprintf("Hi! I'd like to book the %q tour", tourTitle)
	if departure != "" {
		msg += fmt.Sprintf(" (departure %s)", departure)
	}
	if name != "" {
		msg += fmt.Sprintf(". My name is %s.", name)
	} else {
		msg += "."
	}
	return msg
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
