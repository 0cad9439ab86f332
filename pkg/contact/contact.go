// Package contact builds WhatsApp hand-off links for showroom inquiries.
package contact

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	baseURL = "https://wa.me/"

	// DefaultSubject is used when an inquiry is not about a specific car
	DefaultSubject = "Car Detailing"
	// DefaultMessage is sent when the visitor leaves the message empty
	DefaultMessage = "I am interested in your services."
)

// InquiryMessage formats the text sent for a contact form submission
func InquiryMessage(carName, name, phone, message string) string {
	carName = strings.TrimSpace(carName)
	if carName == "" {
		carName = DefaultSubject
	}
	if strings.TrimSpace(message) == "" {
		message = DefaultMessage
	}
	return fmt.Sprintf("*New Inquiry for %s*\n\nName: %s\nPhone: %s\nMessage: %s", carName, name, phone, message)
}

// InquiryLink returns the deep link opening a chat with number, prefilled
// with the inquiry message
func InquiryLink(number, carName, name, phone, message string) string {
	return Link(number, InquiryMessage(carName, name, phone, message))
}

// InterestLink returns the short "interested in buying" link shown on car pages
func InterestLink(number, carName string) string {
	return Link(number, fmt.Sprintf("Hello, I am interested in buying the %s.", carName))
}

// Link returns a wa.me link for number with text prefilled
func Link(number, text string) string {
	return baseURL + digits(number) + "?text=" + escape(text)
}

// escape percent-encodes text the way browsers encode URI components,
// spaces included
func escape(text string) string {
	return strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
}

// digits strips everything wa.me does not accept in a phone number
func digits(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
