package contact

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInquiryMessage(t *testing.T) {
	got := InquiryMessage("Dodge Hellcat", "Ravi", "98765", "")
	assert.Equal(t, "*New Inquiry for Dodge Hellcat*\n\nName: Ravi\nPhone: 98765\nMessage: I am interested in your services.", got)

	got = InquiryMessage("", "Ravi", "98765", "Is it available?")
	assert.True(t, strings.HasPrefix(got, "*New Inquiry for Car Detailing*"))
	assert.True(t, strings.HasSuffix(got, "Message: Is it available?"))
}

func TestInquiryLink(t *testing.T) {
	link := InquiryLink("+91 74473-60478", "BMW M4", "A & B", "1+1", "")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/917447360478", u.Path)
	assert.NotContains(t, u.RawQuery, "+", "spaces and plus signs are percent-encoded")
	assert.Equal(t, InquiryMessage("BMW M4", "A & B", "1+1", ""), u.Query().Get("text"))
}

func TestInterestLink(t *testing.T) {
	link := InterestLink("917447360478", "Porsche 911")
	assert.Equal(t, "https://wa.me/917447360478?text=Hello%2C%20I%20am%20interested%20in%20buying%20the%20Porsche%20911.", link)
}
