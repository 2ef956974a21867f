package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marathon-registration/internal/model"
)

var testEvent = Event{
	Name:  "Polo Marathon",
	Date:  "16-03-2025",
	Venue: "MOLAPALAYAM, Coimbatore",
}

func TestConfirmationBody(t *testing.T) {
	p := model.Participant{
		Name:        "Asha",
		Email:       "asha@example.com",
		ChestNumber: 1042,
		Category:    "10km",
	}

	body := confirmationBody(p, testEvent)

	assert.Contains(t, body, "Hello Asha")
	assert.Contains(t, body, "Your Chest Number: 1042")
	assert.Contains(t, body, "10km")
	assert.Contains(t, body, "16-03-2025")
	assert.Contains(t, body, "MOLAPALAYAM, Coimbatore")
}

func TestBuildReceiptProducesPDF(t *testing.T) {
	p := model.Participant{
		Name:        "Asha",
		ChestNumber: 1042,
		Category:    "10km",
		PaymentID:   "pay_000001",
	}

	pdf := buildReceipt(p, testEvent)

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	assert.Greater(t, buf.Len(), 500, "receipt should be a non-trivial PDF")
	assert.Equal(t, "%PDF", buf.String()[:4])
}
