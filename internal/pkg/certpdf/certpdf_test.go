package certpdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyURL(t *testing.T) {
	g := New("https://eventra.test/verify/")

	assert.Equal(t, "https://eventra.test/verify/abc-123", g.VerifyURL("abc-123"))
}

func TestGenerate(t *testing.T) {
	g := New("https://eventra.test/verify")

	pdf, err := g.Generate(Input{
		Serial:      "abc-123",
		StudentName: "Ada Lovelace",
		EventTitle:  "Tech Day",
		Role:        "participant",
		IssuedAt:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
