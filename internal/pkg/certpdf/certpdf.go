package certpdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"
)

// Generator renders certificate PDFs with an embedded verification QR code.
// The QR payload is the public verification URL for the certificate serial.
type Generator struct {
	verifyBaseURL string
}

func New(verifyBaseURL string) *Generator {
	return &Generator{
		verifyBaseURL: strings.TrimRight(verifyBaseURL, "/"),
	}
}

type Input struct {
	Serial      string
	StudentName string
	EventTitle  string
	Role        string
	IssuedAt    time.Time
}

func (g *Generator) VerifyURL(serial string) string {
	return g.verifyBaseURL + "/" + serial
}

func (g *Generator) Generate(in Input) ([]byte, error) {
	qrPNG, err := qrcode.Encode(g.VerifyURL(in.Serial), qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("qrcode.Encode -> %w", err)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 32)
	pdf.CellFormat(0, 40, "Certificate of Participation", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 12, "This is to certify that", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(0, 16, in.StudentName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 12, fmt.Sprintf("took part as %s in", in.Role), "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 14, in.EventTitle, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 10, "Issued "+in.IssuedAt.Format("2 January 2006"), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 8, "Serial: "+in.Serial, "", 1, "C", false, 0, "")

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("verify-qr", opts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("verify-qr", 250, 160, 30, 30, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf.Output -> %w", err)
	}

	return buf.Bytes(), nil
}
