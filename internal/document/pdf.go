package document

import (
	"bytes"
	"fmt"
	"strings"
)

// PDFRenderer writes a minimal single-page PDF. The permission note is a
// short text document, so a full layout library is not needed.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

func (r *PDFRenderer) Render(title string, lines []string) ([]byte, error) {
	if title == "" {
		title = "Document"
	}

	var content strings.Builder
	content.WriteString("BT\n/F1 14 Tf\n16 TL\n50 800 Td\n")
	content.WriteString(fmt.Sprintf("(%s) Tj\n", pdfEscape(title)))
	content.WriteString("/F1 11 Tf\nT*\n")
	for _, line := range lines {
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", pdfEscape(line)))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
