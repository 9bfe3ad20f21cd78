package docgen

import (
	"bytes"
	"fmt"
	"time"

	"github.com/fumiama/go-docx"
)

// QAPair is one appendix entry: the question in bold, the answer below it.
type QAPair struct {
	Question string
	Answer   string
}

// DocumentData carries everything the renderer needs for one RFP document.
type DocumentData struct {
	ProjectName string
	ProjectType string
	Description string
	Stage       string
	DueDate     time.Time
	Value       int64
	Body        string // semi-structured synthesized text
	QA          []QAPair
	GeneratedAt time.Time
}

// Render produces the .docx bytes: cover title, metadata table, classified
// body, QA appendix, and a generation-timestamp footer line.
func Render(data DocumentData) ([]byte, error) {
	w := docx.New().WithDefaultTheme()

	w.AddParagraph().AddText("RFP Response: " + data.ProjectName).Size("44").Bold()
	w.AddParagraph()

	renderMetadataTable(w, data)
	w.AddParagraph()

	for _, el := range Classify(data.Body) {
		renderElement(w, el)
	}

	if len(data.QA) > 0 {
		w.AddParagraph()
		w.AddParagraph().AddText("Appendix: Question & Answer History").Size("32").Bold()
		for _, qa := range data.QA {
			w.AddParagraph().AddText(qa.Question).Bold()
			w.AddParagraph().AddText(qa.Answer)
			w.AddParagraph()
		}
	}

	w.AddParagraph().AddText("Generated " + data.GeneratedAt.UTC().Format("2006-01-02 15:04 MST")).Size("16")

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}
	return buf.Bytes(), nil
}

func renderMetadataTable(w *docx.Docx, data DocumentData) {
	rows := [][2]string{
		{"Project", data.ProjectName},
		{"Type", data.ProjectType},
		{"Description", data.Description},
		{"Stage", data.Stage},
		{"Due Date", data.DueDate.Format("2006-01-02")},
		{"Value", fmt.Sprintf("%d", data.Value)},
	}

	tbl := w.AddTable(len(rows), 2, 8000, nil)
	for i, row := range rows {
		tbl.TableRows[i].TableCells[0].AddParagraph().AddText(row[0]).Bold()
		tbl.TableRows[i].TableCells[1].AddParagraph().AddText(row[1])
	}
}

func renderElement(w *docx.Docx, el Element) {
	switch el.Kind {
	case KindHeading2:
		w.AddParagraph().AddText(el.Text).Size("32").Bold()
	case KindHeading3:
		w.AddParagraph().AddText(el.Text).Size("28").Bold()
	case KindBold:
		w.AddParagraph().AddText(el.Text).Bold()
	case KindBullet:
		w.AddParagraph().AddText("• " + el.Text)
	case KindNumbered:
		w.AddParagraph().AddText(el.Text)
	default:
		w.AddParagraph().AddText(el.Text)
	}
}
