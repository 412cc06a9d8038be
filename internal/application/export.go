package application

import (
	"bytes"
	"encoding/csv"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yash-kumarsharma/vellum/internal/domain/form"
	"github.com/yash-kumarsharma/vellum/internal/domain/submission"
	"github.com/yash-kumarsharma/vellum/internal/repository"
)

// ExportTable is the tabular view of a form's submissions: one header
// row and one data row per submission.
type ExportTable struct {
	Header []string
	Rows   [][]string
}

// BuildExportTable reduces submissions to a table. Columns follow the
// form's current question order; answers for questions no longer in
// the set are dropped, and questions without an answer render as the
// empty string.
func BuildExportTable(questions []form.Question, subs []submission.Submission) (ExportTable, error) {
	ordered := make([]form.Question, len(questions))
	copy(ordered, questions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	header := make([]string, 0, 1+len(ordered))
	header = append(header, "Submitted At")
	for _, q := range ordered {
		header = append(header, q.Label)
	}

	rows := make([][]string, 0, len(subs))
	for _, sub := range subs {
		answers, err := submission.DecodeAnswers(sub.Answers)
		if err != nil {
			return ExportTable{}, err
		}
		row := make([]string, 0, len(header))
		row = append(row, sub.SubmittedAt.UTC().Format(time.RFC3339))
		for _, q := range ordered {
			key := strconv.FormatUint(uint64(q.ID), 10)
			row = append(row, answers[key].Cell())
		}
		rows = append(rows, row)
	}
	return ExportTable{Header: header, Rows: rows}, nil
}

// RenderCSV writes the table as CSV bytes.
func RenderCSV(table ExportTable) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(table.Header); err != nil {
		return nil, err
	}
	for _, row := range table.Rows {
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

const exportSheet = "Responses"

// RenderXLSX writes the table as a single-sheet workbook.
func RenderXLSX(table ExportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	writeRow := func(rowIdx int, values []string) error {
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeRow(1, table.Header); err != nil {
		return nil, err
	}
	for i, row := range table.Rows {
		if err := writeRow(i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type ExportService struct {
	Repos *repository.Repos
}

func NewExportService(repos *repository.Repos) *ExportService {
	return &ExportService{Repos: repos}
}

func (s *ExportService) buildTable(formID, ownerID uint) (*form.Form, ExportTable, error) {
	f, err := s.Repos.Form.GetOwnedForm(formID, ownerID)
	if err != nil {
		return nil, ExportTable{}, ErrFormNotFound
	}
	subs, err := s.Repos.Submission.ListByFormID(f.ID, 0, 0)
	if err != nil {
		return nil, ExportTable{}, err
	}
	table, err := BuildExportTable(f.Questions, subs)
	if err != nil {
		return nil, ExportTable{}, err
	}
	return f, table, nil
}

func (s *ExportService) ExportCSV(formID, ownerID uint) (*form.Form, []byte, error) {
	f, table, err := s.buildTable(formID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	data, err := RenderCSV(table)
	return f, data, err
}

func (s *ExportService) ExportXLSX(formID, ownerID uint) (*form.Form, []byte, error) {
	f, table, err := s.buildTable(formID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	data, err := RenderXLSX(table)
	return f, data, err
}
