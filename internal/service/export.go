package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/examly/examly-backend/internal/model"
)

var csvHeader = []string{
	"Student Name",
	"Student ID",
	"Exam Title",
	"Submitted At",
	"Score",
	"Total Questions",
	"Percentage",
}

// WriteCSV streams the submissions as a results spreadsheet. The header row
// is always written, even when there are no submissions.
func WriteCSV(w io.Writer, submissions []model.Submission) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, sub := range submissions {
		row := []string{
			sub.StudentName,
			sub.StudentID,
			sub.ExamTitle,
			sub.SubmittedAt.UTC().Format(time.RFC3339),
			fmt.Sprintf("%d", sub.Score),
			fmt.Sprintf("%d", sub.TotalQuestions),
			Percentage(sub.Score, sub.TotalQuestions),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// Percentage renders score/total as a rounded whole-number percentage,
// e.g. "88%". A zero total yields "0%".
func Percentage(score, total int) string {
	if total <= 0 {
		return "0%"
	}
	pct := math.Round(float64(score) / float64(total) * 100)
	return fmt.Sprintf("%d%%", int(pct))
}

// CSVFilename returns the download filename for a results export.
func CSVFilename(now time.Time) string {
	return fmt.Sprintf("exam-results-%s.csv", now.Format("2006-01-02"))
}
