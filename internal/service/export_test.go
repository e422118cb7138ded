package service

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/examly/examly-backend/internal/model"
	"github.com/google/uuid"
)

func TestWriteCSV(t *testing.T) {
	submittedAt := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	submissions := []model.Submission{
		{
			ID:             uuid.New(),
			ExamID:         uuid.New(),
			ExamTitle:      "Biology Midterm",
			StudentName:    "Ada Lovelace",
			StudentID:      "S-001",
			Score:          22,
			TotalQuestions: 25,
			SubmittedAt:    submittedAt,
		},
		{
			ID:             uuid.New(),
			ExamID:         uuid.New(),
			ExamTitle:      "Biology Midterm",
			StudentName:    "Grace Hopper",
			StudentID:      "S-002",
			Score:          9,
			TotalQuestions: 10,
			SubmittedAt:    submittedAt,
		},
	}

	var sb strings.Builder
	if err := WriteCSV(&sb, submissions); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(sb.String())).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("row count = %d, want 3", len(records))
	}

	wantHeader := []string{"Student Name", "Student ID", "Exam Title", "Submitted At", "Score", "Total Questions", "Percentage"}
	for i, col := range wantHeader {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	row := records[1]
	if row[0] != "Ada Lovelace" || row[1] != "S-001" || row[2] != "Biology Midterm" {
		t.Errorf("identity columns = %v", row[:3])
	}
	if row[4] != "22" || row[5] != "25" || row[6] != "88%" {
		t.Errorf("score columns = %v", row[4:])
	}
	if records[2][6] != "90%" {
		t.Errorf("percentage = %q, want 90%%", records[2][6])
	}
}

func TestWriteCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteCSV(&sb, nil); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("line count = %d, want header only", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Student Name,") {
		t.Errorf("header = %q", lines[0])
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		score, total int
		want         string
	}{
		{22, 25, "88%"},
		{9, 10, "90%"},
		{1, 3, "33%"},
		{2, 3, "67%"},
		{0, 5, "0%"},
		{5, 5, "100%"},
		{3, 0, "0%"},
	}
	for _, tc := range cases {
		if got := Percentage(tc.score, tc.total); got != tc.want {
			t.Errorf("Percentage(%d, %d) = %q, want %q", tc.score, tc.total, got, tc.want)
		}
	}
}

func TestCSVFilename(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 59, 0, 0, time.UTC)
	if got := CSVFilename(now); got != "exam-results-2025-03-14.csv" {
		t.Errorf("filename = %q", got)
	}
}
