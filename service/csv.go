package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"teamtasks/common"
	"teamtasks/model"
)

// csvHeader is the fixed interchange column set, in export order.
var csvHeader = []string{"title", "description", "due_date", "status", "assignee_username"}

type CSVService struct {
	db *gorm.DB
}

func NewCSVService(db *gorm.DB) *CSVService {
	return &CSVService{db: db}
}

// flatten makes a free-text field safe for the simplified format:
// commas and newlines become spaces. Deliberately lossy, not RFC 4180.
func flatten(s string) string {
	r := strings.NewReplacer(",", " ", "\r\n", " ", "\n", " ", "\r", " ")
	return r.Replace(s)
}

// Export streams every task as a comma-joined row.
func (s *CSVService) Export(w io.Writer) error {
	var (
		tasks []model.Task
		users []model.User
	)

	if err := s.db.Order("id").Find(&tasks).Error; err != nil {
		return err
	}
	if err := s.db.Find(&users).Error; err != nil {
		return err
	}
	usernames := make(map[uint]string, len(users))
	for _, u := range users {
		usernames[u.ID] = u.Username
	}

	if _, err := fmt.Fprintln(w, strings.Join(csvHeader, ",")); err != nil {
		return err
	}
	for _, t := range tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Format(common.DateLayout)
		}
		assignee := ""
		if t.AssigneeID != nil {
			assignee = usernames[*t.AssigneeID]
		}
		row := []string{flatten(t.Title), flatten(t.Description), due, t.Status, assignee}
		if _, err := fmt.Fprintln(w, strings.Join(row, ",")); err != nil {
			return err
		}
	}
	return nil
}

// Import parses header-keyed rows into tasks. Missing titles default to
// "Untitled", unknown statuses to todo, bad dates to null, unknown
// assignees to unassigned; unrecognized columns are ignored. Staged
// rows commit once at the end; a mid-batch parse anomaly stops reading
// but does not roll back rows already staged.
func (s *CSVService) Import(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var users []model.User
	if err := s.db.Find(&users).Error; err != nil {
		return 0, err
	}
	userIDs := make(map[string]uint, len(users))
	for _, u := range users {
		userIDs[strings.ToLower(u.Username)] = u.ID
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	count := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		for {
			record, err := reader.Read()
			if err != nil {
				// EOF or malformed remainder: keep what is staged
				return nil
			}

			title := strings.TrimSpace(field(record, "title"))
			if title == "" {
				title = "Untitled"
			}

			status := strings.ToLower(strings.TrimSpace(field(record, "status")))
			if !common.ValidStatus(status) {
				status = common.StatusTodo
			}

			var due *time.Time
			if raw := strings.TrimSpace(field(record, "due_date")); raw != "" {
				if parsed, err := time.Parse(common.DateLayout, raw); err == nil {
					due = &parsed
				}
			}

			var assigneeID *uint
			if username := strings.ToLower(strings.TrimSpace(field(record, "assignee_username"))); username != "" {
				if id, ok := userIDs[username]; ok {
					uid := id
					assigneeID = &uid
				}
			}

			task := model.Task{
				Title:       title,
				Description: field(record, "description"),
				DueDate:     due,
				Status:      status,
				AssigneeID:  assigneeID,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
