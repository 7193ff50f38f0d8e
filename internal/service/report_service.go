package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"taskboard/internal/model"
)

const dueSoonWindow = 48 * time.Hour

// ReportService builds human-readable summaries of open tasks.
type ReportService struct {
	store TaskStore
}

func NewReportService(store TaskStore) *ReportService {
	return &ReportService{store: store}
}

// Summary renders the open tasks as Telegram-flavoured HTML: dated tasks
// first by due date, then undated ones newest first.
func (s *ReportService) Summary(ctx context.Context, now time.Time) (string, error) {
	open := false
	tasks, err := s.store.List(ctx, &open)
	if err != nil {
		return "", err
	}

	sortOpenTasks(tasks)

	counts := make(map[model.Priority]int)
	overdue := 0
	for _, task := range tasks {
		counts[task.Priority]++
		if task.DueDate != nil && now.After(*task.DueDate) {
			overdue++
		}
	}

	var builder strings.Builder
	builder.WriteString("📋 <b>Open tasks</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n", now.Format("2006-01-02")))

	if len(tasks) == 0 {
		builder.WriteString("\n— nothing open\n")
		return strings.TrimSpace(builder.String()), nil
	}

	levels := model.Priorities()
	parts := make([]string, 0, len(levels))
	for i := len(levels) - 1; i >= 0; i-- {
		p := levels[i]
		parts = append(parts, fmt.Sprintf("%s: %d", p, counts[p]))
	}
	builder.WriteString(fmt.Sprintf("%d open · %s", len(tasks), strings.Join(parts, " · ")))
	if overdue > 0 {
		builder.WriteString(fmt.Sprintf(" · <b>%d overdue</b>", overdue))
	}
	builder.WriteString("\n\n")

	for _, task := range tasks {
		builder.WriteString(formatTask(task, now))
	}

	return strings.TrimSpace(builder.String()), nil
}

func sortOpenTasks(tasks []model.TaskItem) {
	sort.SliceStable(tasks, func(i, j int) bool {
		switch {
		case tasks[i].DueDate == nil && tasks[j].DueDate == nil:
			return tasks[i].ID > tasks[j].ID
		case tasks[i].DueDate == nil:
			return false
		case tasks[j].DueDate == nil:
			return true
		default:
			return tasks[i].DueDate.Before(*tasks[j].DueDate)
		}
	})
}

func formatTask(task model.TaskItem, now time.Time) string {
	var sb strings.Builder

	icon := "🟢"
	if task.DueDate != nil {
		d := task.DueDate.In(now.Location())
		switch {
		case now.After(d):
			icon = "⚠️"
		case d.Sub(now) <= dueSoonWindow:
			icon = "⏳"
		}
	}

	title := html.EscapeString(strings.TrimSpace(task.Title))
	sb.WriteString(fmt.Sprintf("%s #%d %s <i>(%s)</i>", icon, task.ID, title, task.Priority))

	if task.DueDate != nil {
		d := task.DueDate.In(now.Location())
		if now.After(d) {
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s — <b>overdue</b>", d.Format("2006-01-02")))
		} else {
			daysLeft := int(d.Sub(now).Hours()/24) + 1
			sb.WriteString(fmt.Sprintf("\n   ⏰ due %s · ≈%d d left", d.Format("2006-01-02"), daysLeft))
		}
	}

	if task.Description != nil && strings.TrimSpace(*task.Description) != "" {
		sb.WriteString(fmt.Sprintf("\n   📝 %s", html.EscapeString(strings.TrimSpace(*task.Description))))
	}

	sb.WriteByte('\n')
	return sb.String()
}
