// Package bot is a Telegram front-end over the task service.
package bot

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"taskboard/internal/dto"
	"taskboard/internal/model"
	"taskboard/internal/service"
)

// TaskService is what the bot needs from the service layer.
type TaskService interface {
	List(ctx context.Context, completed *bool) ([]dto.TaskItem, error)
	Get(ctx context.Context, id uint) (dto.TaskItem, error)
	Create(ctx context.Context, input dto.CreateTaskItem) (dto.TaskItem, error)
	Update(ctx context.Context, id uint, input dto.UpdateTaskItem) error
	Delete(ctx context.Context, id uint) error
}

// Reporter renders the open-task summary.
type Reporter interface {
	Summary(ctx context.Context, now time.Time) (string, error)
}

// botAPI is the part of *tgbotapi.BotAPI the bot uses.
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

const helpText = "📋 <b>Task board</b>\n" +
	"• /tasks [open|done] — list tasks\n" +
	"• /task &lt;id&gt; — show one task\n" +
	"• /new &lt;title&gt; [| priority [| YYYY-MM-DD]] — add a task\n" +
	"• /complete &lt;id&gt; — mark a task done\n" +
	"• /reopen &lt;id&gt; — mark a task open again\n" +
	"• /priority &lt;id&gt; &lt;Low|Medium|High&gt; — change priority\n" +
	"• /delete &lt;id&gt; — delete a task\n" +
	"• /report — summary of open tasks"

const newUsage = "Usage: /new &lt;title&gt; [| priority [| YYYY-MM-DD]]"

// Bot aggregates Telegram API with services.
type Bot struct {
	api     botAPI
	tasks   TaskService
	reports Reporter
	log     logrus.FieldLogger
	now     func() time.Time
}

func New(token string, tasks TaskService, reports Reporter, log logrus.FieldLogger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	log = log.WithField("component", "bot")
	log.WithField("account", api.Self.UserName).Info("bot authorized")
	return newBot(api, tasks, reports, log), nil
}

func newBot(api botAPI, tasks TaskService, reports Reporter, log logrus.FieldLogger) *Bot {
	return &Bot{api: api, tasks: tasks, reports: reports, log: log, now: time.Now}
}

// Start begins polling updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("start polling updates")

	go func() {
		<-ctx.Done()
		b.api.StopReceivingUpdates()
	}()

	for update := range updates {
		if update.Message == nil || update.Message.Chat == nil || !update.Message.Chat.IsPrivate() {
			continue
		}
		if err := b.handleMessage(ctx, update.Message); err != nil {
			b.log.WithError(err).Error("handle message")
		}
	}

	return ctx.Err()
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) error {
	if !msg.IsCommand() {
		return b.sendText(msg.Chat.ID, "Send /help for the list of commands.")
	}

	b.log.WithFields(logrus.Fields{"chat": msg.Chat.ID, "command": msg.Command()}).Debug("command received")
	args := strings.TrimSpace(msg.CommandArguments())
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start", "help":
		return b.sendText(chatID, helpText)
	case "tasks":
		return b.handleList(ctx, chatID, args)
	case "task":
		return b.withID(ctx, chatID, args, b.handleShow)
	case "new":
		return b.handleNew(ctx, chatID, args)
	case "complete":
		return b.withID(ctx, chatID, args, b.setCompleted(true))
	case "reopen":
		return b.withID(ctx, chatID, args, b.setCompleted(false))
	case "priority":
		return b.handlePriority(ctx, chatID, args)
	case "delete":
		return b.withID(ctx, chatID, args, b.handleDelete)
	case "report":
		return b.handleReport(ctx, chatID)
	default:
		return b.sendText(chatID, "Unknown command. See /help.")
	}
}

func (b *Bot) handleList(ctx context.Context, chatID int64, args string) error {
	var filter *bool
	switch strings.ToLower(args) {
	case "", "all":
	case "open":
		v := false
		filter = &v
	case "done":
		v := true
		filter = &v
	default:
		return b.sendText(chatID, "Usage: /tasks [open|done]")
	}

	tasks, err := b.tasks.List(ctx, filter)
	if err != nil {
		return b.fail(chatID, err)
	}
	if len(tasks) == 0 {
		return b.sendText(chatID, "No tasks.")
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(formatLine(t))
		sb.WriteByte('\n')
	}
	return b.sendText(chatID, strings.TrimSpace(sb.String()))
}

func (b *Bot) handleShow(ctx context.Context, chatID int64, id uint) error {
	task, err := b.tasks.Get(ctx, id)
	if err != nil {
		return b.fail(chatID, err)
	}
	return b.sendText(chatID, formatDetail(task))
}

func (b *Bot) handleNew(ctx context.Context, chatID int64, args string) error {
	input, err := parseNewTask(args)
	if err != nil {
		return b.sendText(chatID, "⚠️ "+html.EscapeString(err.Error())+"\n"+newUsage)
	}
	task, err := b.tasks.Create(ctx, input)
	if err != nil {
		return b.fail(chatID, err)
	}
	return b.sendText(chatID, "✅ Created\n"+formatLine(task))
}

func (b *Bot) setCompleted(done bool) func(context.Context, int64, uint) error {
	return func(ctx context.Context, chatID int64, id uint) error {
		return b.modify(ctx, chatID, id, func(in *dto.UpdateTaskItem) { in.IsCompleted = done })
	}
}

func (b *Bot) handlePriority(ctx context.Context, chatID int64, args string) error {
	fields := strings.Fields(args)
	if len(fields) != 2 {
		return b.sendText(chatID, "Usage: /priority &lt;id&gt; &lt;Low|Medium|High&gt;")
	}
	id, err := parseID(fields[0])
	if err != nil {
		return b.sendText(chatID, "Task id must be a positive number.")
	}
	p, err := model.ParsePriority(fields[1])
	if err != nil {
		return b.sendText(chatID, "Priority must be Low, Medium or High.")
	}
	return b.modify(ctx, chatID, id, func(in *dto.UpdateTaskItem) { in.Priority = p.String() })
}

// modify rewrites a task with every field kept except what change touches.
func (b *Bot) modify(ctx context.Context, chatID int64, id uint, change func(*dto.UpdateTaskItem)) error {
	task, err := b.tasks.Get(ctx, id)
	if err != nil {
		return b.fail(chatID, err)
	}
	input := dto.UpdateFromView(task)
	change(&input)
	if err := b.tasks.Update(ctx, id, input); err != nil {
		return b.fail(chatID, err)
	}
	task, err = b.tasks.Get(ctx, id)
	if err != nil {
		return b.fail(chatID, err)
	}
	return b.sendText(chatID, "✏️ Updated\n"+formatLine(task))
}

func (b *Bot) handleDelete(ctx context.Context, chatID int64, id uint) error {
	if err := b.tasks.Delete(ctx, id); err != nil {
		return b.fail(chatID, err)
	}
	return b.sendText(chatID, fmt.Sprintf("🗑 Task #%d deleted.", id))
}

func (b *Bot) handleReport(ctx context.Context, chatID int64) error {
	text, err := b.reports.Summary(ctx, b.now())
	if err != nil {
		return b.fail(chatID, err)
	}
	return b.sendText(chatID, text)
}

func (b *Bot) withID(ctx context.Context, chatID int64, args string, fn func(context.Context, int64, uint) error) error {
	id, err := parseID(args)
	if err != nil {
		return b.sendText(chatID, "Task id must be a positive number.")
	}
	return fn(ctx, chatID, id)
}

// fail answers the chat for a failed operation. Missing tasks are a normal
// answer; anything else is returned so the caller logs it.
func (b *Bot) fail(chatID int64, err error) error {
	if errors.Is(err, service.ErrNotFound) {
		return b.sendText(chatID, "Task not found.")
	}
	if sendErr := b.sendText(chatID, "Something went wrong, try again later."); sendErr != nil {
		return errors.Join(err, sendErr)
	}
	return err
}

func (b *Bot) sendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(raw), "#"), 10, 0)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return uint(id), nil
}

// parseNewTask reads "title | priority | YYYY-MM-DD", where the last two
// parts are optional.
func parseNewTask(args string) (dto.CreateTaskItem, error) {
	parts := strings.Split(args, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if parts[0] == "" {
		return dto.CreateTaskItem{}, errors.New("title is required")
	}
	if len(parts) > 3 {
		return dto.CreateTaskItem{}, errors.New("too many parts")
	}

	input := dto.CreateTaskItem{Title: parts[0]}
	if len(parts) > 1 && parts[1] != "" {
		if _, err := model.ParsePriority(parts[1]); err != nil {
			return dto.CreateTaskItem{}, errors.New("priority must be Low, Medium or High")
		}
		input.Priority = parts[1]
	}
	if len(parts) > 2 && parts[2] != "" {
		due, err := dto.ParseDueDate(parts[2])
		if err != nil {
			return dto.CreateTaskItem{}, errors.New("due date must look like 2025-11-30")
		}
		input.DueDate = &dto.DueDate{Time: due}
	}
	return input, nil
}

func formatLine(t dto.TaskItem) string {
	mark := "⬜"
	if t.IsCompleted {
		mark = "✅"
	}
	line := fmt.Sprintf("%s #%d %s <i>(%s)</i>", mark, t.ID, html.EscapeString(t.Title), t.Priority)
	if t.DueDate != nil {
		line += " · due " + t.DueDate.Format("2006-01-02")
	}
	return line
}

func formatDetail(t dto.TaskItem) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("<b>#%d %s</b>\n", t.ID, html.EscapeString(t.Title)))
	status := "open"
	if t.IsCompleted {
		status = "done"
	}
	sb.WriteString(fmt.Sprintf("Status: %s\nPriority: %s", status, t.Priority))
	if t.DueDate != nil {
		sb.WriteString("\nDue: " + t.DueDate.Format("2006-01-02 15:04"))
	}
	if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
		sb.WriteString("\n📝 " + html.EscapeString(strings.TrimSpace(*t.Description)))
	}
	return sb.String()
}
