package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chittaranjan27/Task-Board-Application/domain"
	"github.com/chittaranjan27/Task-Board-Application/internal/config"
	"github.com/chittaranjan27/Task-Board-Application/pkg/logger"
	"github.com/chittaranjan27/Task-Board-Application/repository"
	boltRepo "github.com/chittaranjan27/Task-Board-Application/repository/bolt"
	memoryRepo "github.com/chittaranjan27/Task-Board-Application/repository/memory"
	boardUC "github.com/chittaranjan27/Task-Board-Application/usecase/board"
	"github.com/chittaranjan27/Task-Board-Application/usecase/projection"
)

func main() {
	cfg := config.MustLoad()

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	ctx := context.Background()

	var repo repository.BoardRepository
	var closeStore func() error
	if cfg.Storage.Ephemeral {
		repo = memoryRepo.New()
	} else {
		store, err := boltRepo.Open(cfg.Storage.Path, cfg.Storage.Bucket, zapLogger)
		if err != nil {
			zapLogger.Fatal("failed to open board store", zap.Error(err))
		}
		closeStore = store.Close
		repo = store
	}

	engine := boardUC.New(repo, zapLogger)
	if err := engine.Load(ctx); err != nil {
		zapLogger.Fatal("failed to load board collection", zap.Error(err))
	}

	a := &app{engine: engine}
	execErr := a.rootCmd().ExecuteContext(ctx)
	if closeStore != nil {
		if err := closeStore(); err != nil {
			zapLogger.Error("failed to close board store", zap.Error(err))
		}
	}
	if execErr != nil {
		fmt.Fprintln(os.Stderr, "error:", execErr)
		os.Exit(1)
	}
}

type app struct {
	engine  *boardUC.UseCase
	jsonOut bool
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Local kanban board: boards hold ordered columns, columns hold ordered tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "output JSON instead of tables")
	root.AddCommand(a.boardCmd())
	root.AddCommand(a.openCmd())
	root.AddCommand(a.columnCmd())
	root.AddCommand(a.taskCmd())
	root.AddCommand(a.viewCmd())
	return root
}

func (a *app) boardCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "board", Short: "Manage boards"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printBoardList()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("board name must not be empty")
			}
			b, err := a.engine.CreateBoard(cmd.Context(), name)
			if err != nil {
				return err
			}
			return a.printItem(b, fmt.Sprintf("created board %s (%s)", b.Name, b.ID))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <board-id> <name>",
		Short: "Rename a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("board name must not be empty")
			}
			b, err := a.engine.Board(args[0])
			if err != nil {
				return err
			}
			b.Name = name
			if err := a.engine.UpdateBoard(cmd.Context(), b); err != nil {
				return err
			}
			return a.printItem(b, fmt.Sprintf("renamed board %s", b.ID))
		},
	})

	del := &cobra.Command{
		Use:   "delete <board-id>",
		Short: "Delete a board and everything on it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.confirm(cmd, fmt.Sprintf("delete board %s and all its columns and tasks?", args[0])) {
				return nil
			}
			return a.engine.DeleteBoard(cmd.Context(), args[0])
		},
	}
	del.Flags().Bool("yes", false, "skip the confirmation prompt")
	cmd.AddCommand(del)

	return cmd
}

// openCmd is the navigation entry point: it selects a board as current and
// shows its detail view, or falls back to the board list for unknown ids.
func (a *app) openCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <board-id>",
		Short: "Open a board's detail view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.engine.SetCurrentBoard(args[0]); err != nil {
				if domain.IsDomainError(err, domain.ErrCodeNotFound) {
					fmt.Fprintf(cmd.ErrOrStderr(), "board %s not found, showing the board list\n", args[0])
					return a.printBoardList()
				}
				return err
			}
			b, _ := a.engine.CurrentBoard()
			return a.printBoard(b, projection.Filter{})
		},
	}
}

func (a *app) columnCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "column", Short: "Manage columns"}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <board-id> <title>",
		Short: "Append a column to a board",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[1])
			if title == "" {
				return fmt.Errorf("column title must not be empty")
			}
			col, err := a.engine.CreateColumn(cmd.Context(), args[0], title)
			if err != nil {
				return err
			}
			return a.printItem(col, fmt.Sprintf("created column %s (%s) at position %d", col.Title, col.ID, col.Order))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rename <column-id> <title>",
		Short: "Rename a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[1])
			if title == "" {
				return fmt.Errorf("column title must not be empty")
			}
			return a.engine.UpdateColumn(cmd.Context(), args[0], title)
		},
	})

	del := &cobra.Command{
		Use:   "delete <column-id>",
		Short: "Delete a column and the tasks in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.confirm(cmd, fmt.Sprintf("delete column %s and all its tasks?", args[0])) {
				return nil
			}
			return a.engine.DeleteColumn(cmd.Context(), args[0])
		},
	}
	del.Flags().Bool("yes", false, "skip the confirmation prompt")
	cmd.AddCommand(del)

	return cmd
}

func (a *app) taskCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "task", Short: "Manage tasks"}
	cmd.AddCommand(a.taskAddCmd())
	cmd.AddCommand(a.taskUpdateCmd())
	cmd.AddCommand(a.taskDeleteCmd())
	cmd.AddCommand(a.taskMoveCmd())
	cmd.AddCommand(a.taskReorderCmd())
	return cmd
}

func (a *app) taskAddCmd() *cobra.Command {
	var description, priority, due, createdBy string
	cmd := &cobra.Command{
		Use:   "add <column-id> <title>",
		Short: "Append a task to a column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[1])
			if title == "" {
				return fmt.Errorf("task title must not be empty")
			}
			draft := boardUC.TaskDraft{
				Title:       title,
				Description: description,
				CreatedBy:   createdBy,
			}
			if priority != "" {
				p, ok := domain.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("unknown priority %q (want high, medium or low)", priority)
				}
				draft.Priority = p
			}
			if due != "" {
				d, err := parseDueDate(due)
				if err != nil {
					return err
				}
				draft.DueDate = &d
			}
			t, err := a.engine.CreateTask(cmd.Context(), args[0], draft)
			if err != nil {
				return err
			}
			return a.printItem(t, fmt.Sprintf("created task %s (%s) at position %d", t.Title, t.ID, t.Order))
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "task description")
	cmd.Flags().StringVar(&priority, "priority", "", "high, medium or low (default medium)")
	cmd.Flags().StringVar(&due, "due", "", "due date as YYYY-MM-DD")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "author name")
	return cmd
}

func (a *app) taskUpdateCmd() *cobra.Command {
	var title, description, priority, due, createdBy string
	var clearDue bool
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update task fields (moving between columns is `task move`)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd boardUC.TaskUpdate
			if cmd.Flags().Changed("title") {
				trimmed := strings.TrimSpace(title)
				if trimmed == "" {
					return fmt.Errorf("task title must not be empty")
				}
				upd.Title = &trimmed
			}
			if cmd.Flags().Changed("description") {
				upd.Description = &description
			}
			if cmd.Flags().Changed("created-by") {
				upd.CreatedBy = &createdBy
			}
			if priority != "" {
				p, ok := domain.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("unknown priority %q (want high, medium or low)", priority)
				}
				upd.Priority = &p
			}
			switch {
			case clearDue:
				upd.DueDate = &time.Time{}
			case due != "":
				d, err := parseDueDate(due)
				if err != nil {
					return err
				}
				upd.DueDate = &d
			}
			t, err := a.engine.UpdateTask(cmd.Context(), args[0], upd)
			if err != nil {
				return err
			}
			return a.printItem(t, fmt.Sprintf("updated task %s", t.ID))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&priority, "priority", "", "new priority")
	cmd.Flags().StringVar(&due, "due", "", "new due date as YYYY-MM-DD")
	cmd.Flags().BoolVar(&clearDue, "clear-due", false, "remove the due date")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "new author name")
	return cmd
}

func (a *app) taskDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.confirm(cmd, fmt.Sprintf("delete task %s?", args[0])) {
				return nil
			}
			return a.engine.DeleteTask(cmd.Context(), args[0])
		},
	}
	cmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	return cmd
}

func (a *app) taskMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <column-id> <index>",
		Short: "Move a task into a column at the given position",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("index must be an integer: %w", err)
			}
			return a.engine.MoveTask(cmd.Context(), args[0], args[1], index)
		},
	}
}

func (a *app) taskReorderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <column-id> <task-id>...",
		Short: "Reorder a column; the id list must cover every task in it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.engine.ReorderTasks(cmd.Context(), args[0], args[1:])
		},
	}
}

func (a *app) viewCmd() *cobra.Command {
	var search, priority, due string
	cmd := &cobra.Command{
		Use:   "view <board-id>",
		Short: "Show a board's columns and tasks, optionally filtered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := a.engine.Board(args[0])
			if err != nil {
				return err
			}
			f := projection.Filter{Search: search}
			if priority != "" && priority != "all" {
				p, ok := domain.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("unknown priority %q (want high, medium, low or all)", priority)
				}
				f.Priority = p
			}
			if due != "" {
				bucket, ok := projection.ParseBucket(due)
				if !ok {
					return fmt.Errorf("unknown due filter %q (want all, overdue, today or week)", due)
				}
				f.Due = bucket
			}
			return a.printBoard(b, f)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "keep tasks whose title or description contains the term")
	cmd.Flags().StringVar(&priority, "priority", "", "keep tasks with this priority")
	cmd.Flags().StringVar(&due, "due", "", "keep tasks due in this window: overdue, today or week")
	return cmd
}

func (a *app) printBoardList() error {
	boards := a.engine.Boards()
	if a.jsonOut {
		return printJSON(boards)
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.AppendHeader(table.Row{"ID", "Name", "Columns", "Tasks", "Created", "Updated"})
	for _, b := range boards {
		tasks := 0
		for _, c := range b.Columns {
			tasks += len(c.Tasks)
		}
		updated := ""
		if b.UpdatedAt != nil {
			updated = b.UpdatedAt.Format("2006-01-02 15:04")
		}
		tw.AppendRow(table.Row{b.ID, b.Name, len(b.Columns), tasks, b.CreatedAt.Format("2006-01-02 15:04"), updated})
	}
	tw.Render()
	return nil
}

func (a *app) printBoard(b domain.Board, f projection.Filter) error {
	byColumn := projection.Tasks(&b, f, time.Now())
	if a.jsonOut {
		return printJSON(map[string]any{"board": b, "tasks": byColumn})
	}
	fmt.Printf("%s (%s)\n", b.Name, b.ID)
	columns := append([]domain.Column(nil), b.Columns...)
	sort.SliceStable(columns, func(i, j int) bool { return columns[i].Order < columns[j].Order })
	for _, col := range columns {
		fmt.Printf("\n%s (%s)\n", col.Title, col.ID)
		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"#", "ID", "Title", "Priority", "Due", "Created by"})
		for i, t := range byColumn[col.ID] {
			due := ""
			if t.DueDate != nil {
				due = t.DueDate.Format("2006-01-02")
			}
			tw.AppendRow(table.Row{i, t.ID, t.Title, t.Priority, due, t.CreatedBy})
		}
		tw.Render()
	}
	return nil
}

func (a *app) printItem(v any, plain string) error {
	if a.jsonOut {
		return printJSON(v)
	}
	fmt.Println(plain)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm gates destructive commands. The engine itself never prompts.
func (a *app) confirm(cmd *cobra.Command, prompt string) bool {
	if yes, _ := cmd.Flags().GetBool("yes"); yes {
		return true
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func parseDueDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("due date must be YYYY-MM-DD: %w", err)
	}
	return d, nil
}
