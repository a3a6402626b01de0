package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"pomodoro/internal/core/appstate"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/view"
)

const prompt = "pomodoro> "

var commands = []string{
	"start", "pause", "resume", "reset", "skip", "status",
	"add", "toggle", "rm", "ls", "stats", "set", "settings",
	"help", "quit", "exit",
}

// Options configures a Shell.
type Options struct {
	// HistoryPath keeps command history between runs when set.
	HistoryPath string
	// OnStart runs once before the first prompt. confirm asks a yes/no question.
	OnStart func(confirm func(question string) (bool, error))
}

// Shell is the interactive terminal front-end.
type Shell struct {
	state   *appstate.State
	console *Console
	options Options
	liner   *liner.State
}

// New creates a shell over state.
func New(state *appstate.State, console *Console, options Options) *Shell {
	return &Shell{
		state:   state,
		console: console,
		options: options,
	}
}

// Run reads commands until quit or end of input.
func (sh *Shell) Run() error {
	sh.liner = liner.NewLiner()
	defer sh.liner.Close()

	sh.liner.SetCtrlCAborts(true)
	sh.liner.SetCompleter(complete)

	if f, err := os.Open(sh.options.HistoryPath); err == nil {
		_, _ = sh.liner.ReadHistory(f)
		f.Close()
	}
	defer sh.saveHistory()

	if sh.options.OnStart != nil {
		sh.options.OnStart(sh.confirm)
	}

	sh.console.Printf("Pomodoro %s. Type 'help' for commands.\n", view.Summary(sh.state.Clock.Snapshot()))

	for {
		line, err := sh.liner.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				sh.console.Printf("\nBye!\n")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sh.liner.AppendHistory(line)

		if !sh.Execute(line) {
			sh.console.Printf("Bye!\n")
			return nil
		}
	}
}

// Execute runs one command line. It returns false when the shell should exit.
func (sh *Shell) Execute(line string) bool {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	cmd := strings.ToLower(fields[0])
	args := fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		sh.printHelp()
	case "start":
		sh.state.Clock.Start()
		sh.printStatus()
	case "pause":
		sh.state.Clock.Pause()
		sh.printStatus()
	case "resume":
		sh.state.Clock.Resume()
		sh.printStatus()
	case "reset":
		sh.state.Clock.Reset()
		sh.printStatus()
	case "skip":
		sh.state.Clock.Skip()
		sh.printStatus()
	case "status":
		sh.printStatus()
	case "add":
		sh.cmdAdd(strings.TrimSpace(line[len(fields[0]):]))
	case "toggle", "done":
		sh.cmdToggle(args)
	case "rm", "del":
		sh.cmdRemove(args)
	case "ls", "list":
		sh.cmdList()
	case "stats":
		sh.cmdStats()
	case "set":
		sh.cmdSet(args)
	case "settings":
		settings := sh.state.Clock.Settings()
		sh.console.Printf("focus %d min, short break %d min, long break %d min\n",
			settings.WorkMinutes, settings.BreakMinutes, settings.LongBreakMinutes)
	default:
		sh.console.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (sh *Shell) printStatus() {
	state := sh.state.Clock.Snapshot()
	sh.console.Printf("%s  session %s  done %d  focus %d min\n",
		view.Summary(state),
		view.CycleIndicator(state.CycleCount),
		state.SessionsCompleted,
		view.FocusMinutes(state.SessionsCompleted, state.Settings.WorkMinutes),
	)
}

func (sh *Shell) cmdAdd(text string) {
	task, ok := sh.state.Tasks.Add(text)
	if !ok {
		sh.console.Printf("Usage: add <text>\n")
		return
	}
	sh.console.Printf("added %d %s\n", task.ID, task.Text)
}

func (sh *Shell) cmdToggle(args []string) {
	id, ok := sh.parseID(args)
	if !ok {
		return
	}
	if !sh.state.Tasks.Toggle(id) {
		sh.console.Printf("no task %d\n", id)
		return
	}
	task, _ := sh.state.Tasks.Get(id)
	sh.console.Printf("%s %s\n", checkbox(task), task.Text)
}

func (sh *Shell) cmdRemove(args []string) {
	id, ok := sh.parseID(args)
	if !ok {
		return
	}
	if !sh.state.Tasks.Remove(id) {
		sh.console.Printf("no task %d\n", id)
		return
	}
	sh.console.Printf("removed %d\n", id)
}

func (sh *Shell) cmdList() {
	tasks := sh.state.Tasks.List()
	if len(tasks) == 0 {
		sh.console.Printf("No tasks yet\n")
		return
	}
	for _, task := range tasks {
		line := fmt.Sprintf("%s %d %s", checkbox(task), task.ID, task.Text)
		if badge := view.TaskBadge(task.Pomodoros); badge != "" {
			line += "  " + badge
		}
		sh.console.Printf("%s\n", line)
	}
}

func (sh *Shell) cmdStats() {
	today := sh.state.Stats.Current()
	sh.console.Printf("%s: %d tasks, %d pomodoros\n", today.Date, today.TasksCompleted, today.PomodorosCompleted)
}

func (sh *Shell) cmdSet(args []string) {
	if len(args) != 3 {
		sh.console.Printf("Usage: set <focus> <short break> <long break>\n")
		return
	}
	values := make([]int, len(args))
	for i, arg := range args {
		minutes, err := model.ParseMinutes(arg)
		if err != nil {
			sh.console.Printf("error: %v\n", err)
			return
		}
		values[i] = minutes
	}
	settings := model.Settings{WorkMinutes: values[0], BreakMinutes: values[1], LongBreakMinutes: values[2]}
	if err := sh.state.Clock.SetSettings(settings); err != nil {
		sh.console.Printf("error: %v\n", err)
		return
	}
	sh.printStatus()
}

func (sh *Shell) parseID(args []string) (int64, bool) {
	if len(args) != 1 {
		sh.console.Printf("Usage: <command> <id>\n")
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		sh.console.Printf("invalid id %q\n", args[0])
		return 0, false
	}
	return id, true
}

func (sh *Shell) printHelp() {
	sh.console.Printf(`Commands:
  start                          Start the countdown
  pause / resume                 Hold or continue the countdown
  reset                          Back to a full focus phase
  skip                           Move to the next phase without counting it
  status                         Show phase, time left and session
  add <text>                     Add a task
  toggle <id>                    Mark a task done or not done
  rm <id>                        Remove a task
  ls                             List tasks
  stats                          Show today's counters
  set <focus> <short> <long>     Change interval minutes
  settings                       Show interval minutes
  help                           Show this help
  quit                           Exit
`)
}

func (sh *Shell) confirm(question string) (bool, error) {
	answer, err := sh.liner.Prompt(question + " (yes/no): ")
	if err != nil {
		return false, err
	}
	return isYes(answer), nil
}

func (sh *Shell) saveHistory() {
	if sh.options.HistoryPath == "" {
		return
	}
	if f, err := os.Create(sh.options.HistoryPath); err == nil {
		_, _ = sh.liner.WriteHistory(f)
		f.Close()
	}
}

func complete(line string) []string {
	var completions []string
	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}
	return completions
}

func checkbox(task model.Task) string {
	if task.Completed {
		return "[x]"
	}
	return "[ ]"
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
