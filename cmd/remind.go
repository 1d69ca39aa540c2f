package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"messmate/internal/config"
	"messmate/internal/ledger"
	"messmate/internal/reminder"
	"messmate/internal/store"

	"github.com/spf13/cobra"
)

type remindRuntimeState struct {
	PID       int       `json:"pid"`
	Hour      int       `json:"hour"`
	Minute    int       `json:"minute"`
	StartedAt time.Time `json:"started_at"`
}

var (
	flagRemindHour    int
	flagRemindMinute  int
	flagRemindDetach  bool
	flagRemindPIDFile string
	flagRemindLogFile string
	flagRemindChild   bool
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily attendance reminder",
	Long: "Sends a desktop notification shortly before the evening cutoff if\n" +
		"today is still unmarked. Unmarked days get auto-filled as Full, so\n" +
		"the reminder is the last chance to correct the record.",
	RunE: runRemind,
}

var remindStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show reminder process status",
	RunE:  runRemindStatus,
}

var remindStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running reminder",
	RunE:  runRemindStop,
}

func init() {
	cfg := config.DefaultConfig()
	defaultPID := filepath.Join(config.DataDir(cfg), "messmate-remind.pid")
	defaultLog := filepath.Join(config.DataDir(cfg), "messmate-remind.log")

	remindCmd.PersistentFlags().IntVar(&flagRemindHour, "hour", ledger.CutoffHour, "Hour of day to remind at (0-23)")
	remindCmd.PersistentFlags().IntVar(&flagRemindMinute, "minute", 0, "Minute of the hour to remind at")
	remindCmd.PersistentFlags().StringVar(&flagRemindPIDFile, "pid-file", defaultPID, "PID file path")
	remindCmd.PersistentFlags().StringVar(&flagRemindLogFile, "log-file", defaultLog, "Log file path for detached mode")

	remindCmd.Flags().BoolVar(&flagRemindDetach, "detach", false, "Run the reminder as a background process")
	remindCmd.Flags().BoolVar(&flagRemindChild, "child", false, "Internal: mark detached child process")
	_ = remindCmd.Flags().MarkHidden("child")

	remindCmd.AddCommand(remindStatusCmd)
	remindCmd.AddCommand(remindStopCmd)
	rootCmd.AddCommand(remindCmd)
}

func runRemind(_ *cobra.Command, _ []string) error {
	if flagRemindHour < 0 || flagRemindHour > 23 {
		return fmt.Errorf("invalid hour %d, want 0-23", flagRemindHour)
	}
	if flagRemindMinute < 0 || flagRemindMinute > 59 {
		return fmt.Errorf("invalid minute %d, want 0-59", flagRemindMinute)
	}

	if flagRemindDetach && flagRemindChild {
		return errors.New("invalid reminder launch mode")
	}

	if flagRemindDetach {
		return startRemindDetached()
	}

	return runRemindForeground()
}

func startRemindDetached() error {
	if err := ensureRemindNotRunning(flagRemindPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagRemindPIDFile), 0o750); err != nil {
		return fmt.Errorf("create reminder directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagRemindLogFile), 0o750); err != nil {
		return fmt.Errorf("create reminder log directory: %w", err)
	}

	logf, err := os.OpenFile(flagRemindLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open reminder log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...)
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached reminder: %w", err)
	}

	fmt.Printf("  Started reminder (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  Fires daily at %02d:%02d\n", flagRemindHour, flagRemindMinute)
	fmt.Printf("  PID file: %s\n", flagRemindPIDFile)
	fmt.Printf("  Log: %s\n", flagRemindLogFile)
	return nil
}

func runRemindForeground() error {
	if err := ensureRemindNotRunning(flagRemindPIDFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagRemindPIDFile), 0o750); err != nil {
		return fmt.Errorf("create reminder directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagRemindPIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagRemindPIDFile) }()

	state := remindRuntimeState{
		PID:       pid,
		Hour:      flagRemindHour,
		Minute:    flagRemindMinute,
		StartedAt: time.Now(),
	}
	_ = writeState(statePath(flagRemindPIDFile), state)
	defer func() { _ = os.Remove(statePath(flagRemindPIDFile)) }()

	cfg := loadConfig()
	st, err := store.Open(filepath.Join(config.DataDir(cfg), "messmate.db"))
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = st.Close() }()

	svc := reminder.New(reminder.Config{
		Hour:   flagRemindHour,
		Minute: flagRemindMinute,
	}, st)

	fmt.Printf("  messmate reminder running, fires daily at %02d:%02d\n", flagRemindHour, flagRemindMinute)
	fmt.Printf("  Stop with: messmate remind stop --pid-file %s\n", flagRemindPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runRemindStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagRemindPIDFile)
	if err != nil {
		fmt.Printf("  Reminder: not running (pid file not found)\n")
		return nil
	}

	if !processAlive(pid) {
		fmt.Printf("  Reminder: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	fmt.Printf("  Reminder PID: %d\n", pid)

	if st, err := readState(statePath(flagRemindPIDFile)); err == nil {
		fmt.Printf("  Fires daily at: %02d:%02d\n", st.Hour, st.Minute)
		fmt.Printf("  Running since: %s\n", st.StartedAt.Local().Format(time.RFC3339))
	}
	return nil
}

func runRemindStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagRemindPIDFile)
	if err != nil {
		return errors.New("reminder is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find reminder process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal reminder process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagRemindPIDFile)
			_ = os.Remove(statePath(flagRemindPIDFile))
			fmt.Printf("  Stopped reminder (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("reminder (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureRemindNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("reminder already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st remindRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (remindRuntimeState, error) {
	var st remindRuntimeState
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
