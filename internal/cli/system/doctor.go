package system

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/punchcal/internal/cli"
	"github.com/julianstephens/punchcal/internal/constants"
	"github.com/julianstephens/punchcal/internal/keyring"
	"github.com/julianstephens/punchcal/internal/logger"
)

var processesFunc = ps.Processes

type DoctorCmd struct {
	Offline bool `help:"Skip the backend checks."`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	if keyring.IsAvailable() {
		fmt.Printf("✓ OS keyring: OK\n")
	} else {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   keyring unavailable, set %s to provide a session token\n", constants.EnvSessionToken)
	}

	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	switch {
	case cmd.Offline:
		fmt.Printf("⊘ Backend session: SKIPPED (offline)\n")
	case !dbReachable:
		fmt.Printf("⊘ Backend session: SKIPPED (database not reachable)\n")
	default:
		if skipped, err := checkSession(ctx); skipped != "" {
			fmt.Printf("⊘ Backend session: SKIPPED (%s)\n", skipped)
		} else if err != nil {
			fmt.Printf("❌ Backend session: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Backend session: OK\n")
		}
	}

	if others, err := otherInstances(); err != nil {
		fmt.Printf("⊘ Running instances: SKIPPED (%v)\n", err)
	} else if len(others) > 0 {
		fmt.Printf("⚠ Running instances: WARNING\n")
		fmt.Printf("   %d other %s process(es) running: pid %s\n", len(others), constants.AppName, joinPIDs(others))
	} else {
		fmt.Printf("✓ Running instances: OK\n")
	}

	if path := logger.Path(); path != "" {
		fmt.Printf("\nLog file: %s\n", path)
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaStatus()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("schema version %d is behind %d, run '%s migrate'", current, latest, constants.AppName)
	}
	if current > latest {
		return fmt.Errorf("schema version %d is newer than this binary supports (%d)", current, latest)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// checkSession returns a non-empty skip reason when there is nothing to check.
func checkSession(ctx *cli.Context) (string, error) {
	if ctx.API == nil || ctx.API.Endpoint() == "" {
		return "", fmt.Errorf("no API endpoint configured, pass --api-url or set %s", constants.SettingAPIURL)
	}
	token, err := ctx.Session.Token()
	if err != nil {
		return "", err
	}
	if token == "" {
		return "not logged in", nil
	}

	c, cancel := context.WithTimeout(context.Background(), constants.DefaultAPITimeout)
	defer cancel()
	res := ctx.Session.EnsureLogin(c)
	switch {
	case res.LoggedIn:
		return "", nil
	case res.Err != nil:
		return "", res.Err
	default:
		return "", fmt.Errorf("session rejected: %s", res.Code)
	}
}

// otherInstances lists the pids of punchcal processes other than this one.
func otherInstances() ([]int, error) {
	procs, err := processesFunc()
	if err != nil {
		return nil, err
	}
	self := os.Getpid()
	var pids []int
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.TrimSuffix(p.Executable(), ".exe") == constants.AppName {
			pids = append(pids, p.Pid())
		}
	}
	return pids, nil
}

func joinPIDs(pids []int) string {
	parts := make([]string, len(pids))
	for i, pid := range pids {
		parts[i] = fmt.Sprint(pid)
	}
	return strings.Join(parts, ", ")
}
