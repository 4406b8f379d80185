package cli

import (
	"fmt"
	"io"
	"math/rand/v2"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneyquest/moneyquest/internal/app/engagement"
	"github.com/moneyquest/moneyquest/internal/app/minigame"
	"github.com/moneyquest/moneyquest/internal/domain"
	"github.com/moneyquest/moneyquest/internal/infra/catalog"
	"github.com/moneyquest/moneyquest/internal/infra/sqlite"
)

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().Uint64("seed", 1, "Seed for mini-game draws")
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play a scripted session against the built-in catalog",
	Long: `Run a short scripted play-through in-process: a mission, a refused
purchase, a mini-game and its replays, a budget-planner session and a
purchase. Every outcome and notification is printed, then the coin journal.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed, _ := cmd.Flags().GetUint64("seed")
		return runDemo(cmd.OutOrStdout(), seed)
	},
}

func runDemo(out io.Writer, seed uint64) error {
	db, err := sqlite.Open("")
	if err != nil {
		return err
	}
	defer db.Close()

	cat := catalog.Default()
	sink := domain.SinkFunc(func(n domain.Notification) {
		fmt.Fprintf(out, "    🔔 %s | %s\n", n.Title, n.Text)
	})
	game := engagement.New(cat, engagement.DefaultConfig(), db, nil, sink)

	cfg := minigame.DefaultConfig()
	cfg.TickInterval = time.Hour // the script never waits on the clock
	sessions := minigame.NewManager(cfg, cat, game, nil)
	defer sessions.Shutdown()
	sessions.SetRandSource(func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed))
	})

	fmt.Fprintf(out, "Starting balance: %d\n", game.Balance())

	step := func(label string, o engagement.Outcome) {
		status := "✔"
		if !o.Applied {
			status = "·"
		}
		fmt.Fprintf(out, "%s %-32s %-18s %+5d → %d\n", status, label, o.Reason, o.Delta, o.Balance)
	}
	score := func(v int) *int { return &v }

	step("complete mission 1", game.CompleteMission(1))
	step("buy item 5", game.Purchase(5))
	step("report game 2, score 10", game.ReportResult(2, score(10)))
	step("report game 2, score 15", game.ReportResult(2, score(15)))
	step("report game 2, score 10", game.ReportResult(2, score(10)))

	// Budget planner played through a session, following the suggested plan.
	sess, err := sessions.Open(5)
	if err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	for _, line := range cat.Budget.Lines {
		if _, err := sess.Move(minigame.Move{Action: minigame.ActionAllocate, Line: line.ID, Value: line.Suggested}); err != nil {
			return fmt.Errorf("allocate line %d: %w", line.ID, err)
		}
	}
	if _, err := sess.Move(minigame.Move{Action: minigame.ActionSubmit}); err != nil {
		return fmt.Errorf("submit plan: %w", err)
	}
	if v := sess.View(); v.Outcome != nil {
		step(fmt.Sprintf("budget session, score %d", v.Score), *v.Outcome)
	}

	step("buy item 5", game.Purchase(5))

	stats := game.Stats()
	fmt.Fprintf(out, "\nBalance %d · missions %d · purchases %d · games %d · achievements %d/%d\n",
		stats.Balance, stats.CompletedMissions, stats.Purchases, stats.CompletedGames, stats.Unlocked, stats.Achievements)

	entries, err := db.ListEntries(0)
	if err != nil {
		return fmt.Errorf("list journal: %w", err)
	}
	fmt.Fprintln(out, "\nJournal:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tENTRY\tAMOUNT\tBALANCE\tREF")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n", e.ID, e.Type, e.EntryType, e.Amount, e.Balance, e.Reference)
	}
	return tw.Flush()
}
