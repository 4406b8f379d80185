package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/moneyquest/moneyquest/internal/infra/catalog"
)

// ─── Catalog CLI ────────────────────────────────────────────────────────────
// Seed content is YAML. These commands check an override file before it is
// handed to `serve --catalog`, and export the built-in one as a template.

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	catalogShowCmd.Flags().StringP("file", "f", "", "Catalog YAML file (default: built-in)")
	catalogExportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	catalogExportCmd.Flags().Bool("force", false, "Overwrite an existing output file")
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate seed content",
}

// ─── catalog show ───────────────────────────────────────────────────────────

var catalogShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the missions, shop, mini-games and achievements of a catalog",
	Args:  cobra.NoArgs,
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	cat, err := catalog.Load(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting coins: %d\n\n", cat.StartingCoins)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MISSION\tREWARD\tDIFFICULTY\tTITLE")
	for _, m := range cat.Missions {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s %s\n", m.ID, m.Reward, m.Difficulty, m.Icon, m.Title)
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "ITEM\tPRICE\tCATEGORY\tNAME")
	for _, it := range cat.ShopItems {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s %s\n", it.ID, it.Price, it.Category, it.Icon, it.Name)
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "GAME\tREWARD\tKIND\tTITLE")
	for _, g := range cat.MiniGames {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s %s\n", g.ID, g.Reward, g.Kind, g.Icon, g.Title)
	}
	fmt.Fprintln(tw, "\t\t\t")
	fmt.Fprintln(tw, "ACHIEVEMENT\tNEEDS\tMETRIC\tTITLE")
	for _, a := range cat.Achievements {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s %s\n", a.ID, a.Requirement, a.Metric, a.Icon, a.Title)
	}
	return tw.Flush()
}

// ─── catalog validate ───────────────────────────────────────────────────────

var catalogValidateCmd = &cobra.Command{
	Use:   "validate FILE",
	Short: "Check a catalog file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogValidate,
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	info, err := os.Stat(args[0])
	if err != nil {
		return fmt.Errorf("cannot read catalog file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, expected a YAML file", args[0])
	}
	cat, err := catalog.Load(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ %s: %d missions, %d items, %d games, %d achievements\n",
		args[0], len(cat.Missions), len(cat.ShopItems), len(cat.MiniGames), len(cat.Achievements))
	return nil
}

// ─── catalog export ─────────────────────────────────────────────────────────

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the built-in catalog as YAML",
	Args:  cobra.NoArgs,
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	data := catalog.DefaultYAML()
	dest, _ := cmd.Flags().GetString("output")
	if dest == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	force, _ := cmd.Flags().GetBool("force")
	if _, err := os.Stat(dest); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", dest)
	}
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Catalog written to %s\n", dest)
	fmt.Fprintf(cmd.OutOrStdout(), "   Serve with: moneyquest serve --catalog %s\n", dest)
	return nil
}
