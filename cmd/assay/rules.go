package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"assay/internal/output"
	"assay/pkg/rules"
)

func rulesCmd() *cli.Command {
	return &cli.Command{
		Name:   "rules",
		Usage:  "Show the rule-table inventory driving the analyzers",
		Action: runRulesCmd,
	}
}

// inventoryRow is one ecosystem's tech-rule count with its category spread.
type inventoryRow struct {
	Ecosystem  string         `json:"ecosystem" toon:"ecosystem"`
	Rules      int            `json:"rules" toon:"rules"`
	Categories map[string]int `json:"categories" toon:"categories"`
}

// buildInventory groups tech rules by their ecosystem prefix ("npm:react"
// belongs to "npm") and counts categories within each group.
func buildInventory(t *rules.Table) []inventoryRow {
	byEco := make(map[string]*inventoryRow)
	for _, key := range t.TechKeys() {
		eco, _, found := strings.Cut(key, ":")
		if !found {
			eco = "other"
		}
		row, ok := byEco[eco]
		if !ok {
			row = &inventoryRow{Ecosystem: eco, Categories: make(map[string]int)}
			byEco[eco] = row
		}
		rule, _ := t.TechByKey(key)
		row.Rules++
		row.Categories[string(rule.Category)]++
	}

	out := make([]inventoryRow, 0, len(byEco))
	for _, row := range byEco {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ecosystem < out[j].Ecosystem })
	return out
}

// describeCategories renders a category spread like "framework: 4, tool: 2".
func describeCategories(categories map[string]int) string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %d", name, categories[name]))
	}
	return strings.Join(parts, ", ")
}

func runRulesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	table := cfg.RuleTable()
	inventory := buildInventory(table)

	formatter, err := output.NewFormatter(resolveFormat(c, cfg), c.String("output"), true)
	if err != nil {
		return err
	}
	defer formatter.Close()

	var rows [][]string
	for _, row := range inventory {
		rows = append(rows, []string{
			row.Ecosystem,
			fmt.Sprintf("%d", row.Rules),
			describeCategories(row.Categories),
		})
	}

	return formatter.Output(output.NewTable(
		"Rule Inventory",
		[]string{"Ecosystem", "Tech Rules", "Categories"},
		rows,
		[]string{
			fmt.Sprintf("Tech: %d", len(table.Tech)),
			fmt.Sprintf("Sections: %d", len(table.Sections)),
			fmt.Sprintf("Scan: %d", len(table.Security)+len(table.Performance)),
		},
		inventory,
	))
}
