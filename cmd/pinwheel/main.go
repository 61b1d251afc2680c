package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"pinwheel/internal/app"
	"pinwheel/internal/config"
	"pinwheel/internal/geometry"
	"pinwheel/internal/keys"
	"pinwheel/internal/metrics"
	"pinwheel/internal/version"
	"pinwheel/internal/wheel"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show current version")
		showConfig  = flag.Bool("show-config", false, "Show current configuration location and contents")
		resetConfig = flag.Bool("reset-config", false, "Reset the wheel configuration to eight empty slots")
		showWheel   = flag.Bool("show-wheel", false, "Print the configured wheel tree")
		setSlot     = flag.String("set-slot", "", "Configure a slot; path is dot-separated indices from the root, e.g. --set-slot=3.5")
		clearSlot   = flag.String("clear-slot", "", "Clear a slot back to empty, e.g. --clear-slot=3.5")
		slotType    = flag.String("type", "", "Slot action type for --set-slot: keystroke, command, launch, or folder")
		slotValue   = flag.String("value", "", "Slot action value for --set-slot: key combo, command line, or program path")
		slotLabel   = flag.String("label", "", "Slot label for --set-slot (defaults to the value)")
		slotArgs    = flag.String("args", "", "Space-separated program arguments for launch slots")
		showStats   = flag.Bool("stats", false, "Show usage statistics")
		resetStats  = flag.Bool("reset-stats", false, "Clear all usage statistics")
	)
	flag.Parse()

	switch {
	case *showVersion:
		fmt.Printf("Pinwheel %s\n", version.VERSION)
		return
	case *showConfig:
		handleShowConfig()
		return
	case *resetConfig:
		handleResetConfig()
		return
	case *showWheel:
		handleShowWheel()
		return
	case *setSlot != "":
		handleSetSlot(*setSlot, *slotType, *slotValue, *slotLabel, *slotArgs)
		return
	case *clearSlot != "":
		handleClearSlot(*clearSlot)
		return
	case *showStats:
		handleShowStats()
		return
	case *resetStats:
		handleResetStats()
		return
	}

	daemon := app.NewDaemon()
	if err := daemon.Initialize(); err != nil {
		log.Fatalf("Failed to initialize daemon: %v", err)
	}
	if err := daemon.Run(); err != nil {
		log.Fatalf("Daemon error: %v", err)
	}
}

func handleShowConfig() {
	settingsPath, err := config.SettingsPath()
	if err != nil {
		fmt.Printf("❌ Error getting config path: %v\n", err)
		os.Exit(1)
	}
	wheelPath, _ := config.WheelPath()

	fmt.Printf("📁 Settings file: %s\n", settingsPath)
	if content, err := os.ReadFile(settingsPath); err == nil {
		fmt.Println(string(content))
	} else {
		fmt.Println("📝 Settings file does not exist yet (defaults in effect)")
	}
	fmt.Printf("📁 Wheel file: %s\n", wheelPath)
}

func handleResetConfig() {
	path, err := config.WheelPath()
	if err != nil {
		fmt.Printf("❌ Error getting wheel path: %v\n", err)
		os.Exit(1)
	}
	if err := wheel.Save(path, wheel.New()); err != nil {
		fmt.Printf("❌ Error resetting wheel config: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("🔄 Wheel configuration reset to eight empty slots")
}

func handleShowWheel() {
	root, err := loadWheel()
	if err != nil {
		fmt.Printf("❌ Error loading wheel config: %v\n", err)
		os.Exit(1)
	}
	printWheel(root, nil)
}

func printWheel(w *wheel.Wheel, path []int) {
	indent := strings.Repeat("  ", len(path))
	for i, slot := range w.Slots {
		pos := fmt.Sprintf("%-10s", geometry.SectorName(i))
		switch slot.Kind {
		case wheel.KindEmpty:
			fmt.Printf("%s%d %s (empty)\n", indent, i, pos)
		case wheel.KindFolder:
			fmt.Printf("%s%d %s 📂 %s\n", indent, i, pos, slot.Label)
			printWheel(slot.Child, append(path, i))
		default:
			fmt.Printf("%s%d %s %s: %s %s\n", indent, i, pos, slot.Label, slot.Kind, slot.Value)
		}
	}
}

func handleSetSlot(pathSpec, slotType, value, label, args string) {
	path, err := parsePathSpec(pathSpec)
	if err != nil {
		fmt.Printf("❌ Invalid slot path %q: %v\n", pathSpec, err)
		os.Exit(1)
	}

	kind, err := wheel.KindFromString(slotType)
	if err != nil || kind == wheel.KindEmpty || kind == wheel.KindBack {
		fmt.Printf("❌ --type must be keystroke, command, launch, or folder\n")
		os.Exit(1)
	}
	if kind != wheel.KindFolder && value == "" {
		fmt.Printf("❌ --value is required for %s slots\n", kind)
		os.Exit(1)
	}
	if kind == wheel.KindKeystroke {
		if _, err := keys.ParseCombo(value); err != nil {
			fmt.Printf("❌ Invalid key combo %q: %v\n", value, err)
			os.Exit(1)
		}
	}

	root, err := loadWheel()
	if err != nil {
		fmt.Printf("❌ Error loading wheel config: %v\n", err)
		os.Exit(1)
	}

	parent, err := root.Lookup(path[:len(path)-1])
	if err != nil {
		fmt.Printf("❌ Slot path %q: %v\n", pathSpec, err)
		os.Exit(1)
	}

	if label == "" {
		label = value
		if kind == wheel.KindFolder {
			label = "Folder"
		}
	}
	slot := wheel.Slot{Label: label, Kind: kind, Value: value}
	if kind == wheel.KindLaunch && args != "" {
		slot.Args = strings.Fields(args)
	}
	if kind == wheel.KindFolder {
		slot.Value = ""
		slot.Child = wheel.NewSubfolder()
	}

	idx := path[len(path)-1]
	if err := parent.SetSlot(idx, slot); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if err := saveWheel(root); err != nil {
		fmt.Printf("❌ Error saving wheel config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ Slot %s set to %s (%s)\n", pathSpec, label, kind)
}

func handleClearSlot(pathSpec string) {
	path, err := parsePathSpec(pathSpec)
	if err != nil {
		fmt.Printf("❌ Invalid slot path %q: %v\n", pathSpec, err)
		os.Exit(1)
	}

	root, err := loadWheel()
	if err != nil {
		fmt.Printf("❌ Error loading wheel config: %v\n", err)
		os.Exit(1)
	}
	parent, err := root.Lookup(path[:len(path)-1])
	if err != nil {
		fmt.Printf("❌ Slot path %q: %v\n", pathSpec, err)
		os.Exit(1)
	}

	idx := path[len(path)-1]
	if err := parent.SetSlot(idx, wheel.Slot{Label: wheel.EmptyLabel}); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	if err := saveWheel(root); err != nil {
		fmt.Printf("❌ Error saving wheel config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("🗑️  Slot %s cleared\n", pathSpec)
}

func handleShowStats() {
	mgr := openMetrics()

	total, err := mgr.GetTotalMetrics()
	if err != nil {
		fmt.Printf("❌ Error reading metrics: %v\n", err)
		os.Exit(1)
	}
	formatter := metrics.NewStatsFormatter()
	fmt.Println(formatter.FormatTotalStats(total))

	if recent, err := mgr.GetRecentDays(7); err == nil && len(recent) > 0 {
		fmt.Println()
		fmt.Println(formatter.FormatWeeklyStats(recent))
	}
}

func handleResetStats() {
	mgr := openMetrics()
	if err := mgr.ClearAllMetrics(); err != nil {
		fmt.Printf("❌ Error clearing metrics: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("🗑️  All usage statistics have been cleared")
}

func openMetrics() *metrics.Manager {
	dir, err := config.MetricsDir()
	if err != nil {
		fmt.Printf("❌ Error getting metrics directory: %v\n", err)
		os.Exit(1)
	}
	mgr, err := metrics.NewManager(dir)
	if err != nil {
		fmt.Printf("❌ Error initializing metrics: %v\n", err)
		os.Exit(1)
	}
	return mgr
}

func loadWheel() (*wheel.Wheel, error) {
	path, err := config.WheelPath()
	if err != nil {
		return nil, err
	}
	return wheel.Load(path)
}

func saveWheel(root *wheel.Wheel) error {
	path, err := config.WheelPath()
	if err != nil {
		return err
	}
	return wheel.Save(path, root)
}

func parsePathSpec(spec string) ([]int, error) {
	parts := strings.Split(spec, ".")
	path := make([]int, len(parts))
	for i, part := range parts {
		idx, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("%q is not a slot index", part)
		}
		if idx < 0 || idx >= wheel.NumSlots {
			return nil, fmt.Errorf("slot index %d out of range", idx)
		}
		path[i] = idx
	}
	return path, nil
}
