// Command listdemo shows a large virtualized list in the terminal. Rows can be
// reordered by dragging them with the mouse.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ayn2op/listview"
	"github.com/ayn2op/listview/help"
	"github.com/ayn2op/listview/keybind"
	"github.com/ayn2op/listview/term"
	"github.com/gdamore/tcell/v2"
)

var words = strings.Fields("lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua")

type keyMap struct {
	list   term.ListKeyMap
	Yank   keybind.Keybind
	Delete keybind.Keybind
	Help   keybind.Keybind
	Quit   keybind.Keybind
}

func newKeyMap(list term.ListKeyMap) *keyMap {
	return &keyMap{
		list:   list,
		Yank:   keybind.NewKeybind(keybind.WithKeys("y"), keybind.WithHelp("y", "copy")),
		Delete: keybind.NewKeybind(keybind.WithKeys("d", "delete"), keybind.WithHelp("d", "delete")),
		Help:   keybind.NewKeybind(keybind.WithKeys("?"), keybind.WithHelp("?", "more")),
		Quit:   keybind.NewKeybind(keybind.WithKeys("q", "ctrl+c"), keybind.WithHelp("q", "quit")),
	}
}

func (k *keyMap) ShortHelp() []keybind.Keybind {
	return append(k.list.ShortHelp(), k.Yank, k.Help, k.Quit)
}

func (k *keyMap) FullHelp() [][]keybind.Keybind {
	return append(k.list.FullHelp(), []keybind.Keybind{k.Yank, k.Delete}, []keybind.Keybind{k.Help, k.Quit})
}

func generate(n int) []string {
	items := make([]string, n)
	for i := range items {
		count := 2 + (i*7)%len(words)
		var b strings.Builder
		fmt.Fprintf(&b, "%04d", i)
		for j := range count {
			b.WriteByte(' ')
			b.WriteString(words[(i+j)%len(words)])
		}
		items[i] = b.String()
	}
	return items
}

func newLogger(cfg LogConfig) (*slog.Logger, func(), error) {
	listview.SetLogLevel(cfg.Level)
	if cfg.File == "" {
		// The terminal belongs to the list; drop logs unless a file is set.
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.Level}))
	return logger, func() { f.Close() }, nil
}

func run(cfg Config) error {
	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)
	cfg.Colors.applyColors(logger)

	app := term.NewApplication().SetLogger(logger).EnableMouse(true)

	policy := &reorder{}
	delegate := term.TextDelegate[string]{ID: "text", Text: identity, Wrap: cfg.Wrap}
	renderer := term.NewTextRenderer("text", identity).SetWrap(cfg.Wrap)
	view, err := term.NewListView[string](delegate, []listview.Renderer[string]{renderer}, listview.Options[string]{
		ID:                    "listdemo",
		SupportDynamicHeights: cfg.Wrap,
		SmoothScrolling:       cfg.SmoothScrolling,
		DragAndDrop:           policy,
		Scheduler:             app.Scheduler(),
		Logger:                logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create list: %w", err)
	}
	defer view.Dispose()
	policy.list = view.List()

	view.SetBorders(term.BordersAll)
	view.SetBorderSet(term.BorderSetByName(cfg.Border))
	view.SetTitle(" listdemo ")
	view.SetFooterAlignment(term.AlignmentRight)

	list := view.List()
	updateFooter := func() {
		view.SetFooter(fmt.Sprintf(" %d/%d ", view.Cursor()+1, list.Length()))
	}
	list.Splice(0, 0, generate(cfg.Items)...)
	updateFooter()
	list.OnDidChangeContentHeight(func(int) { updateFooter() })
	view.SetChangedFunc(func(int) { updateFooter() })

	keys := newKeyMap(view.KeyMap())
	helpView := help.New().SetKeyMap(keys)

	root := term.NewStack().
		AddItem(view, term.WithName("list")).
		AddItem(helpView, term.WithName("help"), term.WithHeight(helpView.Height), term.WithEnabled(false))

	view.SetSelectedFunc(func(index int, element string) term.Command {
		logger.Info("selected row", "index", index, "element", element)
		return nil
	})
	view.SetInputFunc(func(event *tcell.EventKey) term.Command {
		cursor := view.Cursor()
		switch {
		case keybind.Matches(event, keys.Quit):
			return term.QuitCommand{}
		case keybind.Matches(event, keys.Help):
			helpView.SetShowAll(!helpView.ShowAll())
			return term.RedrawCommand{}
		case keybind.Matches(event, keys.Yank):
			if cursor < 0 {
				return nil
			}
			return term.SetClipboardCommand(list.Element(cursor))
		case keybind.Matches(event, keys.Delete):
			if cursor < 0 {
				return nil
			}
			list.Splice(cursor, 1)
			view.SetCursor(cursor)
			updateFooter()
			return term.RedrawCommand{}
		}
		return nil
	})

	return app.SetRoot(root).Run()
}

func identity(s string) string { return s }

func main() {
	configPath := flag.String("config", "", "Path to a TOML configuration file")
	items := flag.Int("items", 0, "Number of generated rows")
	wrap := flag.Bool("wrap", false, "Wrap long rows")
	smooth := flag.Bool("smooth", false, "Animate wheel scrolling")
	border := flag.String("border", "", "Border set: plain, round or thick")
	logFile := flag.String("log", "", "Write logs to this file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "listdemo: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line override the configuration file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "items":
			cfg.Items = *items
		case "wrap":
			cfg.Wrap = *wrap
		case "smooth":
			cfg.SmoothScrolling = *smooth
		case "border":
			cfg.Border = *border
		case "log":
			cfg.Log.File = *logFile
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "listdemo: %v\n", err)
		os.Exit(2)
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "listdemo: %v\n", err)
		os.Exit(1)
	}
}
