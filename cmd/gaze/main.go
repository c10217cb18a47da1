// Package main provides the gaze command, an interactive console around the
// vision-grounded browser controller. It drives the same tool surface an
// agent would use, which makes it the reference harness for manual testing.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/entrhq/gaze/pkg/browser"
	"github.com/entrhq/gaze/pkg/browser/mark"
	"github.com/entrhq/gaze/pkg/config"
	"github.com/entrhq/gaze/pkg/llm"
	"github.com/entrhq/gaze/pkg/llm/openai"
	"github.com/entrhq/gaze/pkg/logging"
	"github.com/entrhq/gaze/pkg/tools"
	browsertools "github.com/entrhq/gaze/pkg/tools/browser"
)

const version = "0.1.0"

func main() {
	var (
		configPath  string
		userID      string
		outputDir   string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "path to config file (default ~/.gaze/config.yaml)")
	flag.StringVar(&userID, "user", "console", "user ID for session ownership")
	flag.StringVar(&outputDir, "out", ".", "directory for saved screenshots")
	flag.BoolVar(&showVersion, "version", false, "print version and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("gaze v%s\n", version)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nshutting down")
		cancel()
	}()

	if err := run(ctx, configPath, userID, outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, userID, outputDir string) error {
	if configPath == "" {
		var err error
		configPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, logErr := logging.NewLogger("main")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging unavailable: %v\n", logErr)
	}
	defer logger.Close()

	browserLogger, _ := logging.NewLogger("browser")
	defer browserLogger.Close()

	manager, err := browser.NewManager(optionsFromConfig(cfg), browserLogger)
	if err != nil {
		return err
	}
	defer manager.Close(context.Background(), userID)

	var provider llm.Provider
	if p, err := newProvider(cfg); err == nil {
		provider = p
	} else {
		logger.Warnf("page analysis unavailable: %v", err)
	}

	sender := func(user string, png []byte) error {
		path, err := savePNG(outputDir, png)
		if err != nil {
			return err
		}
		fmt.Printf("[screenshot for %s saved to %s]\n", user, path)
		return nil
	}

	registry := browsertools.NewToolRegistry(manager, provider, sender)
	console := newConsole(registry.RegisterTools(), userID, outputDir)

	fmt.Printf("gaze v%s — type 'help' for commands, 'exit' to quit\n", version)
	if logger.LogPath() != "" {
		fmt.Printf("logs: %s\n", logger.LogPath())
	}

	return console.loop(ctx)
}

func optionsFromConfig(cfg *config.Config) browser.Options {
	return browser.Options{
		AllowPrivateNetwork: cfg.Security.AllowPrivateNetwork,
		AllowedDomains:      cfg.Security.AllowedDomains,
		BlockedDomains:      cfg.Security.BlockedDomains,
		ViewportWidth:       cfg.Browser.ViewportWidth,
		ViewportHeight:      cfg.Browser.ViewportHeight,
		IdleTimeout:         cfg.Browser.IdleTimeout(),
		NavigationTimeout:   cfg.Browser.NavigationTimeout(),
		PostActionWait:      cfg.Browser.PostActionWait(),
		UserScreenshotWait:  cfg.Browser.UserScreenshotWait(),
		MarkMode:            mark.Mode(cfg.Marking.Mode),
		MaxMarks:            cfg.Marking.MaxMarks,
		MinElementArea:      cfg.Marking.MinArea,
		NMSIoUThreshold:     cfg.Marking.IoUThreshold,
		ContainMargin:       cfg.Marking.ContainMargin,
	}
}

func newProvider(cfg *config.Config) (llm.Provider, error) {
	return openai.NewProvider(cfg.LLM.APIKey,
		openai.WithModel(cfg.LLM.Model),
		openai.WithBaseURL(cfg.LLM.BaseURL),
		openai.WithPageTextBudget(cfg.LLM.MaxTokens),
	)
}

// console is a line-oriented driver over the tool set.
type console struct {
	tools     map[string]tools.Tool
	userID    string
	outputDir string
	reader    *bufio.Reader
}

func newConsole(toolSet []tools.Tool, userID, outputDir string) *console {
	byName := make(map[string]tools.Tool, len(toolSet))
	for _, tool := range toolSet {
		byName[tool.Name()] = tool
	}
	return &console{
		tools:     byName,
		userID:    userID,
		outputDir: outputDir,
		reader:    bufio.NewReader(os.Stdin),
	}
}

func (c *console) loop(ctx context.Context) error {
	for {
		fmt.Print("> ")
		line, err := c.reader.ReadString('\n')
		if err != nil {
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}
		if line == "help" {
			c.printHelp()
			continue
		}

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		name, argsXML, err := c.parseCommand(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		tool, ok := c.tools[name]
		if !ok {
			fmt.Printf("error: tool %s is not available\n", name)
			continue
		}

		result, err := tool.Execute(ctx, c.userID, argsXML)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}

		fmt.Println(result.Text)
		if result.Image != nil {
			path, err := savePNG(c.outputDir, result.Image)
			if err != nil {
				fmt.Printf("error saving screenshot: %v\n", err)
				continue
			}
			fmt.Printf("[screenshot saved to %s]\n", path)
		}
	}
}

// parseCommand maps a console line to a tool name and its XML arguments.
func (c *console) parseCommand(line string) (string, []byte, error) {
	fields := strings.Fields(line)
	cmd, rest := fields[0], fields[1:]

	arg := func(pairs ...string) []byte {
		var b strings.Builder
		b.WriteString("<arguments>")
		for i := 0; i+1 < len(pairs); i += 2 {
			fmt.Fprintf(&b, "<%s>%s</%s>", pairs[i], xmlEscape(pairs[i+1]), pairs[i])
		}
		b.WriteString("</arguments>")
		return []byte(b.String())
	}

	switch cmd {
	case "open":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("usage: open <url>")
		}
		return "browser_open", arg("url", rest[0]), nil
	case "click":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("usage: click <element-id>")
		}
		return "browser_click", arg("element_id", rest[0]), nil
	case "clickxy":
		if len(rest) != 2 {
			return "", nil, fmt.Errorf("usage: clickxy <x> <y>")
		}
		return "browser_click_xy", arg("x", rest[0], "y", rest[1]), nil
	case "clickrel":
		if len(rest) != 2 {
			return "", nil, fmt.Errorf("usage: clickrel <x> <y>")
		}
		return "browser_click_rel", arg("x", rest[0], "y", rest[1]), nil
	case "clickin":
		if len(rest) != 3 {
			return "", nil, fmt.Errorf("usage: clickin <element-id> <x> <y>")
		}
		return "browser_click_in_element", arg("element_id", rest[0], "x", rest[1], "y", rest[2]), nil
	case "input":
		if len(rest) < 2 {
			return "", nil, fmt.Errorf("usage: input <element-id> <text>")
		}
		return "browser_input", arg("element_id", rest[0], "text", strings.Join(rest[1:], " ")), nil
	case "type":
		if len(rest) < 1 {
			return "", nil, fmt.Errorf("usage: type <text>")
		}
		return "browser_input", arg("text", strings.Join(rest, " ")), nil
	case "scroll":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("usage: scroll <up|down|top|bottom>")
		}
		return "browser_scroll", arg("direction", rest[0]), nil
	case "element":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("usage: element <element-id>")
		}
		return "browser_get_element", arg("element_id", rest[0]), nil
	case "view":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("usage: view <element-id>")
		}
		return "browser_view_element", arg("element_id", rest[0]), nil
	case "crop":
		if len(rest) != 4 && len(rest) != 5 {
			return "", nil, fmt.Errorf("usage: crop <x> <y> <width> <height> [zoom]")
		}
		pairs := []string{"x", rest[0], "y", rest[1], "width", rest[2], "height", rest[3]}
		if len(rest) == 5 {
			pairs = append(pairs, "zoom", rest[4])
		}
		return "browser_crop", arg(pairs...), nil
	case "wait":
		if len(rest) != 1 {
			return "", nil, fmt.Errorf("usage: wait <seconds>")
		}
		return "browser_wait", arg("seconds", rest[0]), nil
	case "shot":
		return "browser_screenshot", arg(), nil
	case "send":
		if len(rest) == 1 {
			switch rest[0] {
			case "confirm":
				return "browser_send_screenshot", arg("confirm", "true"), nil
			case "cancel":
				return "browser_send_screenshot", arg("cancel", "true"), nil
			}
		}
		return "browser_send_screenshot", arg(), nil
	case "analyze":
		if len(rest) < 1 {
			return "", nil, fmt.Errorf("usage: analyze <question>")
		}
		return "analyze_page", arg("question", strings.Join(rest, " ")), nil
	case "close":
		return "browser_close", arg(), nil
	default:
		return "", nil, fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (c *console) printHelp() {
	fmt.Print(`commands:
  open <url>                       open a page
  click <id>                       click a marked element
  clickxy <x> <y>                  click at absolute CSS pixels
  clickrel <x> <y>                 click at viewport fractions (0-1)
  clickin <id> <x> <y>             click inside an element at fractions
  input <id> <text>                enter text into a marked element
  type <text>                      type into the focused element
  scroll <up|down|top|bottom>      scroll the page
  element <id>                     show element attributes
  view <id>                        screenshot one element
  crop <x> <y> <w> <h> [zoom]      capture a viewport region
  wait <seconds>                   wait for dynamic content, then re-mark
  shot                             fresh marked screenshot
  send [confirm|cancel]            stage / deliver / discard a screenshot
  analyze <question>               ask a model about the page
  close                            close the browser session
  exit                             quit
`)
}

func xmlEscape(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}

var shotCounter int

func savePNG(dir string, png []byte) (string, error) {
	shotCounter++
	path := filepath.Join(dir, fmt.Sprintf("gaze-%03d.png", shotCounter))
	if err := os.WriteFile(path, png, 0600); err != nil {
		return "", err
	}
	return path, nil
}
