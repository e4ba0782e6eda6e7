// Command panelctl drives the bot control API from a terminal.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DenisKhanov/BotPanel/internal/logcfg"
	"github.com/DenisKhanov/BotPanel/internal/panel/api"
	"github.com/DenisKhanov/BotPanel/internal/panel/service"
	"github.com/DenisKhanov/BotPanel/internal/panel/view"
	"github.com/alecthomas/kong"
)

// Globals are the flags shared by every command.
type Globals struct {
	API         string        `help:"Control API base URL." env:"CONTROL_API_URL" default:"http://localhost:5000"`
	Timeout     time.Duration `help:"Timeout of one control API call." env:"REQUEST_TIMEOUT" default:"15s"`
	LogLevel    string        `help:"Log level." env:"LOG_LEVEL" default:"warn"`
	VerifyToken bool          `help:"Check the bot token with Telegram before start." env:"VERIFY_TOKEN"`
}

// stdout is where command results go.
var stdout io.Writer = os.Stdout

type StartCmd struct {
	Token     string `help:"Telegram bot token." env:"TOKEN_BOT" required:""`
	ChannelID string `name:"channel-id" help:"Telegram channel id." env:"CHANNEL_ID" required:""`
	Language  string `help:"Bot language (en, pt)." default:"en"`
}

type StopCmd struct{}

type StatusCmd struct{}

type LanguageCmd struct {
	Language string `arg:"" help:"New language (en, pt)."`
	Current  string `help:"Language the bot uses now; nothing is sent when equal. Empty means unknown, the change is always sent."`
}

type WatchCmd struct {
	Interval time.Duration `help:"Polling interval." default:"3s"`
}

// CLI is the panelctl command tree.
type CLI struct {
	Globals

	Start    StartCmd    `cmd:"" help:"Start the bot."`
	Stop     StopCmd     `cmd:"" help:"Stop the bot."`
	Status   StatusCmd   `cmd:"" help:"Show whether the bot is running."`
	Language LanguageCmd `cmd:"" help:"Change the bot language."`
	Watch    WatchCmd    `cmd:"" help:"Poll the status until interrupted."`
}

func main() {
	var cli CLI
	parser := newParser(&cli)
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	kctx.FatalIfErrorf(logcfg.RunLoggerConfig(cli.LogLevel, ""))
	// FatalIfErrorf exits with a non-zero code on any command error
	kctx.FatalIfErrorf(kctx.Run(&cli.Globals))
}

func newParser(cli *CLI) *kong.Kong {
	return kong.Must(cli,
		kong.Name("panelctl"),
		kong.Description("Start, stop and watch the bot through its control API."),
		kong.UsageOnError(),
	)
}

// newPanel builds a panel the same way the server does.
// An empty language leaves the recorded language unknown.
func (g *Globals) newPanel(language string) *service.Panel {
	opts := service.Options{DefaultLanguage: language, LanguageUnknown: language == ""}
	if g.VerifyToken {
		opts.Verifier = api.NewTelegramVerifier("", g.Timeout)
	}
	return service.NewPanel(api.NewControlAPI(g.API, g.Timeout), opts)
}

func (g *Globals) newContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), g.Timeout)
}

// print writes the banner and, when known, the run state.
func (g *Globals) print(vm view.ViewModel) {
	if vm.MessageText != "" {
		fmt.Fprintf(stdout, "[%s] %s\n", vm.MessageType, vm.MessageText)
	}
	if vm.RunState != "unknown" {
		fmt.Fprintln(stdout, vm.StatusText)
	}
}

func (c *StartCmd) Run(g *Globals) error {
	p := g.newPanel(c.Language)
	defer p.Close()
	ctx, cancel := g.newContext()
	defer cancel()
	err := p.Start(ctx, c.Token, c.ChannelID, c.Language)
	g.print(p.View())
	return err
}

func (c *StopCmd) Run(g *Globals) error {
	p := g.newPanel("")
	defer p.Close()
	ctx, cancel := g.newContext()
	defer cancel()
	err := p.Stop(ctx)
	g.print(p.View())
	return err
}

func (c *StatusCmd) Run(g *Globals) error {
	p := g.newPanel("")
	defer p.Close()
	ctx, cancel := g.newContext()
	defer cancel()
	if err := p.CheckStatus(ctx); err != nil {
		return fmt.Errorf("check status: %w", err)
	}
	g.print(p.View())
	return nil
}

func (c *LanguageCmd) Run(g *Globals) error {
	p := g.newPanel(c.Current)
	defer p.Close()
	ctx, cancel := g.newContext()
	defer cancel()
	err := p.ChangeLanguage(ctx, c.Language)
	g.print(p.View())
	return err
}

func (c *WatchCmd) Run(g *Globals) error {
	p := g.newPanel("")
	defer p.Close()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service.NewPoller(&printingChecker{panel: p}, c.Interval, g.Timeout).Run(ctx)
	return nil
}

// printingChecker prints the status line whenever it changes.
type printingChecker struct {
	panel *service.Panel
	last  string
}

func (pc *printingChecker) CheckStatus(ctx context.Context) error {
	if err := pc.panel.CheckStatus(ctx); err != nil {
		return err
	}
	if vm := pc.panel.View(); vm.StatusText != pc.last {
		pc.last = vm.StatusText
		fmt.Fprintf(stdout, "%s %s\n", time.Now().Format(time.TimeOnly), vm.StatusText)
	}
	return nil
}
