package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/api"
	"github.com/dmitrijs2005/fitmint/internal/client/client"
	"github.com/dmitrijs2005/fitmint/internal/client/config"
	"golang.org/x/term"
	"google.golang.org/grpc"
)

// ErrUsage marks a malformed command line.
var ErrUsage = errors.New("usage")

// Service is the part of the FitMint API the commands call.
type Service interface {
	Verify(ctx context.Context, in *api.VerifyRequest, opts ...grpc.CallOption) (*api.EventResponse, error)
	ClaimDailyReward(ctx context.Context, in *api.ClaimRequest, opts ...grpc.CallOption) (*api.ClaimResponse, error)
	CreateChallenge(ctx context.Context, in *api.CreateChallengeRequest, opts ...grpc.CallOption) (*api.ChallengeResponse, error)
	JoinChallenge(ctx context.Context, in *api.ChallengeRequest, opts ...grpc.CallOption) (*api.EventResponse, error)
	UpdateChallengeProgress(ctx context.Context, in *api.ProgressRequest, opts ...grpc.CallOption) (*api.ProgressResponse, error)
	ReclaimChallenge(ctx context.Context, in *api.ChallengeRequest, opts ...grpc.CallOption) (*api.EventResponse, error)
	UpdateDailyPool(ctx context.Context, in *api.AmountRequest, opts ...grpc.CallOption) (*api.EventResponse, error)
	EmergencyPause(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.EventResponse, error)
	Unpause(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.EventResponse, error)
	FundTreasury(ctx context.Context, in *api.AmountRequest, opts ...grpc.CallOption) (*api.EventResponse, error)
	EmergencyWithdraw(ctx context.Context, in *api.AmountRequest, opts ...grpc.CallOption) (*api.EventResponse, error)
	GetUserProfile(ctx context.Context, in *api.AccountRequest, opts ...grpc.CallOption) (*api.ProfileResponse, error)
	GetChallengeDetails(ctx context.Context, in *api.ChallengeRequest, opts ...grpc.CallOption) (*api.ChallengeDetailsResponse, error)
	GetGlobalState(ctx context.Context, in *api.Empty, opts ...grpc.CallOption) (*api.GlobalStateResponse, error)
	GetBalance(ctx context.Context, in *api.AccountRequest, opts ...grpc.CallOption) (*api.BalanceResponse, error)
	ListEvents(ctx context.Context, in *api.ListEventsRequest, opts ...grpc.CallOption) (*api.ListEventsResponse, error)
}

type App struct {
	config  *config.Config
	service Service
	closer  io.Closer
	out     io.Writer
	pretty  bool
	now     func() time.Time
}

// NewApp returns an App that writes to out. The connection is opened on
// the first command that needs it.
func NewApp(c *config.Config, out io.Writer) *App {
	pretty := false
	if f, ok := out.(*os.File); ok {
		pretty = term.IsTerminal(int(f.Fd()))
	}
	return &App{config: c, out: out, pretty: pretty, now: time.Now}
}

func (a *App) connect() error {
	if a.service != nil {
		return nil
	}
	c, err := client.NewFitMintClient(a.config.ServerEndpointAddr, a.config.AccessToken)
	if err != nil {
		return fmt.Errorf("connect %s: %w", a.config.ServerEndpointAddr, err)
	}
	a.service = c
	a.closer = c
	return nil
}

// Close releases the connection, if one was opened.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Run executes the command named by args[0] with the remaining arguments.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" {
		a.usage()
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	if !cmd.offline {
		if err := a.connect(); err != nil {
			return err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	result, err := cmd.run(ctx, a, args[1:])
	if err != nil {
		if errors.Is(err, ErrUsage) {
			return fmt.Errorf("%w: %s %s", err, args[0], cmd.usage)
		}
		return err
	}
	return a.print(result)
}

func (a *App) usage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Usage: fitmint [-a addr] [-t token] [-c config.json] <command> [args]\n\nCommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-17s %s\n", name, commands[name].usage)
	}
	fmt.Fprint(a.out, b.String())
}
