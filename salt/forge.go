package salt

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fomo4claw/clawlaunch/schema"
)

const (
	initCodeHashTimeout = 30 * time.Second
	minerRunTimeout     = 90 * time.Second
)

var (
	initCodeHashRe = regexp.MustCompile(`INIT_CODE_HASH=(0x[a-fA-F0-9]{64})`)
	saltLineRe     = regexp.MustCompile(`^(0x[a-fA-F0-9]{64})$`)
)

// ForgeSource mines locally: one forge script run derives the strategy init
// code hash for the exact token, then the address-miner binary brute-forces a
// salt against the hook mask. Self-hosted only; both helpers must be on disk.
type ForgeSource struct {
	ContractsDir string
	ForgeScript  string // forge script target, e.g. script/GetInitCodeHash.s.sol:GetInitCodeHash
	MinerPath    string
	RPCURL       string

	Ctx Context
}

func (f *ForgeSource) Name() string {
	return "forge"
}

func (f *ForgeSource) Mine(ctx context.Context, req MineRequest) (Salt, error) {
	env := append(os.Environ(),
		"AGENT_ADDRESS="+req.AgentAddress.Hex(),
		"CLAW_LAUNCHER="+req.LauncherAddress.Hex(),
		"FEE_SPLITTER_FACTORY="+req.FactoryAddress.Hex(),
		"FEE_SPLITTER_FACTORY_NONCE="+strconv.FormatUint(req.Nonce, 10),
		"CURRENT_BLOCK="+strconv.FormatUint(req.CurrentBlock, 10),
		"TOKEN_NAME="+req.TokenName,
		"TOKEN_SYMBOL="+req.TokenSymbol,
		"RPC_URL="+f.RPCURL,
	)
	if req.Currency != "" {
		env = append(env, "CURRENCY="+req.Currency)
	}

	// 1. derive init code hash for this exact name/symbol
	forgeOut, err := f.run(ctx, initCodeHashTimeout, env,
		"forge", "script", f.ForgeScript, "--rpc-url", f.RPCURL, "-vvv")
	if err != nil {
		return Salt{}, err
	}
	m := initCodeHashRe.FindStringSubmatch(forgeOut)
	if m == nil {
		return Salt{}, fmt.Errorf("%w: no init code hash in forge output", schema.ErrMineUnavailable)
	}
	initCodeHash := m[1]

	// 2. brute-force the salt
	minerOut, err := f.run(ctx, minerRunTimeout, env,
		f.MinerPath, initCodeHash, f.Ctx.HookMask.Hex(),
		"-m", f.Ctx.Launcher.Hex(),
		"-s", f.Ctx.StrategyFactory.Hex(),
		"-l", f.Ctx.LiquidityLauncher.Hex(),
		"-q")
	if err != nil {
		return Salt{}, err
	}
	sm := saltLineRe.FindStringSubmatch(strings.TrimSpace(minerOut))
	if sm == nil {
		return Salt{}, fmt.Errorf("%w: no salt in miner output: %.100s", schema.ErrMineUnavailable, minerOut)
	}
	return ParseSalt(sm[1])
}

// run executes one helper bounded by its own timeout; a timed-out helper is
// killed rather than awaited.
func (f *ForgeSource) run(parent context.Context, budget time.Duration, env []string, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(parent, budget)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = f.ContractsDir
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if ctx.Err() == context.DeadlineExceeded {
		return "", fmt.Errorf("%w: %s timed out after %s", schema.ErrMineTimeout, name, budget)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v: %.200s", schema.ErrMineUnavailable, name, err, string(out))
	}
	return string(out), nil
}
