package ipmc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apollo-tools/go-ipmc/protocol"
	"github.com/apollo-tools/go-ipmc/session"
)

// Configurer drives the EEPROM provisioning sequence on one controller
// session: write commands, read-back, verification.
//
// Exchanges on a session are strictly sequential. The echo/prompt
// lockstep has no other synchronization mechanism, so a Configurer must
// never be used concurrently.
type Configurer struct {
	conn   ByteConn
	config Config
}

// New creates a Configurer over an open controller connection.
//
// Example:
//
//	s, err := session.Dial(host, protocol.DefaultPort)
//	if err != nil { ... }
//	defer s.Close()
//	cfg := ipmc.New(s, ipmc.WithSettleDelay(time.Second))
func New(conn ByteConn, opts ...Option) *Configurer {
	if conn == nil {
		panic("conn cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Configurer{
		conn:   conn,
		config: cfg,
	}
}

// CommandResult records the outcome of one write command.
type CommandResult struct {
	// Command is the command that was attempted
	Command protocol.Command

	// Response is the controller's response text; empty if skipped
	Response string

	// TimedOut marks a command that stalled and was skipped
	TimedOut bool
}

// Report collects the outcome of a full provisioning run.
type Report struct {
	// Commands holds one result per attempted write command
	Commands []CommandResult

	// Dump is the raw text of the final read-back
	Dump string

	// Verification is the per-key comparison against the expected
	// post-write state
	Verification *protocol.VerificationResult
}

// OK reports overall success: every command exchanged (none skipped)
// and every expected key verified.
func (r *Report) OK() bool {
	for _, c := range r.Commands {
		if c.TimedOut {
			return false
		}
	}
	return r.Verification != nil && r.Verification.OK()
}

// Configure performs the complete provisioning sequence:
//  1. Derive the write commands and expected state from the values;
//     any missing required field fails here, before transmission.
//  2. Exchange each command in table order. A per-command timeout is
//     recoverable: the command is skipped and the run continues. Any
//     other wire error aborts.
//  3. Exchange the final read-back command and parse the status dump.
//  4. Verify the dump against the expected state.
//
// A verification failure is not an error: it is reported through the
// returned Report, whose OK method the caller consults for the overall
// outcome.
func (c *Configurer) Configure(ctx context.Context, values protocol.Values) (*Report, error) {
	commands, err := protocol.BuildWriteCommands(values)
	if err != nil {
		return nil, err
	}
	expected, err := protocol.ExpectedState(values)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := &Report{Commands: make([]CommandResult, 0, len(commands))}

	for i, cmd := range commands {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		c.reportProgress(Progress{
			Phase:   PhaseWriting,
			Command: strings.TrimSuffix(cmd.Text, protocol.Terminator),
			Index:   i + 1,
			Total:   len(commands),
			Elapsed: time.Since(start),
		})

		response, err := c.Exchange(ctx, cmd.Text)
		switch {
		case err == nil:
			report.Commands = append(report.Commands, CommandResult{Command: cmd, Response: response})
			c.logDebug("command ok", "keyword", cmd.Keyword)
		case session.IsTimeout(err):
			// Individual writes occasionally stall without the run
			// being lost. Skip and continue after the settle delay.
			report.Commands = append(report.Commands, CommandResult{Command: cmd, TimedOut: true})
			c.logError("command timed out, skipping", "keyword", cmd.Keyword)
		default:
			return nil, fmt.Errorf("command %q: %w", cmd.Keyword, err)
		}

		c.settle()
	}

	c.reportProgress(Progress{
		Phase:   PhaseReadingBack,
		Command: protocol.ReadbackKeyword,
		Total:   len(commands),
		Elapsed: time.Since(start),
	})

	dump, err := c.Exchange(ctx, protocol.ReadbackCommand().Text)
	if err != nil {
		return nil, fmt.Errorf("read back EEPROM: %w", err)
	}
	report.Dump = dump

	c.reportProgress(Progress{
		Phase:   PhaseVerifying,
		Total:   len(commands),
		Elapsed: time.Since(start),
	})

	report.Verification = protocol.Verify(protocol.ParseStatusDump(dump), expected)

	for _, f := range report.Verification.Failures() {
		c.logError("verification failed",
			"key", f.Key,
			"outcome", f.Outcome.String(),
			"expected", f.Expected,
			"actual", f.Actual,
		)
	}

	c.reportProgress(Progress{
		Phase:   PhaseComplete,
		Total:   len(commands),
		Elapsed: time.Since(start),
	})
	c.logInfo("provisioning run finished",
		"commands", len(commands),
		"ok", report.OK(),
		"elapsed", time.Since(start).String(),
	)

	return report, nil
}

// ReadStatus performs the read-back exchange only. Returns the parsed
// key/value mapping and the raw dump text.
func (c *Configurer) ReadStatus(ctx context.Context) (map[string]string, string, error) {
	dump, err := c.Exchange(ctx, protocol.ReadbackCommand().Text)
	if err != nil {
		return nil, "", fmt.Errorf("read back EEPROM: %w", err)
	}
	return protocol.ParseStatusDump(dump), dump, nil
}

// Exchange performs one raw command/response cycle on the session.
// Exposed for diagnostic commands outside the fixed provisioning
// sequence; most callers want Configure or ReadStatus.
func (c *Configurer) Exchange(ctx context.Context, command string) (string, error) {
	e := &exchange{
		conn:   c.conn,
		limit:  c.config.ResponseLimit,
		prompt: c.config.Prompt,
	}
	return e.run(ctx, command)
}

func (c *Configurer) settle() {
	if c.config.SettleDelay > 0 {
		time.Sleep(c.config.SettleDelay)
	}
}

// reportProgress calls the progress callback if configured.
func (c *Configurer) reportProgress(progress Progress) {
	if c.config.ProgressCallback != nil {
		c.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (c *Configurer) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Configurer) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Configurer) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}
