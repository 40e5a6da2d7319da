package oracle

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// #region protocol-constants

// bannerMarker starts the single banner line ispell emits on startup.
const bannerMarker = "@(#)"

// terseDirective suppresses output for correctly spelled words. Essential:
// without it the client cannot know how many "correct" replies are pending.
const terseDirective = "!\n"

// requestSigil prefixes each word-check request line. The caret makes ispell
// take the rest of the line as a literal word to check.
const requestSigil = "^"

// ErrProtocol is wrapped by every oracle protocol failure: missing or
// malformed banner, channel misuse, truncated verdict stream.
var ErrProtocol = errors.New("oracle protocol error")

// #endregion protocol-constants

// #region state

// batchState tracks where an Ispell channel is in its one-way lifecycle:
// Idle -> Sending -> Draining -> Idle (via Close, ready for reopen).
type batchState int

const (
	stateIdle batchState = iota
	stateSending
	stateDraining
)

func (s batchState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateSending:
		return "sending"
	case stateDraining:
		return "draining"
	}
	return "unknown"
}

// #endregion state

// #region ispell-struct

// Ispell speaks the ispell -a line protocol over a Channel. One batch of
// words per Open/Drain cycle; the channel is closed and reopened to switch
// wordlists. Verdict lines are matched by the word text they carry, never by
// position, since replies are not guaranteed to echo submission order.
type Ispell struct {
	command string
	opts    Options
	dial    Dialer

	ch    Channel
	out   *bufio.Reader
	state batchState
	total int
}

// NewIspell returns an Ispell client that will spawn command ("" means
// "ispell") with the protocol arguments derived from opts.
func NewIspell(command string, opts Options) *Ispell {
	if command == "" {
		command = "ispell"
	}
	return &Ispell{command: command, opts: opts, dial: StartProcess}
}

// NewIspellWithDialer creates an Ispell client with an injected channel
// dialer. Used for testing without a real subprocess.
func NewIspellWithDialer(opts Options, dial Dialer) *Ispell {
	return &Ispell{command: "ispell", opts: opts, dial: dial}
}

// #endregion ispell-struct

// #region open

// Open spawns the oracle against wordlist, validates its banner line, and
// switches it to terse mode. Fails fast with an ErrProtocol-wrapped error if
// the banner is absent or malformed.
func (o *Ispell) Open(wordlist string) error {
	if o.state != stateIdle {
		return fmt.Errorf("%w: open while %s", ErrProtocol, o.state)
	}

	args := []string{"-a"}
	if o.opts.AllowCompound {
		args = append(args, "-C")
	}
	if o.opts.MinWordLength > 0 {
		args = append(args, fmt.Sprintf("-W%d", o.opts.MinWordLength))
	}
	if wordlist != "" {
		args = append(args, "-p", wordlist)
	}

	ch, err := o.dial(o.command, args...)
	if err != nil {
		return fmt.Errorf("dial oracle: %w", err)
	}
	out := bufio.NewReader(ch)

	banner, err := out.ReadString('\n')
	if err != nil {
		ch.Close()
		return fmt.Errorf("%w: reading banner: %v", ErrProtocol, err)
	}
	if !strings.HasPrefix(banner, bannerMarker) {
		ch.Close()
		return fmt.Errorf("%w: expected %q banner, got %q",
			ErrProtocol, bannerMarker, strings.TrimSpace(banner))
	}

	if _, err := io.WriteString(ch, terseDirective); err != nil {
		ch.Close()
		return fmt.Errorf("enable terse mode: %w", err)
	}

	o.ch = ch
	o.out = out
	o.state = stateSending
	return nil
}

// #endregion open

// #region send

// Send submits one word for checking.
func (o *Ispell) Send(word string) error {
	if o.state != stateSending {
		return fmt.Errorf("%w: send while %s", ErrProtocol, o.state)
	}
	if _, err := io.WriteString(o.ch, requestSigil+word+"\n"); err != nil {
		return fmt.Errorf("send %q: %w", word, err)
	}
	return nil
}

// #endregion send

// #region drain

// Drain half-closes the write direction, which cues the oracle to flush its
// pending verdicts and terminate output, then reads reply lines until EOF.
// On a read failure the verdicts parsed so far are returned alongside the
// error; they remain valid for partial reporting.
func (o *Ispell) Drain() (Report, error) {
	if o.state != stateSending {
		return nil, fmt.Errorf("%w: drain while %s", ErrProtocol, o.state)
	}
	o.state = stateDraining

	if err := o.ch.CloseWrite(); err != nil {
		return nil, fmt.Errorf("close write side: %w", err)
	}

	report := make(Report)
	for {
		line, err := o.out.ReadString('\n')
		if word, guesses, ok := parseVerdict(line); ok {
			report[word] = guesses
			o.total++
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return report, fmt.Errorf("%w: reading verdicts: %v", ErrProtocol, err)
		}
	}
	return report, nil
}

// #endregion drain

// #region parse

// parseVerdict interprets one oracle reply line.
//
//	"& orig count offset: cand, cand, ..."  near-miss with candidates
//	"? orig count offset: cand, ..."        guess with candidates
//	"# orig offset"                         miss, no candidates
//
// The distinction between & and ? is deliberately ignored, as are the
// numeric count and offset fields; they describe ispell-internal metadata.
// Every other leading character, including the blank lines ispell uses as
// batch separators, is ignored.
func parseVerdict(line string) (word string, guesses []string, ok bool) {
	if line == "" {
		return "", nil, false
	}
	code := line[0]
	rest := strings.TrimRight(line[1:], "\r\n")

	switch code {
	case '&', '?':
		head, tail, found := strings.Cut(rest, ":")
		if !found {
			return "", nil, false
		}
		fields := strings.Fields(head)
		if len(fields) < 3 {
			return "", nil, false
		}
		for _, g := range strings.Split(tail, ", ") {
			if g = strings.TrimSpace(g); g != "" {
				guesses = append(guesses, g)
			}
		}
		return fields[0], guesses, true
	case '#':
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			return "", nil, false
		}
		return fields[0], nil, true
	}
	return "", nil, false
}

// #endregion parse

// #region close

// Close tears down the channel and returns the oracle to idle, ready for a
// reopen with a different wordlist. A non-zero process exit is returned as
// an error but the client remains reusable; callers treat it as a warning
// alongside whatever results were already obtained.
func (o *Ispell) Close() error {
	if o.ch == nil {
		o.state = stateIdle
		return nil
	}
	ch := o.ch
	o.ch = nil
	o.out = nil
	o.state = stateIdle
	if err := ch.Close(); err != nil {
		return fmt.Errorf("oracle shutdown: %w", err)
	}
	return nil
}

// #endregion close

// #region total

// TotalFlagged returns the lifetime count of verdicts seen.
func (o *Ispell) TotalFlagged() int {
	return o.total
}

// #endregion total
