package extract

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// ErrUnknownLabel is returned when an event label cannot be mapped to a
// content id. It aborts the run.
var ErrUnknownLabel = errors.New("unknown content label")

// LabelResolver maps an event label to a content id.
type LabelResolver interface {
	Resolve(label string) (string, error)
}

// PrefixResolver strips a fixed prefix from labels such as "sw_216".
type PrefixResolver struct {
	Prefix string
}

// Resolve implements LabelResolver.
func (p PrefixResolver) Resolve(label string) (string, error) {
	id, ok := strings.CutPrefix(label, p.Prefix)
	if !ok || id == "" {
		return "", fmt.Errorf("%w: %q lacks prefix %q", ErrUnknownLabel, label, p.Prefix)
	}
	return id, nil
}

type logLine struct {
	AppName   string `json:"appName"`
	TimeStamp *int64 `json:"timeStamp"`
	Event     struct {
		Category string `json:"category"`
		Action   string `json:"action"`
		Label    string `json:"label"`
	} `json:"event"`
	User string `json:"user"`
}

// JSONLines extracts events from newline-delimited JSON app logs.
//
// Lines not containing Action are never decoded. Lines that fail to decode
// are skipped with a warning; labels the resolver rejects are fatal.
type JSONLines struct {
	Action string
	Labels LabelResolver

	logger *zap.Logger
}

// NewJSONLines creates a JSON lines extractor for one action.
func NewJSONLines(action string, labels LabelResolver, logger *zap.Logger) *JSONLines {
	return &JSONLines{Action: action, Labels: labels, logger: logger}
}

// Extract implements Extractor.
func (j *JSONLines) Extract(ctx context.Context, src Source) ([]Event, error) {
	if src.Artifact.Serial == "" {
		return nil, skipf("%s has no serial number", src.Path)
	}

	f, err := os.Open(src.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", src.Path, err)
	}
	defer f.Close()

	return j.decode(ctx, f, src)
}

func (j *JSONLines) decode(ctx context.Context, r io.Reader, src Source) ([]Event, error) {
	// Lines can exceed bufio.Scanner's token limit, so read them whole
	br := bufio.NewReader(r)

	var events []Event
	for lineNo := 1; ; lineNo++ {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("reading %s: %w", src.Path, readErr)
		}

		if strings.Contains(line, j.Action) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			e, ok, err := j.parseLine(line, src)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", src.Path, lineNo, err)
			}
			if !ok {
				j.logger.Warn("Skipping undecodable line", zap.String("file", src.Path), zap.Int("line", lineNo))
			} else if e != nil {
				events = append(events, *e)
			}
		}

		if readErr == io.EOF {
			return events, nil
		}
	}
}

// parseLine returns ok=false for a corrupt line and a nil event for a line
// whose action only matched as a substring.
func (j *JSONLines) parseLine(line string, src Source) (*Event, bool, error) {
	var l logLine
	if err := json.Unmarshal([]byte(line), &l); err != nil {
		return nil, false, nil
	}
	if l.Event.Action != j.Action {
		return nil, true, nil
	}

	id, err := j.Labels.Resolve(l.Event.Label)
	if err != nil {
		return nil, true, err
	}

	return &Event{
		Serial:    src.Artifact.Serial,
		ContentID: id,
		Start:     l.TimeStamp,
	}, true, nil
}
