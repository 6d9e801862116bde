package estimate

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	pkgLog "todoist-scheduler/pkg/log"
	"todoist-scheduler/pkg/llmprovider"
	"todoist-scheduler/pkg/timegrid"
)

var numberPattern = regexp.MustCompile(`\d+`)

type implEstimator struct {
	llm *llmprovider.Manager
	l   pkgLog.Logger
	cfg Config

	cache   *expirable.LRU[string, int]
	limiter *rate.Limiter
}

// New creates the duration estimator. llm may be nil, in which case the AI
// tier is skipped and markers fall straight through to heuristics.
func New(llm *llmprovider.Manager, l pkgLog.Logger, cfg Config) Estimator {
	var cache *expirable.LRU[string, int]
	if cfg.CacheSize > 0 {
		cache = expirable.NewLRU[string, int](cfg.CacheSize, nil, cfg.CacheTTL)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RatePerMinute)/60.0), cfg.RatePerMinute)
	}

	return &implEstimator{
		llm:     llm,
		l:       l,
		cfg:     cfg,
		cache:   cache,
		limiter: limiter,
	}
}

func (e *implEstimator) Estimate(ctx context.Context, content, description string) Result {
	if minutes, ok := ParseDurationMarker(description, e.cfg.IntervalMinutes, e.cfg.MinDuration); ok {
		e.l.Debugf(ctx, "estimate: user marker %dm for %q", minutes, content)
		return Result{Minutes: minutes, Source: SourceMarker}
	}

	if minutes, ok := e.EstimateAI(ctx, content, description); ok {
		return Result{Minutes: minutes, Source: SourceAI}
	}

	minutes := e.heuristic(content, description)
	e.l.Debugf(ctx, "estimate: heuristic %dm for %q", minutes, content)
	return Result{Minutes: minutes, Source: SourceHeuristic}
}

func (e *implEstimator) EstimateAI(ctx context.Context, content, description string) (int, bool) {
	if e.llm == nil {
		return 0, false
	}

	key := content + "\x00" + description
	if e.cache != nil {
		if minutes, ok := e.cache.Get(key); ok {
			return minutes, true
		}
	}

	if !e.limiter.Allow() {
		e.l.Warnf(ctx, "estimate: AI rate limit reached, skipping %q", content)
		return 0, false
	}

	prompt := fmt.Sprintf(`Task: %s
Description: %s

Estimate how many minutes this task will take. Reply with ONLY a number (in minutes).
Give a LOW estimate - assume optimal conditions with no interruptions or complications.
It's better to underestimate than overestimate.
Round to the nearest %d minutes. Minimum %d minutes.`,
		content, description, e.cfg.IntervalMinutes, e.cfg.MinDuration)

	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: "You are a task duration estimator. Reply with only a number (minutes).",
		Messages:          []llmprovider.Message{{Role: "user", Text: prompt}},
		Temperature:       0.3,
		MaxTokens:         50,
	})
	if err != nil {
		e.l.Warnf(ctx, "estimate: AI estimation failed for %q: %v", content, err)
		return 0, false
	}

	minutes, ok := firstNumber(resp.Text)
	if !ok {
		e.l.Warnf(ctx, "estimate: no number in AI reply %q", resp.Text)
		return 0, false
	}

	minutes = timegrid.RoundToNearest(minutes, e.cfg.IntervalMinutes, e.cfg.MinDuration)
	if e.cache != nil {
		e.cache.Add(key, minutes)
	}
	return minutes, true
}

func (e *implEstimator) EstimatePriority(ctx context.Context, content, description string) (int, bool) {
	if e.llm == nil {
		return 0, false
	}

	if !e.limiter.Allow() {
		e.l.Warnf(ctx, "estimate: AI rate limit reached, skipping priority for %q", content)
		return 0, false
	}

	prompt := fmt.Sprintf(`Task: %s
Description: %s

Decide if this task is urgent or time-sensitive.
Reply with ONLY one number:
- 4 for urgent (Todoist P1)
- 2 for normal (Todoist P3)
Never reply with 3.`, content, description)

	resp, err := e.llm.GenerateContent(ctx, &llmprovider.Request{
		SystemInstruction: "You assign Todoist priorities. Reply only with 4 or 2.",
		Messages:          []llmprovider.Message{{Role: "user", Text: prompt}},
		Temperature:       0.2,
		MaxTokens:         10,
	})
	if err != nil {
		e.l.Warnf(ctx, "estimate: AI priority failed for %q: %v", content, err)
		return 0, false
	}

	value, ok := firstNumber(resp.Text)
	if !ok || (value != 2 && value != 4) {
		return 0, false
	}
	return value, true
}

func (e *implEstimator) heuristic(content, description string) int {
	text := strings.ToLower(content + " " + description)

	for _, kw := range quickKeywords {
		if strings.Contains(text, kw) {
			return quickDuration
		}
	}
	for _, kw := range mediumKeywords {
		if strings.Contains(text, kw) {
			return mediumDuration
		}
	}
	for _, kw := range longKeywords {
		if strings.Contains(text, kw) {
			return longDuration
		}
	}
	return e.cfg.DefaultDuration
}

func firstNumber(text string) (int, bool) {
	match := numberPattern.FindString(text)
	if match == "" {
		return 0, false
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0, false
	}
	return n, true
}
