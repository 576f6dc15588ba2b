package barchart

import (
	"errors"
	"log/slog"

	"github.com/tanema/gween/ease"
)

// JoinPhase identifies the outcome of a join for one bar.
type JoinPhase uint8

const (
	JoinEnter  JoinPhase = iota // a new key created a bar
	JoinUpdate                  // an existing bar was matched and retargeted
	JoinExit                    // a key vanished and its bar started fading
	JoinRemove                  // an exited bar finished fading and was disposed
)

func (p JoinPhase) String() string {
	switch p {
	case JoinEnter:
		return "enter"
	case JoinUpdate:
		return "update"
	case JoinExit:
		return "exit"
	case JoinRemove:
		return "remove"
	}
	return "unknown"
}

// JoinEvent describes one enter, update, exit, or removal.
type JoinEvent struct {
	Phase  JoinPhase
	Pass   int // join pass that produced the event; removals carry the current pass
	Key    string
	BarID  uint32
	Index  int
	Value  float64
	Height float64 // target height after the pass
}

// EventSink receives join events. Set one on a Chart to observe the data
// join from outside, e.g. from an ECS world.
type EventSink interface {
	EmitJoin(event JoinEvent)
}

// JoinResult lists the keys affected by one Join call, in batch order for
// entered and updated keys and in bar order for exited keys.
type JoinResult struct {
	Pass    int
	Entered []string
	Updated []string
	Exited  []string
}

// ChartOptions configures a Chart.
type ChartOptions struct {
	// Duration of every transition, in seconds.
	Duration float32
	// Easing shapes the transition clock. Nil means ease.Linear.
	Easing ease.TweenFunc
	// Spacing is the distance between neighbouring bar centres along X.
	Spacing float64
	// BarWidth and BarDepth are the X and Z extents of each box.
	BarWidth float64
	BarDepth float64
	// ToggleOpacity flips each updated bar's opacity target between 1 and 0
	// on every join, so the bars blink on each data update. When
	// false, updated bars always target full opacity.
	ToggleOpacity bool
	// Duplicates selects how repeated keys in one batch are handled.
	Duplicates DuplicatePolicy
	// Logger receives join diagnostics. Nil means slog.Default().
	Logger *slog.Logger
	// Sink, when set, receives a JoinEvent for every bar affected by a join.
	Sink EventSink
}

// DefaultChartOptions returns two-second linear transitions with unit
// spacing and blinking bars.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Duration:      DefaultDuration,
		Easing:        ease.Linear,
		Spacing:       1,
		BarWidth:      0.8,
		BarDepth:      0.8,
		ToggleOpacity: true,
		Duplicates:    DuplicateLastWins,
	}
}

// Chart owns the live bars and reconciles them against record batches. It is
// not safe for concurrent use; call Join and Update from the game loop.
type Chart struct {
	root   *Node
	opts   ChartOptions
	logger *slog.Logger

	bars    []*Bar // live bars in creation order, including exiting ones
	byKey   map[string]*Bar
	scale   LinearScale
	pass    int
	pending []*Bar // exit fades finished this frame
}

// NewChart creates a chart whose bar nodes are attached to a new container
// under parent. parent may be nil, in which case the container is detached
// and can be added to a scene later via Root.
func NewChart(parent *Node, opts ChartOptions) *Chart {
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}
	if opts.Easing == nil {
		opts.Easing = ease.Linear
	}
	if opts.Spacing == 0 {
		opts.Spacing = 1
	}
	if opts.BarWidth == 0 {
		opts.BarWidth = 1
	}
	if opts.BarDepth == 0 {
		opts.BarDepth = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	root := NewContainer("bars")
	if parent != nil {
		parent.AddChild(root)
	}
	return &Chart{
		root:   root,
		opts:   opts,
		logger: logger,
		byKey:  make(map[string]*Bar),
		scale:  NewLinearScale(0, 0, 0, 1),
	}
}

// Root returns the container holding the bar nodes.
func (c *Chart) Root() *Node { return c.root }

// Options returns the chart's effective options.
func (c *Chart) Options() ChartOptions { return c.opts }

// Scale returns the height scale computed by the most recent join.
func (c *Chart) Scale() LinearScale { return c.scale }

// Pass returns the number of successful joins so far.
func (c *Chart) Pass() int { return c.pass }

// Bars returns the live bars, including exiting ones, in creation order.
// The returned slice MUST NOT be mutated.
func (c *Chart) Bars() []*Bar { return c.bars }

// Len returns the number of live bars, including exiting ones.
func (c *Chart) Len() int { return len(c.bars) }

// Bar returns the non-exiting bar bound to key.
func (c *Chart) Bar(key string) (*Bar, bool) {
	b, ok := c.byKey[key]
	return b, ok
}

// Animating reports whether any bar has a running transition.
func (c *Chart) Animating() bool {
	for _, b := range c.bars {
		if b.Animating() {
			return true
		}
	}
	return false
}

// Center returns the midpoint of the non-exiting bars' X targets, or 0 when
// there are none.
func (c *Chart) Center() float64 {
	n := len(c.byKey)
	if n == 0 {
		return 0
	}
	return float64(n-1) * c.opts.Spacing / 2
}

// Join reconciles the live bars against records.
//
// Records are matched to bars by key. New keys enter, matched keys update in
// place, and keys missing from records exit: their bars fade to transparent
// and are removed once the fade completes. After the pass every live bar's
// transitions are re-armed toward the new targets.
//
// Invalid records are skipped. Duplicate keys follow ChartOptions.Duplicates.
// The returned error joins a *RecordError per problem; use errors.Is with
// ErrInvalidRecord or ErrDuplicateKey to inspect it. Under DuplicateReject a
// batch with duplicates leaves the chart untouched and the result is empty.
func (c *Chart) Join(records []Record) (JoinResult, error) {
	clean, rejected, err := cleanRecords(records, c.opts.Duplicates)
	if err != nil {
		c.logRecordErrors(err)
	}
	if rejected {
		c.logger.Warn("batch rejected", "records", len(records))
		return JoinResult{}, err
	}

	maxValue := 0.0
	for _, r := range clean {
		maxValue = max(maxValue, r.Value)
	}
	c.scale = NewLinearScale(0, maxValue, 0, 1)
	c.pass++

	res := JoinResult{Pass: c.pass}
	present := make(map[string]struct{}, len(clean))
	for i, r := range clean {
		present[r.Key] = struct{}{}
		h := c.scale.Map(r.Value)
		if b, ok := c.byKey[r.Key]; ok {
			c.updateBar(b, i, r, h)
			res.Updated = append(res.Updated, r.Key)
			continue
		}
		c.enterBar(i, r, h)
		res.Entered = append(res.Entered, r.Key)
	}

	for _, b := range c.bars {
		if b.exiting {
			continue
		}
		if _, ok := present[b.Key]; !ok {
			c.exitBar(b)
			res.Exited = append(res.Exited, b.Key)
		}
	}

	c.arm()
	return res, err
}

// Update advances every bar's transitions by dt seconds and disposes the bars
// whose exit fade completed.
func (c *Chart) Update(dt float32) {
	for _, b := range c.bars {
		if b.position != nil {
			b.position.Update(dt)
		}
		if b.opacity != nil {
			b.opacity.Update(dt)
		}
	}
	for _, b := range c.pending {
		c.removeBar(b)
	}
	clear(c.pending)
	c.pending = c.pending[:0]
}

// Reset disposes every bar immediately, without exit fades.
func (c *Chart) Reset() {
	for _, b := range c.bars {
		supersede(&b.position, nil)
		supersede(&b.opacity, nil)
		b.node.Dispose()
	}
	clear(c.bars)
	c.bars = c.bars[:0]
	clear(c.byKey)
	c.pending = c.pending[:0]
}

func (c *Chart) enterBar(index int, r validRecord, h float64) *Bar {
	x := float64(index) * c.opts.Spacing
	node := NewBox(r.Key, r.color)
	node.SetPosition(x, h/2, 0)
	node.SetScale(c.opts.BarWidth, 0, c.opts.BarDepth)

	b := &Bar{
		Key:   r.Key,
		Value: r.Value,
		Index: index,
		Target: BarTarget{
			X:       x,
			Y:       h / 2,
			Height:  h,
			Opacity: 1,
			HasX:    true,
		},
		id:   node.ID,
		node: node,
	}
	node.UserData = b
	c.root.AddChild(node)
	c.bars = append(c.bars, b)
	c.byKey[r.Key] = b

	c.logger.Debug("enter", "key", r.Key, "index", index, "height", h)
	c.emit(JoinEnter, b)
	return b
}

func (c *Chart) updateBar(b *Bar, index int, r validRecord, h float64) {
	b.Value = r.Value
	b.Index = index
	b.Target.X = float64(index) * c.opts.Spacing
	b.Target.HasX = true
	b.Target.Y = h / 2
	b.Target.Height = h
	if c.opts.ToggleOpacity {
		b.Target.Opacity = 1 - b.Target.Opacity
	} else {
		b.Target.Opacity = 1
	}

	// Height snaps to the new value; X and opacity animate.
	n := b.node
	n.Color = r.color
	n.Y = h / 2
	n.ScaleY = h
	n.MarkDirty()

	c.logger.Debug("update", "key", r.Key, "index", index, "height", h, "opacity", b.Target.Opacity)
	c.emit(JoinUpdate, b)
}

func (c *Chart) exitBar(b *Bar) {
	b.exiting = true
	b.Target.Opacity = 0
	delete(c.byKey, b.Key)

	fade := TweenOpacity(b, c.opts.Duration, c.opts.Easing)
	fade.OnComplete = func() {
		c.pending = append(c.pending, b)
	}
	supersede(&b.opacity, fade)

	c.logger.Debug("exit", "key", b.Key, "index", b.Index)
	c.emit(JoinExit, b)
}

// arm starts fresh transitions for every live bar. Exiting bars keep the
// fade installed by exitBar so their removal time stays fixed.
func (c *Chart) arm() {
	for _, b := range c.bars {
		supersede(&b.position, TweenPosition(b, c.opts.Duration, c.opts.Easing))
		if !b.exiting {
			supersede(&b.opacity, TweenOpacity(b, c.opts.Duration, c.opts.Easing))
		}
	}
}

func (c *Chart) removeBar(b *Bar) {
	for i, other := range c.bars {
		if other == b {
			copy(c.bars[i:], c.bars[i+1:])
			c.bars[len(c.bars)-1] = nil
			c.bars = c.bars[:len(c.bars)-1]
			break
		}
	}
	supersede(&b.position, nil)
	b.opacity = nil
	b.node.Dispose()

	c.logger.Debug("remove", "key", b.Key, "bar", b.id)
	c.emit(JoinRemove, b)
}

func (c *Chart) emit(phase JoinPhase, b *Bar) {
	if c.opts.Sink == nil {
		return
	}
	c.opts.Sink.EmitJoin(JoinEvent{
		Phase:  phase,
		Pass:   c.pass,
		Key:    b.Key,
		BarID:  b.id,
		Index:  b.Index,
		Value:  b.Value,
		Height: b.Target.Height,
	})
}

// logRecordErrors logs each *RecordError inside a joined error.
func (c *Chart) logRecordErrors(err error) {
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) {
		c.logger.Warn("skipping record", "err", err)
		return
	}
	for _, e := range joined.Unwrap() {
		var re *RecordError
		if errors.As(e, &re) {
			c.logger.Warn("skipping record", "index", re.Index, "key", re.Key, "reason", re.Reason, "kind", re.Err)
			continue
		}
		c.logger.Warn("skipping record", "err", e)
	}
}
