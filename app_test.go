package barchart

import (
	"bytes"
	"errors"
	"testing"
)

// countingFeed returns the demo data with Value bumped on every call.
type countingFeed struct {
	calls int
}

func (f *countingFeed) Next() []Record {
	f.calls++
	recs := demoRecords()
	recs[0].Value += float64(f.calls)
	return recs
}

func newTestApp(t *testing.T, feed Feed, opts AppOptions) (*App, *Scene) {
	t.Helper()
	var buf bytes.Buffer
	opts.Logger = NewLogger(&buf, false)
	s := NewScene()
	return NewApp(s, feed, opts), s
}

func TestAppStartJoinsInitial(t *testing.T) {
	feed := &countingFeed{}
	app, _ := newTestApp(t, feed, AppOptions{Initial: demoRecords()})
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	if app.Chart().Len() != 3 || app.Chart().Pass() != 1 {
		t.Errorf("Len = %d, Pass = %d, want 3 and 1", app.Chart().Len(), app.Chart().Pass())
	}
	if feed.calls != 0 {
		t.Errorf("feed polled %d times on start, want 0 with initial data", feed.calls)
	}
	if !app.Running() {
		t.Error("app should be running")
	}
	// A second Start is a no-op.
	if err := app.Start(); err != nil || app.Chart().Pass() != 1 {
		t.Error("second Start should not join again")
	}
}

func TestAppStartPollsFeedWithoutInitial(t *testing.T) {
	feed := &countingFeed{}
	app, _ := newTestApp(t, feed, AppOptions{})
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	if feed.calls != 1 || app.Chart().Len() != 3 {
		t.Errorf("calls = %d, Len = %d", feed.calls, app.Chart().Len())
	}
}

func TestAppPollsOnInterval(t *testing.T) {
	feed := &countingFeed{}
	app, s := newTestApp(t, feed, AppOptions{Initial: demoRecords(), FeedInterval: 1})
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	for range 9 {
		if err := s.Step(0.25); err != nil {
			t.Fatal(err)
		}
	}
	// 2.25 s elapsed: polls at 1 s and 2 s.
	if feed.calls != 2 {
		t.Errorf("feed calls = %d, want 2", feed.calls)
	}
	if app.Chart().Pass() != 3 {
		t.Errorf("Pass = %d, want 3", app.Chart().Pass())
	}
}

func TestAppPauseResume(t *testing.T) {
	feed := &countingFeed{}
	app, s := newTestApp(t, feed, AppOptions{Initial: demoRecords()})
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	app.PauseUpdates()
	if app.Running() {
		t.Fatal("Running should be false after pause")
	}
	for range 8 {
		_ = s.Step(0.5)
	}
	if feed.calls != 0 {
		t.Errorf("paused app polled the feed %d times", feed.calls)
	}
	// Transitions keep running while paused.
	if app.Chart().Animating() {
		t.Error("transitions should have finished while paused")
	}
	app.ResumeUpdates()
	_ = s.Step(1)
	if feed.calls != 1 {
		t.Errorf("feed calls after resume = %d, want 1", feed.calls)
	}
}

func TestAppStop(t *testing.T) {
	app, s := newTestApp(t, &countingFeed{}, AppOptions{Initial: demoRecords()})
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	app.Stop()
	if app.Chart().Len() != 0 || app.Running() {
		t.Error("Stop should clear the chart and stop polling")
	}
	if s.updateFunc != nil {
		t.Error("Stop should detach the update function")
	}
	app.ResumeUpdates()
	if app.Running() {
		t.Error("ResumeUpdates should not restart a stopped app")
	}
	if err := app.Start(); err != nil || app.Chart().Len() != 3 {
		t.Error("Start after Stop should rejoin the initial data")
	}
}

func TestAppFollowPansCamera(t *testing.T) {
	app, s := newTestApp(t, nil, AppOptions{Follow: true})
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := app.Apply(demoRecords()); err != nil {
		t.Fatal(err)
	}
	if !s.Camera().Panning() {
		t.Fatal("camera should pan after a join")
	}
	for range 4 {
		_ = s.Step(0.5)
	}
	if got := s.Camera().Target; !approxEqual(got.X, 1, 1e-6) || !approxEqual(got.Y, 0.5, 1e-6) {
		t.Errorf("camera target = %v, want (1, 0.5, 0)", got)
	}
}

func TestAppApplyRejectedDoesNotPan(t *testing.T) {
	opts := AppOptions{Follow: true, Chart: DefaultChartOptions()}
	opts.Chart.Duplicates = DuplicateReject
	app, s := newTestApp(t, nil, opts)
	res, err := app.Apply([]Record{{Key: "a", Color: "red", Value: 1}, {Key: "a", Color: "red", Value: 1}})
	if !errors.Is(err, ErrDuplicateKey) || res.Pass != 0 {
		t.Fatalf("Apply = %+v, %v", res, err)
	}
	if s.Camera().Panning() {
		t.Error("rejected batch should not move the camera")
	}
}

func TestAppScriptRejectAborts(t *testing.T) {
	opts := AppOptions{Chart: DefaultChartOptions()}
	opts.Chart.Duplicates = DuplicateReject
	app, s := newTestApp(t, nil, opts)
	runner, err := LoadScript([]byte(`
steps:
  - action: data
    records: [{key: ok, color: red, value: 1}, {key: "", color: red, value: 1}]
  - action: data
    records: [{key: a, color: red, value: 1}, {key: a, color: red, value: 2}]
`))
	if err != nil {
		t.Fatal(err)
	}
	app.AttachScript(runner)
	if err := app.Start(); err != nil {
		t.Fatal(err)
	}
	// Invalid records are skipped.
	if err := s.Step(0.1); err != nil {
		t.Fatalf("frame 1: %v", err)
	}
	if app.Chart().Len() != 1 {
		t.Errorf("Len = %d, want 1", app.Chart().Len())
	}
	// A rejected batch is fatal for a script.
	if err := s.Step(0.1); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("frame 2 err = %v, want ErrDuplicateKey", err)
	}
}

func TestFeedFunc(t *testing.T) {
	var f Feed = FeedFunc(func() []Record { return demoRecords()[:1] })
	if got := f.Next(); len(got) != 1 || got[0].Key != "USA" {
		t.Errorf("Next = %+v", got)
	}
}
