package crawl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

// recordingFetch is a FetchFunc test double that records every task it serves.
type recordingFetch struct {
	mu    sync.Mutex
	tasks []Task
	times map[Task]time.Time
	pages map[Task]string
	errs  map[Task]error
	err   error
}

func (f *recordingFetch) fetch(_ context.Context, channel string, page int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	task := Task{Channel: channel, Page: page}
	f.tasks = append(f.tasks, task)
	if f.times != nil {
		f.times[task] = time.Now()
	}

	if f.err != nil {
		return "", f.err
	}
	if err := f.errs[task]; err != nil {
		return "", err
	}
	return f.pages[task], nil
}

func (f *recordingFetch) servedAt(task Task) time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.times[task]
}

func (f *recordingFetch) served() []Task {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

func newScheduler(fetch *recordingFetch, pages int) *Scheduler {
	return &Scheduler{
		Fetch:          fetch.fetch,
		Pages:          pages,
		ChannelWorkers: 3,
		PageWorkers:    1,
		StopOnEmpty:    true,
	}
}

func TestSchedulerRun(t *testing.T) {
	Convey("Given channels whose pages all carry locators", t, func() {
		fetch := &recordingFetch{pages: map[Task]string{
			{Channel: "CCTV1", Page: 1}: "https://cdn.test/1a.m3u8",
			{Channel: "CCTV1", Page: 2}: "https://cdn.test/1b.m3u8",
			{Channel: "CCTV2", Page: 1}: "https://cdn.test/2a.m3u8",
			{Channel: "CCTV2", Page: 2}: "https://cdn.test/2b.m3u8",
		}}

		scheduler := newScheduler(fetch, 2)

		Convey("Every (channel, page) task is served exactly once", func() {
			candidates := scheduler.Run(context.Background(), []string{"CCTV1", "CCTV2"})

			So(candidates, ShouldHaveLength, 4)
			So(fetch.served(), ShouldHaveLength, 4)
		})
	})

	Convey("Given a channel that goes empty on its first page", t, func() {
		fetch := &recordingFetch{pages: map[Task]string{
			{Channel: "CCTV1", Page: 1}: "",
		}}

		scheduler := newScheduler(fetch, 4)

		Convey("Later pages of the channel are skipped", func() {
			candidates := scheduler.Run(context.Background(), []string{"CCTV1"})

			So(candidates, ShouldBeEmpty)
			So(fetch.served(), ShouldHaveLength, 1)
		})

		Convey("Unless the early-stop policy is disabled", func() {
			scheduler.StopOnEmpty = false
			_ = scheduler.Run(context.Background(), []string{"CCTV1"})

			So(fetch.served(), ShouldHaveLength, 4)
		})
	})

	Convey("Given a transient fetch failure on an early page", t, func() {
		fetch := &recordingFetch{
			pages: map[Task]string{
				{Channel: "CCTV1", Page: 2}: "https://cdn.test/b.m3u8",
				{Channel: "CCTV1", Page: 3}: "https://cdn.test/c.m3u8",
			},
			errs: map[Task]error{
				{Channel: "CCTV1", Page: 1}: errors.New("connection reset"),
			},
		}

		scheduler := newScheduler(fetch, 3)

		Convey("The failure does not count as an exhausted channel", func() {
			candidates := scheduler.Run(context.Background(), []string{"CCTV1"})

			So(fetch.served(), ShouldHaveLength, 3)
			So(candidates, ShouldHaveLength, 2)
		})
	})

	Convey("Given a fetch collaborator that always fails", t, func() {
		fetch := &recordingFetch{err: errors.New("connection refused")}
		scheduler := newScheduler(fetch, 2)
		scheduler.StopOnEmpty = false

		Convey("Failures are isolated and the run completes empty", func() {
			candidates := scheduler.Run(context.Background(), []string{"CCTV1", "CCTV2"})

			So(candidates, ShouldBeEmpty)
			So(fetch.served(), ShouldHaveLength, 4)
		})
	})

	Convey("Given the same locator surfacing under two channels", t, func() {
		fetch := &recordingFetch{pages: map[Task]string{
			{Channel: "CCTV1", Page: 1}: "https://cdn.test/shared.m3u8",
			{Channel: "CCTV2", Page: 1}: "https://cdn.test/shared.m3u8",
		}}

		scheduler := newScheduler(fetch, 1)
		scheduler.ChannelWorkers = 1 // serialize for a deterministic winner

		Convey("Only the first discovery is kept", func() {
			candidates := scheduler.Run(context.Background(), []string{"CCTV1", "CCTV2"})

			So(candidates, ShouldHaveLength, 1)
			So(candidates[0].Channel, ShouldEqual, "CCTV1")
		})
	})
}

func TestSchedulerPacing(t *testing.T) {
	Convey("Given a paced single-slot page pool", t, func() {
		const delay = 100 * time.Millisecond

		fetch := &recordingFetch{
			times: make(map[Task]time.Time),
			pages: map[Task]string{
				{Channel: "CCTV1", Page: 1}: "https://cdn.test/a.m3u8",
				{Channel: "CCTV1", Page: 2}: "https://cdn.test/b.m3u8",
				{Channel: "CCTV1", Page: 3}: "https://cdn.test/c.m3u8",
			},
		}

		scheduler := newScheduler(fetch, 3)
		scheduler.PageDelay = delay

		start := time.Now()
		candidates := scheduler.Run(context.Background(), []string{"CCTV1"})
		So(candidates, ShouldHaveLength, 3)

		Convey("The first page is dispatched without delay", func() {
			So(fetch.servedAt(Task{Channel: "CCTV1", Page: 1}).Sub(start), ShouldBeLessThan, delay)
		})

		Convey("Later pages wait out the configured delay", func() {
			So(fetch.servedAt(Task{Channel: "CCTV1", Page: 2}).Sub(start), ShouldBeGreaterThanOrEqualTo, delay)
			So(fetch.servedAt(Task{Channel: "CCTV1", Page: 3}).Sub(start), ShouldBeGreaterThanOrEqualTo, 2*delay)
		})
	})
}

func TestSchedulerBounds(t *testing.T) {
	Convey("Given many channels and a single-slot channel pool", t, func() {
		pages := make(map[Task]string)
		var channels []string
		for i := 0; i < 8; i++ {
			channel := fmt.Sprintf("CH%d", i)
			channels = append(channels, channel)
			pages[Task{Channel: channel, Page: 1}] = "https://cdn.test/" + channel + ".m3u8"
		}

		fetch := &recordingFetch{pages: pages}
		scheduler := newScheduler(fetch, 1)
		scheduler.ChannelWorkers = 1

		Convey("All channels are still served", func() {
			candidates := scheduler.Run(context.Background(), channels)
			So(candidates, ShouldHaveLength, 8)
		})
	})
}
