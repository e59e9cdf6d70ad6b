package build

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/inful/supercollider/internal/adapter"
	"github.com/inful/supercollider/internal/doc"
	ferrors "github.com/inful/supercollider/internal/foundation/errors"
	"github.com/inful/supercollider/internal/metrics"
)

type countingRecorder struct {
	results map[string]metrics.ResultLabel
}

func (r *countingRecorder) ObserveStageDuration(string, time.Duration)   {}
func (r *countingRecorder) ObserveRunDuration(time.Duration)             {}
func (r *countingRecorder) AddFilesScanned(string, int)                  {}
func (r *countingRecorder) AddRecordsParsed(string, int)                 {}
func (r *countingRecorder) IncWarning(string)                            {}
func (r *countingRecorder) ObserveAdapterDuration(string, time.Duration) {}
func (r *countingRecorder) IncAdapterResult(name string, res metrics.ResultLabel) {
	r.results[name] = res
}
func (r *countingRecorder) IncRunOutcome(string) {}

func sampleTree() *doc.Tree {
	return &doc.Tree{Groups: []doc.Group{{
		Key:     doc.ExplicitKey("buttons"),
		Name:    "buttons",
		Slug:    "buttons",
		Entries: []doc.Entry{{Body: "A\n"}},
	}}}
}

func TestBuild_InvokesAdaptersInOrderWithSameTree(t *testing.T) {
	tree := sampleTree()
	reg := adapter.NewRegistry()

	var seen []string
	var trees []*doc.Tree
	record := func(name string) adapter.Func {
		return func(_ context.Context, in adapter.Input) error {
			seen = append(seen, name)
			trees = append(trees, in.Tree)
			require.Equal(t, "/out", in.DestDir)
			require.Equal(t, "b-1", in.BuildID)
			require.NotNil(t, in.Logger)
			return nil
		}
	}
	reg.Use("json", record("json"))
	reg.Use("html", record("html"))

	res, err := NewBuilder(nil, nil).Build(context.Background(), Request{Tree: tree, DestDir: "/out", BuildID: "b-1"}, reg)
	require.NoError(t, err)
	require.Equal(t, []string{"json", "html"}, seen)
	require.Equal(t, []string{"json", "html"}, res.Succeeded)
	require.Empty(t, res.Failed)
	require.Same(t, tree, trees[0])
	require.Same(t, tree, trees[1])
}

func TestBuild_FailingAdapterDoesNotStopOthers(t *testing.T) {
	reg := adapter.NewRegistry()
	var ran []string
	boom := errors.New("disk full")

	reg.Use("first", func(context.Context, adapter.Input) error {
		ran = append(ran, "first")
		return boom
	})
	reg.Use("second", func(context.Context, adapter.Input) error {
		ran = append(ran, "second")
		panic("unexpected")
	})
	reg.Use("third", func(context.Context, adapter.Input) error {
		ran = append(ran, "third")
		return nil
	})

	rec := &countingRecorder{results: map[string]metrics.ResultLabel{}}
	res, err := NewBuilder(nil, rec).Build(context.Background(), Request{Tree: sampleTree()}, reg)
	require.NoError(t, err)
	require.Equal(t, []string{"first", "second", "third"}, ran)
	require.Equal(t, map[string]metrics.ResultLabel{
		"first":  metrics.ResultFailed,
		"second": metrics.ResultFailed,
		"third":  metrics.ResultSuccess,
	}, rec.results)
	require.Equal(t, []string{"third"}, res.Succeeded)
	require.Len(t, res.Failed, 2)

	require.Equal(t, "first", res.Failed[0].Adapter)
	require.ErrorIs(t, res.Failed[0].Err, boom)
	require.True(t, ferrors.HasCategory(res.Failed[0].Err, ferrors.CategoryAdapter))

	require.Equal(t, "second", res.Failed[1].Adapter)
	require.ErrorIs(t, res.Failed[1].Err, ErrAdapterPanic)
	require.Contains(t, res.Failed[1].Err.Error(), "unexpected")

	require.Len(t, res.Warnings(), 2)
}

func TestBuild_ReplacedAdapterOnlyLatestRuns(t *testing.T) {
	reg := adapter.NewRegistry()
	var ran []string
	reg.Use("json", func(context.Context, adapter.Input) error {
		ran = append(ran, "old")
		return nil
	})
	reg.Use("json", func(context.Context, adapter.Input) error {
		ran = append(ran, "new")
		return nil
	})

	res, err := NewBuilder(nil, nil).Build(context.Background(), Request{Tree: sampleTree()}, reg)
	require.NoError(t, err)
	require.Equal(t, []string{"new"}, ran)
	require.Equal(t, []string{"json"}, res.Succeeded)
}

func TestBuild_NilAdapterIsAFailure(t *testing.T) {
	reg := adapter.NewRegistry()
	reg.Use("nothing", nil)

	res, err := NewBuilder(nil, nil).Build(context.Background(), Request{Tree: sampleTree()}, reg)
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	require.ErrorIs(t, res.Failed[0].Err, ErrNilAdapter)
}

func TestBuild_StopsBeforeNextAdapterWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	reg := adapter.NewRegistry()
	var ran []string
	reg.Use("first", func(context.Context, adapter.Input) error {
		ran = append(ran, "first")
		cancel()
		return nil
	})
	reg.Use("second", func(context.Context, adapter.Input) error {
		ran = append(ran, "second")
		return nil
	})

	res, err := NewBuilder(nil, nil).Build(ctx, Request{Tree: sampleTree()}, reg)
	require.Error(t, err)
	require.ErrorIs(t, err, context.Canceled)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryCanceled))
	require.Equal(t, []string{"first"}, ran)
	require.Equal(t, []string{"first"}, res.Succeeded)
	require.Equal(t, []string{"second"}, res.Skipped)
}

func TestBuild_EmptyRegistry(t *testing.T) {
	res, err := NewBuilder(nil, nil).Build(context.Background(), Request{Tree: sampleTree()}, adapter.NewRegistry())
	require.NoError(t, err)
	require.Empty(t, res.Succeeded)
	require.Empty(t, res.Failed)
}

func TestBuild_NilRegistryIsEmpty(t *testing.T) {
	res, err := NewBuilder(nil, nil).Build(context.Background(), Request{Tree: sampleTree()}, nil)
	require.NoError(t, err)
	require.Empty(t, res.Succeeded)
	require.Empty(t, res.Failed)
	require.Empty(t, res.Skipped)
}
